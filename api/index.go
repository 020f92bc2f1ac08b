package handler

import (
	"ihome/config"
	"ihome/di"
	"ihome/shared/logger"
	transportHTTP "ihome/transport/http"
	"net/http"
	"sync"
)

var (
	app  *transportHTTP.HTTP
	once sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
