package router

import (
	"ihome/internal/handlers/area"
	"ihome/internal/handlers/auth"
	"ihome/internal/handlers/booking"
	"ihome/internal/handlers/house"
	"ihome/internal/handlers/user"
	"ihome/internal/handlers/verification"
	"ihome/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "ihome/docs"
)

type DomainHandlers struct {
	Area         area.Handler
	Auth         auth.Handler
	Booking      booking.Handler
	House        house.Handler
	User         user.Handler
	Verification verification.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router, app middleware.AppMiddleware) {
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Area.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.House.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Verification.Router(routerGroup, app.StrictRateLimit())
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
