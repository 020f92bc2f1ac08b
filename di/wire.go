//go:build wireinject
// +build wireinject

package di

import (
	"ihome/config"
	"ihome/infras/jwt"
	"ihome/infras/kafka"
	"ihome/infras/otel"
	"ihome/infras/postgres"
	"ihome/infras/redis"
	"ihome/infras/s3"
	"ihome/infras/sms"
	"ihome/permissions"
	"ihome/shared/cache"
	"ihome/shared/captcha"
	"ihome/transport/http"
	"ihome/transport/http/middleware"
	"ihome/transport/http/router"
	"ihome/transport/worker"

	"github.com/google/wire"

	areaRepository "ihome/internal/domains/area/repository"
	areaService "ihome/internal/domains/area/service"
	authService "ihome/internal/domains/auth/service"
	bookingRepository "ihome/internal/domains/booking/repository"
	bookingService "ihome/internal/domains/booking/service"
	houseRepository "ihome/internal/domains/house/repository"
	houseService "ihome/internal/domains/house/service"
	notificationService "ihome/internal/domains/notification/service"
	userRepository "ihome/internal/domains/user/repository"
	userService "ihome/internal/domains/user/service"
	verificationService "ihome/internal/domains/verification/service"

	areaHandler "ihome/internal/handlers/area"
	authHandler "ihome/internal/handlers/auth"
	bookingHandler "ihome/internal/handlers/booking"
	houseHandler "ihome/internal/handlers/house"
	userHandler "ihome/internal/handlers/user"
	verificationHandler "ihome/internal/handlers/verification"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	sms.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Bind(new(middleware.TokenRevocation), new(authService.Auth)),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	captcha.New,
)

var repositories = wire.NewSet(
	areaRepository.New,
	bookingRepository.New,
	houseRepository.New,
	userRepository.New,
)

var domains = wire.NewSet(
	areaService.New,
	authService.New,
	bookingService.New,
	houseService.New,
	userService.New,
	verificationService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	areaHandler.New,
	authHandler.New,
	bookingHandler.New,
	houseHandler.New,
	userHandler.New,
	verificationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		kafka.New,
		sms.New,
		userRepository.New,
		notificationService.New,
		worker.New,
	)

	return &worker.Worker{}
}
