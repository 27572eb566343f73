package app

import (
	internalhttp "github.com/Krishna1199000/propalai-backend/internal/http"
	httpH "github.com/Krishna1199000/propalai-backend/internal/http/handlers"
	httpMW "github.com/Krishna1199000/propalai-backend/internal/http/middleware"
	"github.com/Krishna1199000/propalai-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	User      *httpH.UserHandler
	SttConfig *httpH.SttConfigHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(),
		Auth:      httpH.NewAuthHandler(serviceset.Auth),
		User:      httpH.NewUserHandler(serviceset.User),
		SttConfig: httpH.NewSttConfigHandler(serviceset.SttConfig, serviceset.Catalog),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, serviceset.Auth),
	}
}

func wireServer(log *logger.Logger, handlers Handlers, middleware Middleware) *internalhttp.Server {
	return internalhttp.NewServer(internalhttp.RouterConfig{
		Log:              log,
		AuthMiddleware:   middleware.Auth,
		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		UserHandler:      handlers.User,
		SttConfigHandler: handlers.SttConfig,
	})
}
