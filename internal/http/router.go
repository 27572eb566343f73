package http

import (
	"time"

	"github.com/gin-gonic/gin"

	httpH "github.com/Krishna1199000/propalai-backend/internal/http/handlers"
	httpMW "github.com/Krishna1199000/propalai-backend/internal/http/middleware"
	"github.com/Krishna1199000/propalai-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	UserHandler      *httpH.UserHandler
	SttConfigHandler *httpH.SttConfigHandler
}

const (
	// Budget for DB-backed requests; uploads get longer for the S3 round trip.
	requestTimeout = 10 * time.Second
	uploadTimeout  = 30 * time.Second
)

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	short := httpMW.Timeout(requestTimeout)
	long := httpMW.Timeout(uploadTimeout)

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/register", short, cfg.AuthHandler.Register)
			api.POST("/login", short, cfg.AuthHandler.Login)
			api.POST("/oauth/google", short, cfg.AuthHandler.GoogleSignIn)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/refresh", short, cfg.AuthHandler.Refresh)
			protected.POST("/logout", short, cfg.AuthHandler.Logout)
		}

		if cfg.UserHandler != nil {
			protected.GET("/me", short, cfg.UserHandler.GetMe)
			protected.PUT("/profile", short, cfg.UserHandler.UpdateProfile)
			protected.POST("/profile-image", long, cfg.UserHandler.UploadProfileImage)
			protected.POST("/profile-image/presign", short, cfg.UserHandler.PresignProfileImage)
			protected.POST("/profile-image/confirm", short, cfg.UserHandler.ConfirmProfileImage)
		}

		if cfg.SttConfigHandler != nil {
			protected.GET("/config", short, cfg.SttConfigHandler.GetConfig)
			protected.POST("/config", short, cfg.SttConfigHandler.SaveConfig)
			protected.GET("/stt/catalog", short, cfg.SttConfigHandler.GetCatalog)
		}
	}

	return r
}
