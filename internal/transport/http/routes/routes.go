package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arklim/credguard/internal/infra/config"
	"github.com/arklim/credguard/internal/transport/http/handlers"
	"github.com/arklim/credguard/internal/transport/http/middleware"
	"github.com/arklim/credguard/internal/usecase"
)

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Verifier *usecase.VerifierService
	Metrics  *middleware.HTTPMetrics
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config != nil && deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(deps.Metrics.Handler())

	healthHandler := handlers.NewHealthHandler()
	r.GET("/healthz", healthHandler.Status)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	passwordHandler := handlers.NewPasswordHandler(deps.Verifier)

	api := r.Group("/api/v1")
	{
		passwordGroup := api.Group("/password")
		passwordHandler.RegisterRoutes(passwordGroup)

		api.GET("/policy", passwordHandler.Policy)
	}

	return r
}
