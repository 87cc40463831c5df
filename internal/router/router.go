// Package router assembles the gin engine: global middleware, public and
// bearer-protected routes, and the fallback handlers.
package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/mentormind-api/api/swagger"
	"github.com/noah-isme/mentormind-api/internal/handler"
	"github.com/noah-isme/mentormind-api/internal/middleware"
	"github.com/noah-isme/mentormind-api/internal/service"
	appErrors "github.com/noah-isme/mentormind-api/pkg/errors"
	"github.com/noah-isme/mentormind-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/mentormind-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/mentormind-api/pkg/middleware/requestid"
	"github.com/noah-isme/mentormind-api/pkg/middleware/secureheaders"
	"github.com/noah-isme/mentormind-api/pkg/response"
)

// Options configures cross-cutting behaviour of the engine.
type Options struct {
	AllowedOrigins []string
	EnableDocs     bool
	HSTS           bool
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	Tokens         middleware.TokenValidator
}

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Auth       *handler.AuthHandler
	Class      *handler.ClassHandler
	Assignment *handler.AssignmentHandler
	Health     *handler.HealthHandler
}

// New builds the gin engine with every route of the API.
func New(opts Options, h Handlers) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered", zap.Any("panic", recovered), zap.String("request_id", reqidmiddleware.Value(c)))
		response.Error(c, appErrors.Internal(fmt.Errorf("panic: %v", recovered), "panic recovered"))
	}))
	r.Use(secureheaders.Middleware(opts.HSTS))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	r.GET("/metrics", h.Health.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/auth/login", h.Auth.Login)

	protected := r.Group("/")
	protected.Use(middleware.JWT(opts.Tokens))
	{
		protected.GET("/auth/me", h.Auth.Me)

		classes := protected.Group("/classes")
		classes.GET("", h.Class.List)
		classes.GET("/:id/roster", h.Class.Roster)
		classes.GET("/:id/assignments", h.Class.Assignments)
		classes.GET("/:id/metrics", h.Class.Metrics)
		classes.GET("/:id/metrics/export", h.Class.ExportMetrics)

		protected.POST("/assignments", h.Assignment.Create)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrRouteNotFound)
	})

	return r
}
