package http

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/stackit/internal/adapters/http/handlers"
	"github.com/jsamuelsen/stackit/internal/adapters/http/middleware"
	"github.com/jsamuelsen/stackit/internal/platform/config"
	"github.com/jsamuelsen/stackit/internal/platform/telemetry"
)

// DefaultRequestTimeout is the API request deadline when none is configured.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains the dependencies of the router.
type RouterConfig struct {
	Logger    *slog.Logger
	AppConfig config.AppConfig
	CORS      config.CORSConfig

	HealthHandler   *handlers.HealthHandler
	QuestionHandler *handlers.QuestionHandler
	SessionHandler  *handlers.SessionHandler

	// Timeout is the deadline of each /api/v1 request.
	Timeout time.Duration
}

// SetupRouter configures middleware and routes on the Gin engine.
// Middleware runs in this order:
//  1. Recovery
//  2. Context logger
//  3. Request ID and correlation ID
//  4. CORS, when origins are configured
//  5. OpenTelemetry tracing and metrics
//  6. Request logging (skips /-/ paths)
//  7. Timeout, on /api/v1 only
//
// Route groups:
//   - /-/ operational endpoints
//   - /api/v1/ board and session endpoints
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)

	if len(cfg.CORS.AllowedOrigins) > 0 {
		engine.Use(cors.New(corsConfig(cfg.CORS)))
	}

	engine.Use(telemetry.Middleware(cfg.AppConfig.Name)...)
	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine.Group("/-"))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.Timeout(timeout))

	if cfg.QuestionHandler != nil {
		cfg.QuestionHandler.RegisterRoutes(apiV1)
	}

	if cfg.SessionHandler != nil {
		cfg.SessionHandler.RegisterRoutes(apiV1)
	}
}

// corsConfig builds the gin-contrib/cors settings. An origin of "*"
// allows every origin.
func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	c.AllowHeaders = append(c.AllowHeaders, middleware.HeaderRequestID, middleware.HeaderCorrelationID)
	c.ExposeHeaders = []string{middleware.HeaderRequestID, middleware.HeaderCorrelationID, "X-Trace-ID", "Location"}
	c.AllowCredentials = cfg.AllowCredentials

	if cfg.MaxAge > 0 {
		c.MaxAge = cfg.MaxAge
	}

	if slices.Contains(cfg.AllowedOrigins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = slices.Clone(cfg.AllowedOrigins)
	}

	return c
}
