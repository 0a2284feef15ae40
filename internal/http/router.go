package http

import (
	"context"
	"log/slog"

	"github.com/coastalbeacon/beacon/internal/config"
	"github.com/coastalbeacon/beacon/internal/http/handlers"
	"github.com/coastalbeacon/beacon/internal/http/middlewares"
	"github.com/coastalbeacon/beacon/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps are the collaborators the router wires into handlers. Ping, Prom and
// Metrics are optional.
type Deps struct {
	Accounts handlers.Accounts
	Ping     func(ctx context.Context) error
	Prom     *observability.Prom
	Metrics  prometheus.Gatherer
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middlewares.RequestLogger(log))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	// health
	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	// signup / login
	authHandler := handlers.NewAuthHandler(deps.Accounts, deps.Prom, log)

	r.POST("/signup", authHandler.SignUp)
	r.POST("/login", authHandler.Login)

	return r
}
