package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coastalbeacon/beacon/internal/accounts"
	"github.com/coastalbeacon/beacon/internal/auth"
	"github.com/coastalbeacon/beacon/internal/config"
	"github.com/coastalbeacon/beacon/internal/db"
	httpx "github.com/coastalbeacon/beacon/internal/http"
	"github.com/coastalbeacon/beacon/internal/observability"
	"github.com/coastalbeacon/beacon/internal/repo/postgres"
	"github.com/coastalbeacon/beacon/internal/security"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	shutdownTracer, err := observability.InitTracer(context.Background(), cfg.ServiceName, cfg.OTELEndpoint)
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	// the store must be reachable at startup; the pool reconnects afterwards
	pool, err := db.NewPool(cfg.DBURL, cfg.DBMaxConns)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		mctx, cancel := config.WithTimeout(30 * time.Second)
		err = db.Migrate(mctx, pool)
		cancel()
		if err != nil {
			log.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	// wire up repositories and services
	usersRepo := postgres.NewUsersRepo(pool, prom)
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	accountsSvc := accounts.NewService(usersRepo, security.NewHasher(cfg.BcryptCost), jwtManager, log)

	// set up routers with the log
	router := httpx.NewRouter(log, cfg, httpx.Deps{
		Accounts: accountsSvc,
		Ping:     pool.Ping,
		Prom:     prom,
		Metrics:  reg,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
