package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "dashboard/internal/config"
	router "dashboard/internal/http"
	"dashboard/internal/metrics"
	"dashboard/internal/services"
	"dashboard/internal/source"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(nil)

	src, err := buildSource(env)
	if err != nil {
		log.Fatalf("failed to set up users source: %v", err)
	}
	defer intconfig.CloseDB()

	opts := []source.Option{
		source.WithTTL(env.UsersCacheTTL),
		source.WithRefreshInterval(env.UsersRefreshInterval),
		source.WithMetrics(m),
	}
	if env.Redis.URL != "" {
		client, err := source.NewRedisClient(ctx, env.Redis.URL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer client.Close()
		opts = append(opts, source.WithStore(source.NewRedisStore(client, env.Redis.KeyPrefix)))
	}
	users := source.NewCached(src, opts...)

	// Warm the snapshot so the first page view is usually ready.
	users.Snapshot(ctx)
	go users.Run(ctx)

	r := router.NewRouter(env, router.Deps{
		Dashboard:      services.DashboardService{Users: users, Metrics: m},
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("dashboard backend listening on %s (users source: %s)", env.AppAddr, src.Name())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

func buildSource(env intconfig.Env) (source.Source, error) {
	switch env.UsersSource {
	case intconfig.SourceMySQL:
		db, err := intconfig.ConnectDB(env.DB)
		if err != nil {
			return nil, err
		}
		return source.MySQLSource{DB: db}, nil
	default:
		return source.NewHTTPSource(env.UsersSourceURL, nil), nil
	}
}
