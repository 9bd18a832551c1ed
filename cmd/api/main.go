package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"uv-advisory-api/internal/config"
	"uv-advisory-api/internal/handler"
	"uv-advisory-api/internal/observability"
	"uv-advisory-api/internal/repository"
	"uv-advisory-api/internal/service"
	"uv-advisory-api/internal/weather"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

//	@title			UV Advisory API
//	@version		1.0
//	@description	Current UV index and sun protection advice for Australian postcodes and suburbs.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := observability.SetupLogger(config.LogLevel, config.LogFormat)
	gin.SetMode(config.GinMode)

	shutdownTracer, err := observability.InitTracer(config.ZipkinURL, config.ServiceName)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot init tracer")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)
	uvClient := weather.NewClient(config.UVAPIBaseURL, config.UVAPIKey, config.UVAPITimeout, metrics, logger)

	locationService := service.NewLocationService(repo)
	uvService := service.NewUVService(uvClient)

	r := newRouter(routerDeps{
		logger:      logger,
		metrics:     metrics,
		gatherer:    registry,
		serviceName: config.ServiceName,
		corsOrigin:  config.CORSAllowedOrigins,
		uv:          handler.NewUVHandler(locationService, uvService, metrics),
		locations:   handler.NewLocationHandler(locationService, metrics),
		health:      handler.NewHealthHandler(repo),
	})

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", config.ServerAddress).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracer shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
