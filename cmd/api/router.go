package main

import (
	"uv-advisory-api/internal/handler"
	"uv-advisory-api/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "uv-advisory-api/docs"
)

type routerDeps struct {
	logger      zerolog.Logger
	metrics     *observability.Metrics
	gatherer    prometheus.Gatherer
	serviceName string
	corsOrigin  string

	uv        *handler.UVHandler
	locations *handler.LocationHandler
	health    *handler.HealthHandler
}

func newRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		observability.Tracing(d.serviceName),
		observability.RequestLogger(d.logger, d.metrics),
		observability.CORS(d.corsOrigin),
	)

	r.GET("/health", d.health.Health)
	r.GET("/ready", d.health.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/uv", d.uv.GetUV)
	r.GET("/get-uv-data", d.uv.GetUV)
	r.GET("/locations/resolve", d.locations.Resolve)

	return r
}
