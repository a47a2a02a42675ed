package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-proxy/internal/config"
	"github.com/vzahanych/weather-proxy/internal/server/handlers"
	"github.com/vzahanych/weather-proxy/internal/server/middlewares"
	"github.com/vzahanych/weather-proxy/internal/server/utils"
	"github.com/vzahanych/weather-proxy/pkg/metrics"
	"github.com/vzahanych/weather-proxy/pkg/telemetry"
	"go.uber.org/zap"
)

type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	server  *http.Server
	service handlers.WeatherService
	metrics *metrics.Metrics
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

func NewServer(cfg *config.Config, svc handlers.WeatherService, m *metrics.Metrics, logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	if tele == nil {
		tele = telemetry.NewNoop()
	}
	if m == nil {
		m = metrics.New()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(logger, true))
	engine.Use(middlewares.MetricsMiddleware(m))
	engine.Use(middlewares.RecoveryMiddleware(logger, true, handlers.InternalError))
	engine.Use(middlewares.TelemetryMiddleware(logger, tele))
	if corsMw := corsMiddleware(cfg.Server.CORSOrigins); corsMw != nil {
		engine.Use(corsMw)
	}

	s := &Server{
		cfg:     cfg,
		engine:  engine,
		service: svc,
		metrics: m,
		logger:  logger,
		tele:    tele,
	}

	s.setupRoutes()

	return s
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, utils.RequestIDHeader)
	corsCfg.ExposeHeaders = []string{utils.RequestIDHeader}
	if slices.Contains(origins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

func (s *Server) setupRoutes() {
	weatherHandler := handlers.NewWeatherHandler(s.service, s.logger)
	healthHandler := handlers.NewHealthHandler(s.logger, s.cfg.Version)

	api := s.engine.Group("/api")

	// Business endpoints
	api.GET("/weather/current", weatherHandler.GetCurrent)
	api.GET("/weather/forecast", weatherHandler.GetForecast)
	api.GET("/weather/hourly", weatherHandler.GetHourly)
	api.GET("/weather/coordinates", weatherHandler.GetByCoordinates)

	// Health endpoints (Kubernetes friendly)
	api.GET("/health", healthHandler.Health)
	api.GET("/health/live", healthHandler.Liveness)
	api.GET("/health/ready", healthHandler.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", handlers.NewMetricsHandler(s.logger, s.metrics.Handler()).ServeMetrics)

	if dir := s.cfg.Server.StaticDir; dir != "" {
		s.engine.Static("/static", filepath.Join(dir, "static"))
		s.engine.StaticFile("/", filepath.Join(dir, "index.html"))
	}

	s.engine.NoRoute(handlers.NotFound)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	return s.server.Shutdown(ctx)
}
