package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-proxy/internal/config"
	"github.com/vzahanych/weather-proxy/internal/formatter"
	"github.com/vzahanych/weather-proxy/internal/server"
	"github.com/vzahanych/weather-proxy/internal/service"
	"github.com/vzahanych/weather-proxy/internal/weather"
	"github.com/vzahanych/weather-proxy/pkg/metrics"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the weather proxy server",
	Long:  `Start the HTTP server that proxies OpenWeatherMap and serves the weather API and optional front-end assets.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	defer func() { _ = log.Sync() }()

	log.Info("Starting weather proxy server",
		zap.String("config_path", configPath),
		zap.String("environment", cfg.Environment),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
		zap.Int("server_port", cfg.Server.Port))

	m := metrics.New()

	provider := service.NewOpenWeatherMapWithConfig(cfg.Weather, log.Logger, tele)
	svc := weather.New(provider, formatter.New(), log.Logger, tele)
	svc.SetMetricsRecorder(m)

	srv := server.NewServer(cfg, svc, m, log.Logger, tele)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Error("Server error", zap.Error(err))
		}
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		if err := tele.Shutdown(ctx); err != nil {
			log.Warn("Error during telemetry shutdown", zap.Error(err))
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
