package service

import (
	"context"

	"github.com/vzahanych/weather-proxy/internal/location"
)

// WeatherProvider fetches raw JSON bodies from the upstream provider.
type WeatherProvider interface {
	Current(ctx context.Context, q location.Query) ([]byte, error)
	Forecast(ctx context.Context, q location.Query) ([]byte, error)
	Name() string
}
