// Package weather wires location parsing, the upstream provider and the
// formatter together for the HTTP handlers.
package weather

import (
	"context"
	"errors"
	"fmt"

	"github.com/vzahanych/weather-proxy/internal/formatter"
	"github.com/vzahanych/weather-proxy/internal/location"
	"github.com/vzahanych/weather-proxy/internal/service"
	"github.com/vzahanych/weather-proxy/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrUnableToFetch is the single failure callers see. The cause stays in the
// chain for logging but is never shown to clients.
var ErrUnableToFetch = errors.New("unable to fetch weather data")

// MetricsRecorder interface for recording upstream calls
type MetricsRecorder interface {
	RecordUpstreamCall(ctx context.Context, endpoint string, success bool)
}

type Service struct {
	provider  service.WeatherProvider
	formatter *formatter.Formatter
	logger    *zap.Logger
	tele      *telemetry.Telemetry
	metrics   MetricsRecorder
}

func New(provider service.WeatherProvider, f *formatter.Formatter, logger *zap.Logger, tele *telemetry.Telemetry) *Service {
	return &Service{
		provider:  provider,
		formatter: f,
		logger:    logger,
		tele:      tele,
	}
}

// SetMetricsRecorder sets the metrics recorder for the service
func (s *Service) SetMetricsRecorder(metrics MetricsRecorder) {
	s.metrics = metrics
}

func (s *Service) GetCurrentWeather(ctx context.Context, loc string) (*formatter.CurrentWeather, error) {
	ctx, span := s.tele.StartSpan(ctx, "weather.GetCurrentWeather")
	defer span.End()

	q := location.Classify(loc)
	span.SetAttributes(attribute.String("query.kind", q.Kind.String()))

	raw, err := s.fetch(ctx, service.EndpointCurrent, q)
	if err != nil {
		return nil, s.fail(ctx, "current", loc, err)
	}

	result, err := s.formatter.FormatCurrent(raw)
	if err != nil {
		return nil, s.fail(ctx, "current", loc, err)
	}
	return result, nil
}

func (s *Service) GetForecast(ctx context.Context, loc string) (*formatter.ForecastResult, error) {
	ctx, span := s.tele.StartSpan(ctx, "weather.GetForecast")
	defer span.End()

	q := location.Classify(loc)
	span.SetAttributes(attribute.String("query.kind", q.Kind.String()))

	raw, err := s.fetch(ctx, service.EndpointForecast, q)
	if err != nil {
		return nil, s.fail(ctx, "forecast", loc, err)
	}

	result, err := s.formatter.FormatForecast(raw)
	if err != nil {
		return nil, s.fail(ctx, "forecast", loc, err)
	}

	span.SetAttributes(attribute.Int("days", len(result.List)))
	return result, nil
}

// GetHourlyForecast reuses the 5-day feed and keeps its first eight samples.
func (s *Service) GetHourlyForecast(ctx context.Context, loc string) (*formatter.HourlyResult, error) {
	ctx, span := s.tele.StartSpan(ctx, "weather.GetHourlyForecast")
	defer span.End()

	q := location.Classify(loc)
	span.SetAttributes(attribute.String("query.kind", q.Kind.String()))

	raw, err := s.fetch(ctx, service.EndpointForecast, q)
	if err != nil {
		return nil, s.fail(ctx, "hourly", loc, err)
	}

	result, err := s.formatter.FormatHourly(raw)
	if err != nil {
		return nil, s.fail(ctx, "hourly", loc, err)
	}
	return result, nil
}

func (s *Service) GetWeatherByCoordinates(ctx context.Context, lat, lon float64) (*formatter.CurrentWeather, error) {
	return s.GetCurrentWeather(ctx, location.NewCoordinates(lat, lon).String())
}

func (s *Service) fetch(ctx context.Context, endpoint string, q location.Query) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	switch endpoint {
	case service.EndpointCurrent:
		raw, err = s.provider.Current(ctx, q)
	default:
		raw, err = s.provider.Forecast(ctx, q)
	}

	if s.metrics != nil {
		s.metrics.RecordUpstreamCall(ctx, endpoint, err == nil)
	}
	return raw, err
}

func (s *Service) fail(ctx context.Context, op, loc string, err error) error {
	kind := "unknown"
	switch {
	case errors.Is(err, service.ErrUpstreamUnavailable):
		kind = "upstream_unavailable"
	case errors.Is(err, formatter.ErrMalformedUpstreamData):
		kind = "malformed_upstream_data"
	}

	s.loggerFor(ctx).Error("Failed to get weather data",
		zap.String("operation", op),
		zap.String("location", loc),
		zap.String("failure", kind),
		zap.String("provider", s.provider.Name()),
		zap.Error(err))

	s.tele.RecordError(ctx, err, map[string]interface{}{
		"operation": op,
		"failure":   kind,
	})

	return fmt.Errorf("%w: %w", ErrUnableToFetch, err)
}

type requestIDKey struct{}

// WithRequestID stores the request ID for correlated logging.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func (s *Service) loggerFor(ctx context.Context) *zap.Logger {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return s.logger.With(zap.String("request_id", id))
	}
	return s.logger
}
