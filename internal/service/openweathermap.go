package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vzahanych/weather-proxy/internal/config"
	"github.com/vzahanych/weather-proxy/internal/location"
	"github.com/vzahanych/weather-proxy/pkg/telemetry"
	"go.uber.org/zap"
)

const (
	EndpointCurrent  = "weather"
	EndpointForecast = "forecast"

	defaultTimeout = 10 * time.Second
	// upstream error bodies are only logged, so a short prefix is enough
	maxErrorBody = 512
)

// ErrUpstreamUnavailable covers transport failures, timeouts and non-2xx
// answers from the provider.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

type HTTPStatusError struct {
	Status int
	Body   string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API request failed with status: %d", e.Status)
	}
	return fmt.Sprintf("API request failed with status: %d: %s", e.Status, e.Body)
}

type OpenWeatherMap struct {
	baseURL string
	apiKey  string
	units   string
	client  *http.Client
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

func NewOpenWeatherMapWithConfig(cfg config.WeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) *OpenWeatherMap {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	units := cfg.Units
	if units == "" {
		units = "metric"
	}

	return &OpenWeatherMap{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		units:   units,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		tele:   tele,
	}
}

func (s *OpenWeatherMap) Name() string {
	return "openweathermap"
}

func (s *OpenWeatherMap) Current(ctx context.Context, q location.Query) ([]byte, error) {
	return s.fetch(ctx, EndpointCurrent, q)
}

func (s *OpenWeatherMap) Forecast(ctx context.Context, q location.Query) ([]byte, error) {
	return s.fetch(ctx, EndpointForecast, q)
}

func (s *OpenWeatherMap) fetch(ctx context.Context, endpoint string, q location.Query) ([]byte, error) {
	ctx, span := s.tele.StartSpan(ctx, "openweathermap."+endpoint,
		attribute.String("service", s.Name()),
		attribute.String("query.kind", q.Kind.String()),
	)
	defer span.End()

	u, err := s.buildURL(endpoint, q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Fetching from OpenWeatherMap",
		zap.String("endpoint", endpoint),
		zap.String("location", q.String()))

	resp, err := s.client.Do(req)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, endpoint, redact(err, s.apiKey))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		span.SetAttributes(attribute.Bool("success", false))
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstreamUnavailable, endpoint,
			&HTTPStatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, fmt.Errorf("%w: %s: reading body: %v", ErrUpstreamUnavailable, endpoint, err)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return body, nil
}

func (s *OpenWeatherMap) buildURL(endpoint string, q location.Query) (string, error) {
	u, err := url.Parse(fmt.Sprintf("%s/%s", s.baseURL, endpoint))
	if err != nil {
		return "", err
	}

	params := u.Query()
	if q.IsCoordinates() {
		params.Set("lat", location.FormatCoordinate(q.Lat))
		params.Set("lon", location.FormatCoordinate(q.Lon))
	} else {
		params.Set("q", q.Name)
	}
	params.Set("appid", s.apiKey)
	params.Set("units", s.units)

	u.RawQuery = params.Encode()
	return u.String(), nil
}

// redact keeps the API key out of logged transport errors, which embed the URL.
func redact(err error, key string) string {
	msg := err.Error()
	if key == "" {
		return msg
	}
	return strings.ReplaceAll(msg, url.QueryEscape(key), "REDACTED")
}
