package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/weather-proxy/internal/formatter"
	"go.uber.org/zap/zaptest"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetCurrentWeather(ctx context.Context, location string) (*formatter.CurrentWeather, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*formatter.CurrentWeather), args.Error(1)
}

func (m *MockService) GetForecast(ctx context.Context, location string) (*formatter.ForecastResult, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*formatter.ForecastResult), args.Error(1)
}

func (m *MockService) GetHourlyForecast(ctx context.Context, location string) (*formatter.HourlyResult, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*formatter.HourlyResult), args.Error(1)
}

func (m *MockService) GetWeatherByCoordinates(ctx context.Context, lat, lon float64) (*formatter.CurrentWeather, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*formatter.CurrentWeather), args.Error(1)
}

func newTestRouter(t *testing.T, svc WeatherService) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)
	h := NewWeatherHandler(svc, logger)

	r := gin.New()
	r.GET("/api/weather/current", h.GetCurrent)
	r.GET("/api/weather/forecast", h.GetForecast)
	r.GET("/api/weather/hourly", h.GetHourly)
	r.GET("/api/weather/coordinates", h.GetByCoordinates)
	r.GET("/api/health", NewHealthHandler(logger, "1.2.3").Health)
	r.NoRoute(NotFound)
	return r
}

func doGet(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWeatherHandler_MissingLocation(t *testing.T) {
	svc := new(MockService)
	r := newTestRouter(t, svc)

	for _, path := range []string{
		"/api/weather/current",
		"/api/weather/forecast?location=",
		"/api/weather/hourly",
	} {
		t.Run(path, func(t *testing.T) {
			w := doGet(r, path)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Location parameter is required", decodeError(t, w).Error)
		})
	}

	svc.AssertNotCalled(t, "GetCurrentWeather", mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "GetForecast", mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "GetHourlyForecast", mock.Anything, mock.Anything)
}

func TestWeatherHandler_GetCurrent(t *testing.T) {
	svc := new(MockService)
	r := newTestRouter(t, svc)

	data := &formatter.CurrentWeather{
		Location:  formatter.LocationInfo{Name: "London", Country: "GB"},
		Current:   formatter.CurrentConditions{Temp: 15.2, Weather: "Clouds"},
		Timestamp: "2024-03-04T09:30:00Z",
	}
	svc.On("GetCurrentWeather", mock.Anything, "London,UK").Return(data, nil)

	w := doGet(r, "/api/weather/current?location=London,UK")
	require.Equal(t, http.StatusOK, w.Code)

	var got formatter.CurrentWeather
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, *data, got)
	svc.AssertExpectations(t)
}

func TestWeatherHandler_FetchFailures(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		method  string
		message string
	}{
		{"current", "/api/weather/current?location=Atlantis", "GetCurrentWeather", "Unable to fetch weather data"},
		{"forecast", "/api/weather/forecast?location=Atlantis", "GetForecast", "Unable to fetch forecast data"},
		{"hourly", "/api/weather/hourly?location=Atlantis", "GetHourlyForecast", "Unable to fetch hourly forecast data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			r := newTestRouter(t, svc)
			svc.On(tt.method, mock.Anything, "Atlantis").Return(nil, errors.New("city not found"))

			w := doGet(r, tt.path)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.message, resp.Error)
			assert.Equal(t, CodeFetchFailed, resp.Code)
			assert.NotContains(t, w.Body.String(), "city not found")
		})
	}
}

func TestWeatherHandler_GetByCoordinates(t *testing.T) {
	svc := new(MockService)
	r := newTestRouter(t, svc)

	data := &formatter.CurrentWeather{Location: formatter.LocationInfo{Name: "Null Island"}}
	svc.On("GetWeatherByCoordinates", mock.Anything, 0.0, 0.0).Return(data, nil)

	w := doGet(r, "/api/weather/coordinates?lat=0&lon=0")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestWeatherHandler_GetByCoordinates_BadInput(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"missing lon", "lat=10", "Latitude and longitude parameters are required"},
		{"missing both", "", "Latitude and longitude parameters are required"},
		{"not a number", "lat=abc&lon=10", "Invalid latitude or longitude values"},
		{"latitude out of range", "lat=91&lon=10", "Invalid latitude or longitude values"},
		{"longitude out of range", "lat=10&lon=-180.5", "Invalid latitude or longitude values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			r := newTestRouter(t, svc)

			w := doGet(r, "/api/weather/coordinates?"+tt.query)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w).Error)
			svc.AssertNotCalled(t, "GetWeatherByCoordinates", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHealthHandler_Health(t *testing.T) {
	r := newTestRouter(t, new(MockService))

	w := doGet(r, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestNotFound(t *testing.T) {
	r := newTestRouter(t, new(MockService))

	w := doGet(r, "/api/unknown")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Endpoint not found", decodeError(t, w).Error)
}
