package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-proxy/internal/formatter"
	"github.com/vzahanych/weather-proxy/internal/server/utils"
	"github.com/vzahanych/weather-proxy/internal/weather"
	"go.uber.org/zap"
)

// WeatherService is what the handlers need from weather.Service.
type WeatherService interface {
	GetCurrentWeather(ctx context.Context, location string) (*formatter.CurrentWeather, error)
	GetForecast(ctx context.Context, location string) (*formatter.ForecastResult, error)
	GetHourlyForecast(ctx context.Context, location string) (*formatter.HourlyResult, error)
	GetWeatherByCoordinates(ctx context.Context, lat, lon float64) (*formatter.CurrentWeather, error)
}

type WeatherHandler struct {
	service WeatherService
	logger  *zap.Logger
}

func NewWeatherHandler(svc WeatherService, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		service: svc,
		logger:  logger,
	}
}

func (h *WeatherHandler) GetCurrent(c *gin.Context) {
	loc, ok := h.requireLocation(c)
	if !ok {
		return
	}

	data, err := h.service.GetCurrentWeather(h.requestContext(c), loc)
	h.respond(c, data, err, "Unable to fetch weather data")
}

func (h *WeatherHandler) GetForecast(c *gin.Context) {
	loc, ok := h.requireLocation(c)
	if !ok {
		return
	}

	data, err := h.service.GetForecast(h.requestContext(c), loc)
	h.respond(c, data, err, "Unable to fetch forecast data")
}

func (h *WeatherHandler) GetHourly(c *gin.Context) {
	loc, ok := h.requireLocation(c)
	if !ok {
		return
	}

	data, err := h.service.GetHourlyForecast(h.requestContext(c), loc)
	h.respond(c, data, err, "Unable to fetch hourly forecast data")
}

func (h *WeatherHandler) GetByCoordinates(c *gin.Context) {
	reqLogger := h.requestLogger(c)

	latRaw, lonRaw := c.Query("lat"), c.Query("lon")
	if latRaw == "" || lonRaw == "" {
		reqLogger.Warn("Missing coordinates")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Latitude and longitude parameters are required",
			Code:  CodeMissingParams,
		})
		return
	}

	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lon, lonErr := strconv.ParseFloat(lonRaw, 64)
	req := CoordinatesRequest{Lat: lat, Lon: lon}
	validationErrs := utils.ValidateStruct(req)
	if latErr != nil || lonErr != nil || validationErrs != nil {
		reqLogger.Warn("Invalid coordinates",
			zap.String("lat", latRaw),
			zap.String("lon", lonRaw),
			zap.Any("validation_errors", validationErrs))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid latitude or longitude values",
			Code:  CodeInvalidParams,
		})
		return
	}

	data, err := h.service.GetWeatherByCoordinates(h.requestContext(c), req.Lat, req.Lon)
	h.respond(c, data, err, "Unable to fetch weather data")
}

// requireLocation rejects the request before any upstream call when the
// location parameter is absent or empty.
func (h *WeatherHandler) requireLocation(c *gin.Context) (string, bool) {
	loc := c.Query("location")
	if loc == "" {
		h.requestLogger(c).Warn("Missing location parameter", zap.String("path", c.FullPath()))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Location parameter is required",
			Code:  CodeMissingParams,
		})
		return "", false
	}
	return loc, true
}

func (h *WeatherHandler) respond(c *gin.Context, data interface{}, err error, failure string) {
	if err != nil {
		// the service has already logged the cause
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: failure,
			Code:  CodeFetchFailed,
		})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *WeatherHandler) requestContext(c *gin.Context) context.Context {
	ctx := utils.GetContextFromGinContext(c)
	return weather.WithRequestID(ctx, utils.GetRequestIDFromGinContext(c))
}

func (h *WeatherHandler) requestLogger(c *gin.Context) *zap.Logger {
	return h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))
}
