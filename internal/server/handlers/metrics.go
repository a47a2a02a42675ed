package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MetricsHandler struct {
	logger  *zap.Logger
	handler http.Handler
}

// NewMetricsHandler exposes a Prometheus handler, usually metrics.Metrics.Handler().
func NewMetricsHandler(logger *zap.Logger, promHandler http.Handler) *MetricsHandler {
	return &MetricsHandler{
		logger:  logger,
		handler: promHandler,
	}
}

func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	h.handler.ServeHTTP(c.Writer, c.Request)
}
