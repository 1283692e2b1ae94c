package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// BreakerReporter 各数据源熔断器状态
type BreakerReporter interface {
	BreakerStates() map[string]string
}

type HealthHandler struct {
	breakers    BreakerReporter
	predictions PredictionReader
}

func NewHealthHandler(breakers BreakerReporter, predictions PredictionReader) *HealthHandler {
	return &HealthHandler{breakers: breakers, predictions: predictions}
}

// Health GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	_, generatedAt := h.predictions.Latest()
	var last interface{}
	if !generatedAt.IsZero() {
		last = generatedAt.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"feeds":       h.breakers.BreakerStates(),
		"lastRefresh": last,
	})
}
