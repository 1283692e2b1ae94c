package api

import (
	"net/http"
	"time"

	"BestXI/internal/model"
	"BestXI/internal/predictor"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PredictionReader 最近一轮预测结果的只读视图（service.PredictionService 实现）
type PredictionReader interface {
	Latest() ([]model.PredictionResult, time.Time)
	Get(matchID string) (model.PredictionResult, bool)
}

// PredictionHandler 提供给前端的最佳阵容查询接口
type PredictionHandler struct {
	predictions PredictionReader
	logger      *logrus.Logger
}

func NewPredictionHandler(predictions PredictionReader, logger *logrus.Logger) *PredictionHandler {
	return &PredictionHandler{predictions: predictions, logger: logger}
}

// ListPredictions 最近一轮预测
// GET /api/predictions?kind=predicted|pending|skipped|all
// 不传 kind 时返回可展示的结果（predicted + pending）
func (h *PredictionHandler) ListPredictions(c *gin.Context) {
	results, generatedAt := h.predictions.Latest()

	kind := c.Query("kind")
	switch kind {
	case "":
		results = predictor.Presentable(results)
	case "all":
	case string(model.ResultPredicted), string(model.ResultPending), string(model.ResultSkipped):
		results = filterKind(results, model.ResultKind(kind))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be one of predicted, pending, skipped, all"})
		return
	}

	c.JSON(http.StatusOK, model.NewPredictionSnapshot(results, generatedAt))
}

// GetPrediction 单场比赛的最佳阵容
// GET /api/predictions/:match_id
func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	matchID := c.Param("match_id")
	if matchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "match_id is required"})
		return
	}
	res, ok := h.predictions.Get(matchID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found in latest run"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func filterKind(results []model.PredictionResult, kind model.ResultKind) []model.PredictionResult {
	out := make([]model.PredictionResult, 0, len(results))
	for _, r := range results {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
