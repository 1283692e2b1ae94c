package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"BestXI/internal/model"
	"BestXI/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FeedRefresher 手动刷新能力（service.PredictionService 实现）
type FeedRefresher interface {
	RefreshFeed(ctx context.Context, feed string) ([]model.PredictionResult, error)
}

// StatsReloader 重新加载统计数据（stats.Holder 实现）
type StatsReloader interface {
	Reload(ctx context.Context) error
}

type SyncHandler struct {
	refresher FeedRefresher
	stats     StatsReloader
	logger    *logrus.Logger
}

func NewSyncHandler(refresher FeedRefresher, stats StatsReloader, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{refresher: refresher, stats: stats, logger: logger}
}

// SyncFeedHandler 清掉指定数据源的缓存并立即跑一轮预测
// @Summary 手动刷新比赛数据
// @Param feed path string true "数据源名称（cricapi/allsports）"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]interface{}
// @Router /sync/feed/{feed} [post]
func (h *SyncHandler) SyncFeedHandler(c *gin.Context) {
	feed := c.Param("feed")

	results, err := h.refresher.RefreshFeed(c.Request.Context(), feed)
	if errors.Is(err, service.ErrUnknownFeed) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		// 本轮已用其余数据源完成预测，只是结果不完整
		h.logger.Warnf("刷新%s失败: %v", feed, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   err.Error(),
			"matches": len(results),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s刷新成功", feed),
		"matches": len(results),
	})
}

// ReloadStatsHandler 重新读取统计数据，下一轮预测生效
// @Router /api/stats/reload [post]
func (h *SyncHandler) ReloadStatsHandler(c *gin.Context) {
	if err := h.stats.Reload(c.Request.Context()); err != nil {
		h.logger.Errorf("重新加载统计数据失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "统计数据已重新加载"})
}
