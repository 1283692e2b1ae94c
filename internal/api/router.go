package api

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
)

// LiveStream 预测结果实时推送（push.Hub 实现）
type LiveStream interface {
	HandleWebSocket(c *gin.Context)
}

// Handlers 路由注册需要的全部处理器；Live 为 nil 时不注册 /ws/predictions
type Handlers struct {
	Prediction *PredictionHandler
	Sync       *SyncHandler
	Health     *HealthHandler
	Live       LiveStream
}

// RegisterRoutes 注册API路由；enablePprof 为 true 时挂载 /debug/pprof
func RegisterRoutes(r *gin.Engine, h Handlers, enablePprof bool) {
	if enablePprof {
		// 注册ppof 方便调试和监测性能问题
		pprof.Register(r)
	}

	r.GET("/health", h.Health.Health)

	r.POST("/sync/feed/:feed", h.Sync.SyncFeedHandler)

	if h.Live != nil {
		r.GET("/ws/predictions", h.Live.HandleWebSocket)
	}

	apiGroup := r.Group("/api")
	apiGroup.GET("/predictions", h.Prediction.ListPredictions)
	apiGroup.GET("/predictions/:match_id", h.Prediction.GetPrediction)
	apiGroup.POST("/stats/reload", h.Sync.ReloadStatsHandler)
}
