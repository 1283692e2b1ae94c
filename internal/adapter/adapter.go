package adapter

import (
	"fmt"

	"BestXI/internal/config"
	"BestXI/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// FeedRegistry 按配置实例化的数据源适配器（保持 enabled_feeds 的顺序）
type FeedRegistry struct {
	cfg      *config.Config
	logger   *logrus.Logger
	order    []string
	adapters map[string]interfaces.FeedAdapter
}

func NewFeedRegistry(cfg *config.Config, logger *logrus.Logger) *FeedRegistry {
	r := &FeedRegistry{
		cfg:      cfg,
		logger:   logger,
		adapters: make(map[string]interfaces.FeedAdapter),
	}
	r.initAdaptersFromFactories()
	return r
}

// initAdaptersFromFactories 遍历启用的数据源，匹配工厂函数创建实例
func (r *FeedRegistry) initAdaptersFromFactories() {
	r.logger.WithField("factory_feeds", ListFactories()).Debug("已注册的数据源工厂函数")

	for _, feed := range r.cfg.Sync.EnabledFeeds {
		feedCfg, ok := r.cfg.Feeds[feed]
		if !ok {
			r.logger.WithField("feed", feed).Error("缺少数据源配置，跳过")
			continue
		}
		factory, ok := GetFactory(feed)
		if !ok {
			r.logger.WithField("feed", feed).Error("未找到对应的工厂函数（init未注册？）")
			continue
		}
		adapterIns := factory(&feedCfg, r.logger)
		if adapterIns == nil {
			r.logger.WithField("feed", feed).Error("工厂函数返回nil适配器实例")
			continue
		}
		r.adapters[feed] = adapterIns
		r.order = append(r.order, feed)
		r.logger.WithField("feed", feed).Info("数据源适配器初始化成功")
	}

	r.logger.WithField("feeds", r.order).Info("最终初始化的数据源适配器")
}

// ListFeeds 已初始化的数据源，顺序与 enabled_feeds 一致
func (r *FeedRegistry) ListFeeds() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// GetAdapter 获取适配器实例
func (r *FeedRegistry) GetAdapter(feed string) (interfaces.FeedAdapter, error) {
	adapterIns, ok := r.adapters[feed]
	if !ok {
		return nil, fmt.Errorf("数据源%s未初始化适配器实例（已初始化：%v）", feed, r.order)
	}
	return adapterIns, nil
}

// Config 数据源配置（熔断参数等）
func (r *FeedRegistry) Config(feed string) config.FeedConfig {
	return r.cfg.Feeds[feed]
}
