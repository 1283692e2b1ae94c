package adapter

import (
	"fmt"
	"sort"

	"BestXI/internal/config"
	"BestXI/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// Factory 数据源适配器工厂函数签名
// 入参：数据源配置、日志实例
// 出参：实现FeedAdapter接口的适配器实例
type Factory func(cfg *config.FeedConfig, logger *logrus.Logger) interfaces.FeedAdapter

// ========== 全局工厂函数注册表 ==========
var factoryRegistry = make(map[string]Factory)

// Register 供适配器init函数调用，注册工厂函数
func Register(feed string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("数据源%s的工厂函数不能为nil", feed))
	}
	if _, exists := factoryRegistry[feed]; exists {
		logrus.Warnf("数据源%s的适配器已注册，将覆盖原有实现", feed)
	}
	factoryRegistry[feed] = factory
}

// GetFactory 获取指定数据源的工厂函数
func GetFactory(feed string) (Factory, bool) {
	factory, ok := factoryRegistry[feed]
	return factory, ok
}

// ListFactories 列出所有已注册的数据源（按名称排序）
func ListFactories() []string {
	feeds := make([]string, 0, len(factoryRegistry))
	for f := range factoryRegistry {
		feeds = append(feeds, f)
	}
	sort.Strings(feeds)
	return feeds
}
