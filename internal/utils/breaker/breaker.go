package breaker

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	defaultThreshold = 3
	defaultTimeout   = 60 * time.Second
)

// Breaker 包装 gobreaker，给每个数据源一个独立熔断器
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New 连续失败 threshold 次后熔断，timeout 后进入半开状态
func New(name string, threshold uint32, timeout time.Duration, logger *logrus.Logger) *Breaker {
	if threshold == 0 {
		threshold = defaultThreshold
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"feed":      name,
				"from":      from.String(),
				"to":        to.String(),
			}).Warn("熔断器状态变化")
		},
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Execute 在熔断器保护下执行 fn；熔断打开时直接返回 gobreaker.ErrOpenState
func (b *Breaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return b.cb.Execute(fn)
}

// State 当前状态（closed/half-open/open）
func (b *Breaker) State() string {
	return b.cb.State().String()
}
