package stats

import (
	"context"
	"sync"
	"testing"
	"time"

	"BestXI/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedSource 第一次加载阻塞到 release 关闭并返回旧数据，之后立即返回新数据
type gatedSource struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
}

func (s *gatedSource) Name() string { return "gated" }

func (s *gatedSource) LoadRecords(ctx context.Context) ([]model.StatsRecord, error) {
	s.mu.Lock()
	n := s.calls
	s.calls++
	s.mu.Unlock()

	if n == 0 {
		close(s.started)
		<-s.release
		return []model.StatsRecord{{Player: "A", Points: 1}}, nil
	}
	return []model.StatsRecord{{Player: "A", Points: 2}}, nil
}

func TestHolderReloadSerialized(t *testing.T) {
	src := &gatedSource{started: make(chan struct{}), release: make(chan struct{})}
	h := NewHolder(src, logrus.New())
	ctx := context.Background()

	first := make(chan error, 1)
	go func() { first <- h.Reload(ctx) }()
	<-src.started

	second := make(chan error, 1)
	go func() { second <- h.Reload(ctx) }()

	select {
	case <-second:
		t.Fatal("second reload finished while the first was still loading")
	case <-time.After(50 * time.Millisecond):
	}

	close(src.release)
	require.NoError(t, <-first)
	require.NoError(t, <-second)

	rec, ok := h.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, 2.0, rec.Points, "later reload wins")
}
