package monitoring

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolloutMonitor_Counters(t *testing.T) {
	m := NewRolloutMonitor(0, zerolog.Nop())
	assert.Equal(t, 30*time.Second, m.checkInterval)

	for i := 0; i < 7; i++ {
		m.RecordTick()
	}
	m.RecordEpisode()

	metrics := m.GetMetrics()
	assert.Equal(t, int64(7), metrics.Ticks)
	assert.Equal(t, int64(1), metrics.Episodes)
	assert.Greater(t, metrics.TicksPerSecond, 0.0)
	assert.Equal(t, metrics.Baseline, metrics.Goroutines)
}

func TestRolloutMonitor_SampleLogsProgress(t *testing.T) {
	var buf bytes.Buffer
	m := NewRolloutMonitor(time.Hour, zerolog.New(&buf))
	m.RecordTick()

	m.sample()

	metrics := m.GetMetrics()
	assert.Greater(t, metrics.HeapBytes, uint64(0))
	assert.GreaterOrEqual(t, metrics.Peak, metrics.Goroutines)
	assert.Contains(t, buf.String(), "Rollout progress")
	assert.Contains(t, buf.String(), `"ticks":1`)
}

func TestRolloutMonitor_StartStop(t *testing.T) {
	m := NewRolloutMonitor(5*time.Millisecond, zerolog.Nop())

	m.Start(context.Background())
	require.Eventually(t, func() bool {
		return m.GetMetrics().HeapBytes > 0
	}, time.Second, 5*time.Millisecond)

	m.Stop()
	m.Stop()
}

func TestRolloutMonitor_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewRolloutMonitor(time.Millisecond, zerolog.Nop())
	m.Start(ctx)
	cancel()
	m.Stop()
}
