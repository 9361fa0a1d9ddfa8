package monitoring

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// RolloutMonitor periodically samples runtime metrics and rollout
// throughput while a batch of episodes runs
type RolloutMonitor struct {
	mu             sync.RWMutex
	baseline       int
	current        int
	peak           int
	heapBytes      uint64
	checkInterval  time.Duration
	alertThreshold int
	lastAlert      time.Time
	alertCooldown  time.Duration
	started        time.Time

	ticks    atomic.Int64
	episodes atomic.Int64

	logger zerolog.Logger
	done   chan struct{}
}

// NewRolloutMonitor creates a monitor that samples every interval. An
// interval of zero or less defaults to 30 seconds.
func NewRolloutMonitor(interval time.Duration, logger zerolog.Logger) *RolloutMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	baseline := runtime.NumGoroutine()
	return &RolloutMonitor{
		baseline:       baseline,
		current:        baseline,
		peak:           baseline,
		checkInterval:  interval,
		alertThreshold: 1000,
		alertCooldown:  5 * time.Minute,
		started:        time.Now(),
		logger:         logger.With().Str("component", "rollout_monitor").Logger(),
	}
}

// Start begins sampling until ctx is cancelled or Stop is called
func (m *RolloutMonitor) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	go func() {
		defer cancel()
		select {
		case <-done:
		case <-ctx.Done():
		}
	}()
	go m.monitor(ctx)

	m.logger.Info().
		Int("baseline_goroutines", m.baseline).
		Dur("interval", m.checkInterval).
		Msg("Started rollout monitoring")
}

// Stop stops the sampling loop. It is safe to call more than once.
func (m *RolloutMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
}

func (m *RolloutMonitor) monitor(ctx context.Context) {
	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sample()
		case <-ctx.Done():
			return
		}
	}
}

// sample records runtime metrics and logs progress
func (m *RolloutMonitor) sample() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	current := runtime.NumGoroutine()

	m.mu.Lock()
	m.current = current
	if current > m.peak {
		m.peak = current
	}
	m.heapBytes = mem.HeapAlloc

	shouldAlert := current > m.alertThreshold &&
		time.Since(m.lastAlert) > m.alertCooldown
	if shouldAlert {
		m.lastAlert = time.Now()
	}
	m.mu.Unlock()

	metrics := m.GetMetrics()
	m.logger.Info().
		Int64("episodes", metrics.Episodes).
		Int64("ticks", metrics.Ticks).
		Float64("ticks_per_sec", metrics.TicksPerSecond).
		Int("goroutines", metrics.Goroutines).
		Uint64("heap_bytes", metrics.HeapBytes).
		Msg("Rollout progress")

	if shouldAlert {
		m.logger.Warn().
			Int("current", current).
			Int("threshold", m.alertThreshold).
			Msg("High goroutine count detected - possible leak")
	}
}

// RecordTick counts one processed tick
func (m *RolloutMonitor) RecordTick() {
	m.ticks.Add(1)
}

// RecordEpisode counts one finished episode
func (m *RolloutMonitor) RecordEpisode() {
	m.episodes.Add(1)
}

// GetMetrics returns the latest sampled metrics
func (m *RolloutMonitor) GetMetrics() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ticks := m.ticks.Load()
	elapsed := time.Since(m.started)
	var rate float64
	if elapsed > 0 {
		rate = float64(ticks) / elapsed.Seconds()
	}

	return Metrics{
		Goroutines:     m.current,
		Baseline:       m.baseline,
		Peak:           m.peak,
		HeapBytes:      m.heapBytes,
		Ticks:          ticks,
		Episodes:       m.episodes.Load(),
		TicksPerSecond: rate,
		Elapsed:        elapsed,
	}
}

// Metrics contains rollout statistics
type Metrics struct {
	Goroutines     int           `json:"goroutines"`
	Baseline       int           `json:"baseline"`
	Peak           int           `json:"peak"`
	HeapBytes      uint64        `json:"heap_bytes"`
	Ticks          int64         `json:"ticks"`
	Episodes       int64         `json:"episodes"`
	TicksPerSecond float64       `json:"ticks_per_sec"`
	Elapsed        time.Duration `json:"elapsed"`
}
