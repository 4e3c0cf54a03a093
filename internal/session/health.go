package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/ats-screener/internal/client"
)

// DefaultHealthInterval is how often the monitor polls the remote service.
const DefaultHealthInterval = 30 * time.Second

// Monitor polls the remote service's liveness on a timer. Concurrent checks
// collapse into a single in-flight request; each status update replaces the
// previous one atomically.
type Monitor struct {
	client   *client.Client
	interval time.Duration
	group    singleflight.Group

	mu          sync.RWMutex
	reachable   bool
	lastChecked time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a liveness monitor. A non-positive interval uses
// DefaultHealthInterval.
func NewMonitor(c *client.Client, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	return &Monitor{client: c, interval: interval}
}

// Start launches the polling loop. An immediate check runs first, then one
// per interval. Start is a no-op if the monitor is already running.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	m.mu.Unlock()

	go m.loop(ctx)
}

func (m *Monitor) loop(ctx context.Context) {
	defer close(m.done)

	m.Check(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check performs one liveness probe and records the outcome. Overlapping
// calls share a single request via singleflight.
func (m *Monitor) Check(ctx context.Context) bool {
	result, _, _ := m.group.Do("health", func() (any, error) {
		reachable := m.client.Health(ctx)
		m.mu.Lock()
		m.reachable = reachable
		m.lastChecked = time.Now()
		m.mu.Unlock()
		return reachable, nil
	})
	return result.(bool)
}

// Reachable reports the most recent known liveness status.
func (m *Monitor) Reachable() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reachable
}

// LastChecked returns when the status was last updated; zero before the
// first check completes.
func (m *Monitor) LastChecked() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastChecked
}

// Stop halts the polling loop and waits for it to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	done := m.done
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
