package utils

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	CheckedAt time.Time `json:"checkedAt"`
}

// HealthMonitor keeps the latest store health snapshot in memory.
type HealthMonitor struct {
	pinger  Pinger
	timeout time.Duration

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(pinger Pinger, timeout time.Duration) *HealthMonitor {
	return &HealthMonitor{pinger: pinger, timeout: timeout}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check pings the store once and records the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	status := HealthStatus{
		Mongo:     m.pinger.Ping(ctx, readpref.Primary()) == nil,
		CheckedAt: time.Now(),
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start checks immediately and then every interval until ctx is done.
func (m *HealthMonitor) Start(ctx context.Context, interval time.Duration) {
	m.Check(ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
