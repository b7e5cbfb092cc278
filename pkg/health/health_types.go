package health

import (
	"sync"
	"time"
)

// Status is the outcome of a check.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Check is the result of one self-test.
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	Duration    time.Duration  `json:"duration_ns"`
}

// CheckFunc performs one self-test.
type CheckFunc func() Check

// HealthChecker runs a set of named self-tests.
type HealthChecker struct {
	checks map[string]CheckFunc
	order  []string
	mu     sync.RWMutex

	// observe, when set, is told the outcome of every check.
	observe func(name string, healthy bool)
}

// Response aggregates every check. The worst status wins.
type Response struct {
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
}

// Healthy reports whether no check failed outright.
func (r Response) Healthy() bool {
	return r.Status != StatusUnhealthy
}
