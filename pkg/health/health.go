package health

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// NewHealthChecker creates an empty checker.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{checks: make(map[string]CheckFunc)}
}

// RegisterCheck adds or replaces a named check.
func (hc *HealthChecker) RegisterCheck(name string, check CheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	if _, exists := hc.checks[name]; !exists {
		hc.order = append(hc.order, name)
	}
	hc.checks[name] = check
}

// OnResult registers a callback receiving each check's outcome, used to
// export self-test results as metrics.
func (hc *HealthChecker) OnResult(fn func(name string, healthy bool)) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.observe = fn
}

// Check runs every registered check in registration order.
func (hc *HealthChecker) Check() Response {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	response := Response{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Checks:    make(map[string]Check, len(hc.checks)),
	}

	for _, name := range hc.order {
		start := time.Now()
		check := hc.checks[name]()
		check.Duration = time.Since(start)
		check.LastChecked = start
		if check.Name == "" {
			check.Name = name
		}
		response.Checks[name] = check

		if hc.observe != nil {
			hc.observe(name, check.Status != StatusUnhealthy)
		}

		switch {
		case check.Status == StatusUnhealthy:
			response.Status = StatusUnhealthy
		case check.Status == StatusDegraded && response.Status != StatusUnhealthy:
			response.Status = StatusDegraded
		}
	}

	return response
}

// WriteJSON writes the response as indented JSON.
func (r Response) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode health response: %w", err)
	}
	return nil
}
