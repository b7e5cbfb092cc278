package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Character kinds for CharactersTotal.
const (
	KindEnciphered  = "enciphered"
	KindPassthrough = "passthrough"
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with all metrics registered on a private
// Prometheus registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}
	r.initCipherMetrics()
	r.initSystemMetrics()
	return r
}

// RecordMessage records one message passing through a machine.
func (r *Registry) RecordMessage(operation, status string, duration time.Duration, enciphered, passthrough int) {
	r.MessagesTotal.WithLabelValues(operation, status).Inc()
	r.MessageDuration.WithLabelValues(operation).Observe(duration.Seconds())
	r.MessageLength.WithLabelValues(operation).Observe(float64(enciphered + passthrough))
	r.CharactersTotal.WithLabelValues(KindEnciphered).Add(float64(enciphered))
	r.CharactersTotal.WithLabelValues(KindPassthrough).Add(float64(passthrough))
}

// RecordBatch records the size of a batch submitted at once.
func (r *Registry) RecordBatch(size int) {
	r.BatchSize.Observe(float64(size))
}

// RecordMachineBuilt records a machine construction attempt.
func (r *Registry) RecordMachineBuilt(err error) {
	if err != nil {
		r.MachinesBuiltTotal.WithLabelValues("error").Inc()
		r.ConfigErrorsTotal.Inc()
		return
	}
	r.MachinesBuiltTotal.WithLabelValues("success").Inc()
}

// SetSelfTest records the outcome of a named self-test check.
func (r *Registry) SetSelfTest(check string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	r.SelfTestStatus.WithLabelValues(check).Set(v)
}

// UpdateSystemMetrics refreshes uptime, goroutine and heap gauges.
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	r.UptimeSeconds.Set(time.Since(r.started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(ms.Alloc))
}

// WriteTextfile writes the registry in Prometheus text format to path, for
// pick-up by a node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	r.UpdateSystemMetrics()
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
