package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every metric the cipher tools export.
type Registry struct {
	// Operator metrics
	MessagesTotal      *prometheus.CounterVec
	MessageDuration    *prometheus.HistogramVec
	MessageLength      *prometheus.HistogramVec
	CharactersTotal    *prometheus.CounterVec
	BatchSize          prometheus.Histogram
	MachinesBuiltTotal *prometheus.CounterVec
	ConfigErrorsTotal  prometheus.Counter
	SelfTestStatus     *prometheus.GaugeVec

	// System metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
	started  time.Time
	mu       sync.Mutex
}

var (
	defaultRegistry *Registry
	once            sync.Once
)
