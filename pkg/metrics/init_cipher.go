package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initCipherMetrics() {
	r.MessagesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "enigma_messages_total",
			Help: "Total number of messages processed",
		},
		[]string{"operation", "status"},
	)

	r.MessageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enigma_message_duration_seconds",
			Help:    "Time spent enciphering one message",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		},
		[]string{"operation"},
	)

	r.MessageLength = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enigma_message_length_characters",
			Help:    "Characters per message, letters and passthrough together",
			Buckets: []float64{10, 50, 250, 1000, 5000},
		},
		[]string{"operation"},
	)

	r.CharactersTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "enigma_characters_total",
			Help: "Characters processed, by whether they went through the rotors",
		},
		[]string{"kind"},
	)

	r.BatchSize = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enigma_batch_size_messages",
			Help:    "Messages per batch submission",
			Buckets: []float64{1, 5, 25, 100, 500},
		},
	)

	r.MachinesBuiltTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "enigma_machines_built_total",
			Help: "Machine construction attempts",
		},
		[]string{"status"},
	)

	r.ConfigErrorsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "enigma_config_errors_total",
			Help: "Key sheets rejected during machine construction",
		},
	)

	r.SelfTestStatus = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "enigma_selftest_healthy",
			Help: "Whether the named self-test check last passed (1=yes, 0=no)",
		},
		[]string{"check"},
	)
}
