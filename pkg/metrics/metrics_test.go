package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.MessagesTotal == nil || r.CharactersTotal == nil || r.MachinesBuiltTotal == nil {
		t.Error("cipher metrics not initialized")
	}
	if r.UptimeSeconds == nil || r.GoRoutines == nil {
		t.Error("system metrics not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordMessage(t *testing.T) {
	r := NewRegistry()

	r.RecordMessage("encrypt", "success", time.Millisecond, 10, 3)
	r.RecordMessage("encrypt", "success", time.Millisecond, 5, 0)
	r.RecordMessage("decrypt", "success", time.Millisecond, 4, 1)

	if got := counterValue(t, r.MessagesTotal.WithLabelValues("encrypt", "success")); got != 2 {
		t.Errorf("encrypt messages = %v, want 2", got)
	}
	if got := counterValue(t, r.MessagesTotal.WithLabelValues("decrypt", "success")); got != 1 {
		t.Errorf("decrypt messages = %v, want 1", got)
	}
	if got := counterValue(t, r.CharactersTotal.WithLabelValues(KindEnciphered)); got != 19 {
		t.Errorf("enciphered characters = %v, want 19", got)
	}
	if got := counterValue(t, r.CharactersTotal.WithLabelValues(KindPassthrough)); got != 4 {
		t.Errorf("passthrough characters = %v, want 4", got)
	}
}

func TestRecordMachineBuilt(t *testing.T) {
	r := NewRegistry()

	r.RecordMachineBuilt(nil)
	r.RecordMachineBuilt(errors.New("unknown rotor model"))
	r.RecordMachineBuilt(errors.New("invalid plugboard wiring"))

	if got := counterValue(t, r.MachinesBuiltTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("successful builds = %v, want 1", got)
	}
	if got := counterValue(t, r.MachinesBuiltTotal.WithLabelValues("error")); got != 2 {
		t.Errorf("failed builds = %v, want 2", got)
	}
	if got := counterValue(t, r.ConfigErrorsTotal); got != 2 {
		t.Errorf("config errors = %v, want 2", got)
	}
}

func TestSetSelfTest(t *testing.T) {
	r := NewRegistry()

	r.SetSelfTest("wheel_tables", true)
	r.SetSelfTest("known_answer", false)

	if got := gaugeValue(t, r.SelfTestStatus.WithLabelValues("wheel_tables")); got != 1 {
		t.Errorf("wheel_tables = %v, want 1", got)
	}
	if got := gaugeValue(t, r.SelfTestStatus.WithLabelValues("known_answer")); got != 0 {
		t.Errorf("known_answer = %v, want 0", got)
	}

	r.SetSelfTest("known_answer", true)
	if got := gaugeValue(t, r.SelfTestStatus.WithLabelValues("known_answer")); got != 1 {
		t.Errorf("known_answer after pass = %v, want 1", got)
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics()

	if gaugeValue(t, r.GoRoutines) < 1 {
		t.Error("goroutine gauge should be at least 1")
	}
	if gaugeValue(t, r.MemoryAllocBytes) <= 0 {
		t.Error("heap gauge should be positive")
	}
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordMessage("encrypt", "success", time.Millisecond, 26, 0)
	r.RecordBatch(3)

	path := filepath.Join(t.TempDir(), "enigma.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		`enigma_messages_total{operation="encrypt",status="success"} 1`,
		`enigma_characters_total{kind="enciphered"} 26`,
		"enigma_batch_size_messages_count 1",
		"enigma_uptime_seconds",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func TestWriteTextfileBadPath(t *testing.T) {
	r := NewRegistry()
	if err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom")); err == nil {
		t.Error("expected error for unwritable path")
	}
}
