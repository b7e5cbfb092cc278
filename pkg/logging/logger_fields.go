package logging

import (
	"strings"
	"time"
)

func String(key, value string) Field             { return Field{Key: key, Value: value} }
func Int(key string, value int) Field            { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field          { return Field{Key: key, Value: value} }
func Any(key string, value any) Field            { return Field{Key: key, Value: value} }
func Duration(key string, d time.Duration) Field { return Field{Key: key, Value: d.String()} }

// Error records err under "error". A nil error is recorded as null.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Component(name string) Field { return String("component", name) }
func Operation(op string) Field   { return String("operation", op) }
func MessageID(id string) Field   { return String("message_id", id) }
func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
func Count(n int) Field   { return Int("count", n) }
func Path(p string) Field { return String("path", p) }

// Rotors records a wheel order, e.g. "I-II-III".
func Rotors(models []string) Field {
	return String("rotors", strings.Join(models, "-"))
}

func Reflector(model string) Field { return String("reflector", model) }

// Positions records rotor window letters, fastest first.
func Positions(windows string) Field { return String("positions", windows) }
