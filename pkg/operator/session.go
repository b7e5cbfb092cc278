package operator

import (
	"strings"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
	"github.com/dd0wney/cluso-enigma/pkg/logging"
	"github.com/dd0wney/cluso-enigma/pkg/metrics"
)

// Session is a machine that keeps its rotor state between calls, like a
// clerk typing a message one key at a time. It is safe for concurrent use.
type Session struct {
	machine *enigma.LockedMachine
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewSession sets up a machine from the operator's key.
func (o *Operator) NewSession() *Session {
	return &Session{
		machine: enigma.NewLocked(enigma.MustNew(o.settings)),
		logger:  o.logger.With(logging.Operation("session")),
		metrics: o.metrics,
	}
}

// Press enciphers one key press and returns the lamp that lights. Keys
// outside the alphabet light nothing and come back unchanged.
func (s *Session) Press(r rune) rune {
	out := []rune(s.machine.Encrypt(string(r)))[0]
	if _, ok := enigma.IndexOf(enigma.Normalize(r)); ok {
		s.metrics.CharactersTotal.WithLabelValues(metrics.KindEnciphered).Inc()
	} else {
		s.metrics.CharactersTotal.WithLabelValues(metrics.KindPassthrough).Inc()
	}
	return out
}

// Type enciphers a run of key presses.
func (s *Session) Type(text string) string {
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(s.Press(r))
	}
	return b.String()
}

// Positions returns the rotor windows, fastest first.
func (s *Session) Positions() string {
	return s.machine.Positions()
}

// Reset returns the rotors to the key's starting positions.
func (s *Session) Reset() {
	s.machine.Reset()
	s.logger.Debug("session reset", logging.Positions(s.machine.Positions()))
}
