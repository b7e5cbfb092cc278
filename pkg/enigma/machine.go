package enigma

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Machine is an assembled Enigma I: plugboard, rotor stack and reflector.
//
// Rotors are held fastest first; index 0 is the rightmost wheel, next to the
// entry plate. A Machine mutates its rotors on every letter it enciphers and
// must not be shared between goroutines without a lock (see LockedMachine).
type Machine struct {
	plugboard *PlugBoard
	rotors    []*Rotor
	reflector *Reflector
	processed int
}

// NewMachine assembles a machine from already built components. The machine
// takes ownership of them.
func NewMachine(plugboard *PlugBoard, rotors []*Rotor, reflector *Reflector) (*Machine, error) {
	if plugboard == nil {
		return nil, fmt.Errorf("%w: plugboard is required", ErrInvalidSetting)
	}
	if reflector == nil {
		return nil, fmt.Errorf("%w: reflector is required", ErrInvalidSetting)
	}
	if len(rotors) == 0 {
		return nil, fmt.Errorf("%w: at least one rotor is required", ErrInvalidSetting)
	}
	for i, r := range rotors {
		if r == nil {
			return nil, fmt.Errorf("%w: rotor slot %d is empty", ErrInvalidSetting, i)
		}
	}

	return &Machine{
		plugboard: plugboard,
		rotors:    append([]*Rotor(nil), rotors...),
		reflector: reflector,
	}, nil
}

// advance runs the stepping protocol for one key press.
//
// The fastest rotor always moves. Carry then propagates left one wheel at a
// time: a wheel showing its notch letter steps itself and its left
// neighbour, and the first wheel past the fastest one that is not on its
// notch ends the cascade. The slowest wheel is only ever stepped as a
// neighbour.
func (m *Machine) advance() {
	last := len(m.rotors) - 1
	if last == 0 {
		m.rotors[0].Step()
		return
	}
	for i := 0; i < last; i++ {
		r := m.rotors[i]
		switch {
		case r.AtNotch():
			r.Step()
			m.rotors[i+1].Step()
		case i == 0:
			r.Step()
		default:
			return
		}
	}
}

// Encode enciphers a single character. The character is upper-cased
// first; if it is then outside the alphabet it comes back upper-cased and
// the rotors do not move.
func (m *Machine) Encode(c rune) rune {
	n := Normalize(c)
	idx, ok := IndexOf(n)
	if !ok {
		return n
	}

	m.advance()
	m.processed++

	idx = m.plugboard.ConvertForward(idx)
	for _, r := range m.rotors {
		idx = r.ConvertForward(idx)
	}
	idx = m.reflector.Reflect(idx)
	for i := len(m.rotors) - 1; i >= 0; i-- {
		idx = m.rotors[i].ConvertBackward(idx)
	}
	idx = m.plugboard.ConvertBackward(idx)

	return Letter(idx)
}

// Encrypt enciphers text one character at a time, advancing the rotors as
// it goes. Bytes that are not valid UTF-8 are copied through unchanged.
func (m *Machine) Encrypt(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		c, size := utf8.DecodeRuneInString(text[i:])
		if c == utf8.RuneError && size == 1 {
			b.WriteByte(text[i])
		} else {
			b.WriteRune(m.Encode(c))
		}
		i += size
	}
	return b.String()
}

// Decrypt is Encrypt: the machine is its own inverse when started from the
// same rotor positions.
func (m *Machine) Decrypt(text string) string {
	return m.Encrypt(text)
}

// Positions returns the window letters, fastest rotor first.
func (m *Machine) Positions() string {
	w := make([]rune, len(m.rotors))
	for i, r := range m.rotors {
		w[i] = r.Window()
	}
	return string(w)
}

// Reset puts every rotor back on its starting position and clears the
// processed counter.
func (m *Machine) Reset() {
	for _, r := range m.rotors {
		r.rewind()
	}
	m.processed = 0
}

// Processed is the number of letters enciphered since construction or the
// last Reset.
func (m *Machine) Processed() int {
	return m.processed
}

// Settings describes the machine as it was configured, with starting
// positions rather than current ones.
func (m *Machine) Settings() Settings {
	s := Settings{
		Reflector: m.reflector.Model(),
		Plugboard: m.plugboard.String(),
		Rotors:    make([]RotorSetting, len(m.rotors)),
	}
	for i, r := range m.rotors {
		s.Rotors[i] = RotorSetting{
			Model:    r.Model(),
			Ring:     string(r.Ring()),
			Position: string(Letter(r.start)),
		}
	}
	return s
}
