package enigma

import "fmt"

// Rotor is one wheel of the machine.
//
// The wheel's visible letter ring and its internal wiring turn together, so
// the whole rotational state is a single offset. The ring setting is the
// fixed displacement of the wiring core against the letter ring. Nothing
// outside Step can change the offset.
type Rotor struct {
	model   string
	forward [AlphabetSize]int
	reverse [AlphabetSize]int
	notch   rune
	ring    int
	offset  int
	start   int
}

// NewRotor builds a rotor of the given model with its ring setting and
// initial window letter.
func NewRotor(model string, ring, position rune) (*Rotor, error) {
	spec, ok := rotorTable[model]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRotor, model)
	}
	ringIdx, ok := IndexOf(Normalize(ring))
	if !ok {
		return nil, fmt.Errorf("%w: rotor %s ring setting %q", ErrInvalidSetting, model, ring)
	}
	posIdx, ok := IndexOf(Normalize(position))
	if !ok {
		return nil, fmt.Errorf("%w: rotor %s position %q", ErrInvalidSetting, model, position)
	}
	fwd, err := permutation(spec.wiring)
	if err != nil {
		return nil, fmt.Errorf("%w: rotor %s: %v", ErrUnknownRotor, model, err)
	}

	r := &Rotor{
		model:   model,
		forward: fwd,
		notch:   spec.notch,
		ring:    ringIdx,
		offset:  posIdx,
		start:   posIdx,
	}
	for i, j := range fwd {
		r.reverse[j] = i
	}
	return r, nil
}

// shift is how far the wiring core sits from its home position.
func (r *Rotor) shift() int {
	return r.offset - r.ring
}

// ConvertForward passes a signal from the entry side toward the reflector.
func (r *Rotor) ConvertForward(i int) int {
	s := r.shift()
	return mod(r.forward[mod(i+s)] - s)
}

// ConvertBackward passes a signal from the reflector side back toward the
// entry. It inverts ConvertForward at the current rotation.
func (r *Rotor) ConvertBackward(i int) int {
	s := r.shift()
	return mod(r.reverse[mod(i+s)] - s)
}

// Step advances the wheel by one position.
func (r *Rotor) Step() {
	r.offset = mod(r.offset + 1)
}

// Window is the letter currently showing in the machine's window.
func (r *Rotor) Window() rune { return Letter(r.offset) }

// AtNotch reports whether the window shows the turnover letter.
func (r *Rotor) AtNotch() bool { return r.Window() == r.notch }

func (r *Rotor) Model() string { return r.model }
func (r *Rotor) Notch() rune   { return r.notch }
func (r *Rotor) Ring() rune    { return Letter(r.ring) }

// rewind returns the wheel to its construction-time position.
func (r *Rotor) rewind() {
	r.offset = r.start
}
