package enigma

import "fmt"

// Reflector turns the signal back through the rotor stack. It never moves.
type Reflector struct {
	model  string
	wiring [AlphabetSize]int
}

// NewReflector builds a reflector from its model letter.
func NewReflector(model string) (*Reflector, error) {
	w, ok := reflectorTable[model]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReflector, model)
	}
	p, err := permutation(w)
	if err != nil {
		return nil, fmt.Errorf("%w: reflector %s: %v", ErrUnknownReflector, model, err)
	}
	return &Reflector{model: model, wiring: p}, nil
}

// Reflect maps a signal arriving from the slowest rotor.
func (r *Reflector) Reflect(i int) int {
	return r.wiring[i]
}

func (r *Reflector) Model() string { return r.model }
