package enigma

import (
	"fmt"
	"strings"
)

// PlugBoard swaps pairs of letters before and after the rotor stack.
// Unplugged letters map to themselves.
type PlugBoard struct {
	wiring [AlphabetSize]int
}

// NewPlugBoard parses a whitespace separated list of letter pairs such as
// "AB CD EF". An empty list gives the identity board.
func NewPlugBoard(pairs string) (*PlugBoard, error) {
	pb := &PlugBoard{}
	for i := range pb.wiring {
		pb.wiring[i] = i
	}

	var used [AlphabetSize]bool
	for _, token := range strings.Fields(pairs) {
		ends := []rune(token)
		if len(ends) != 2 {
			return nil, fmt.Errorf("%w: pair %q must be exactly two letters", ErrInvalidPlugboard, token)
		}
		a, okA := IndexOf(Normalize(ends[0]))
		b, okB := IndexOf(Normalize(ends[1]))
		if !okA || !okB {
			return nil, fmt.Errorf("%w: pair %q has a symbol outside the alphabet", ErrInvalidPlugboard, token)
		}
		if used[a] || used[b] || a == b {
			return nil, fmt.Errorf("%w: pair %q reuses a plugged letter", ErrInvalidPlugboard, token)
		}
		used[a], used[b] = true, true
		pb.wiring[a], pb.wiring[b] = b, a
	}
	return pb, nil
}

// ConvertForward maps a signal entering the machine.
func (p *PlugBoard) ConvertForward(i int) int {
	return p.wiring[i]
}

// ConvertBackward maps a signal leaving the machine. A swap is its own
// inverse, so this is the same lookup as ConvertForward.
func (p *PlugBoard) ConvertBackward(i int) int {
	return p.wiring[i]
}

// Pairs returns the plugged pairs in canonical form, ordered by first letter.
func (p *PlugBoard) Pairs() []string {
	var pairs []string
	for i, j := range p.wiring {
		if i < j {
			pairs = append(pairs, string([]rune{Letter(i), Letter(j)}))
		}
	}
	return pairs
}

// String renders the board the way it is configured.
func (p *PlugBoard) String() string {
	return strings.Join(p.Pairs(), " ")
}
