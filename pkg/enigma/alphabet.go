package enigma

import "unicode"

const (
	// Alphabet is the ordered symbol table every component permutes.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// AlphabetSize is the number of positions on every wheel.
	AlphabetSize = len(Alphabet)
)

// IndexOf returns the alphabet position of r. Only upper-case letters are members.
func IndexOf(r rune) (int, bool) {
	if r < 'A' || r > 'Z' {
		return 0, false
	}
	return int(r - 'A'), true
}

// Letter returns the symbol at alphabet position i.
func Letter(i int) rune {
	return rune(Alphabet[i])
}

// Normalize maps r to the case the alphabet uses.
func Normalize(r rune) rune {
	return unicode.ToUpper(r)
}

// mod keeps offset arithmetic inside [0, AlphabetSize).
func mod(i int) int {
	i %= AlphabetSize
	if i < 0 {
		i += AlphabetSize
	}
	return i
}

// letterIndex parses a single-letter setting such as a ring or start position.
func letterIndex(s string) (int, bool) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, false
	}
	return IndexOf(Normalize(r[0]))
}
