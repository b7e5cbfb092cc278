package enigma

import (
	"errors"
	"fmt"
	"sort"
)

type wheel struct {
	wiring string
	notch  rune
}

// Enigma I wheel set. Wirings read as the contact reached from A, B, C ...
// at ring setting A and position A.
var rotorTable = map[string]wheel{
	"I":   {wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", notch: 'Q'},
	"II":  {wiring: "AJDKSIRUXBLHWTMCQGZNPYFVOE", notch: 'E'},
	"III": {wiring: "BDFHJLCPRTXVZNYEAIUWGSKMQO", notch: 'V'},
	"IV":  {wiring: "ESOVPZJAYQUIRHXLNFTGKDCMWB", notch: 'J'},
	"V":   {wiring: "VZBRGITYUPSDNHLXAWMJQOEKCF", notch: 'Z'},
}

var rotorOrder = []string{"I", "II", "III", "IV", "V"}

// Umkehrwalzen A, B and C.
var reflectorTable = map[string]string{
	"A": "EJMZALYXVBWFCRQUONTSPIKHGD",
	"B": "YRUHQSLDPXNGOKMIEBFZCWVJAT",
	"C": "FVPJIAOYEDRZXWGCTKUQSBNMHL",
}

// RotorModels lists the rotor models in issue order.
func RotorModels() []string {
	return append([]string(nil), rotorOrder...)
}

// ReflectorModels lists the reflector models alphabetically.
func ReflectorModels() []string {
	names := make([]string, 0, len(reflectorTable))
	for name := range reflectorTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RotorSpec returns the wiring and notch of a rotor model.
func RotorSpec(model string) (wiring string, notch rune, ok bool) {
	w, ok := rotorTable[model]
	return w.wiring, w.notch, ok
}

// ReflectorSpec returns the wiring of a reflector model.
func ReflectorSpec(model string) (string, bool) {
	w, ok := reflectorTable[model]
	return w, ok
}

// VerifyTables checks that every rotor wiring is a bijection of the alphabet
// and every reflector wiring is an involution without fixed points.
func VerifyTables() error {
	var errs []error
	for _, name := range RotorModels() {
		w := rotorTable[name]
		if _, err := permutation(w.wiring); err != nil {
			errs = append(errs, fmt.Errorf("rotor %s: %w", name, err))
		}
		if _, ok := IndexOf(w.notch); !ok {
			errs = append(errs, fmt.Errorf("rotor %s: notch %q outside alphabet", name, w.notch))
		}
	}
	for _, name := range ReflectorModels() {
		p, err := permutation(reflectorTable[name])
		if err != nil {
			errs = append(errs, fmt.Errorf("reflector %s: %w", name, err))
			continue
		}
		for i, j := range p {
			if i == j || p[j] != i {
				errs = append(errs, fmt.Errorf("reflector %s: %c does not pair back", name, Letter(i)))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// permutation converts a wiring string into an index table, rejecting
// anything that is not a bijection of the alphabet.
func permutation(wiring string) ([AlphabetSize]int, error) {
	var p [AlphabetSize]int
	if len(wiring) != AlphabetSize {
		return p, fmt.Errorf("wiring has %d contacts, want %d", len(wiring), AlphabetSize)
	}
	var seen [AlphabetSize]bool
	for i, r := range wiring {
		j, ok := IndexOf(r)
		if !ok {
			return p, fmt.Errorf("contact %q outside alphabet", r)
		}
		if seen[j] {
			return p, fmt.Errorf("contact %c wired twice", r)
		}
		seen[j] = true
		p[i] = j
	}
	return p, nil
}
