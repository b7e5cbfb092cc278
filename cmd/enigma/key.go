package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
)

// applyKeyFlags overlays the key flags on s. --rotors replaces the wheel
// order and resets rings and positions to A; --rings and --positions then
// set one letter per rotor, fastest first.
func applyKeyFlags(s *enigma.Settings) error {
	if keyRotors != "" {
		models := strings.Split(keyRotors, ",")
		s.Rotors = make([]enigma.RotorSetting, len(models))
		for i, m := range models {
			s.Rotors[i] = enigma.RotorSetting{
				Model:    strings.ToUpper(strings.TrimSpace(m)),
				Ring:     "A",
				Position: "A",
			}
		}
	}

	if keyRings != "" {
		letters, err := perRotor("--rings", keyRings, len(s.Rotors))
		if err != nil {
			return err
		}
		for i := range s.Rotors {
			s.Rotors[i].Ring = letters[i]
		}
	}

	if keyPositions != "" {
		letters, err := perRotor("--positions", keyPositions, len(s.Rotors))
		if err != nil {
			return err
		}
		for i := range s.Rotors {
			s.Rotors[i].Position = letters[i]
		}
	}

	if keyReflector != "" {
		s.Reflector = strings.ToUpper(keyReflector)
	}
	if keyPlugs != "" {
		s.Plugboard = keyPlugs
	}
	return nil
}

func perRotor(flag, value string, rotors int) ([]string, error) {
	if n := utf8.RuneCountInString(value); n != rotors {
		return nil, fmt.Errorf("%w: %s has %d letters for %d rotors", enigma.ErrInvalidSetting, flag, n, rotors)
	}
	letters := make([]string, 0, rotors)
	for _, r := range value {
		letters = append(letters, string(enigma.Normalize(r)))
	}
	return letters, nil
}
