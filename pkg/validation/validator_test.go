package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
)

func TestValidateSettings(t *testing.T) {
	valid := enigma.DefaultSettings()

	tests := []struct {
		name        string
		mutate      func(s *enigma.Settings)
		expectError bool
		errorField  string
		sentinel    error
	}{
		{
			name:   "default key",
			mutate: func(s *enigma.Settings) {},
		},
		{
			name:   "plugs and lower-case letters",
			mutate: func(s *enigma.Settings) { s.Plugboard = "ab cd"; s.Rotors[0].Ring = "q" },
		},
		{
			name:        "no rotors",
			mutate:      func(s *enigma.Settings) { s.Rotors = nil },
			expectError: true,
			errorField:  "Rotors",
		},
		{
			name:        "unknown rotor",
			mutate:      func(s *enigma.Settings) { s.Rotors[1].Model = "VIII" },
			expectError: true,
			errorField:  "Rotors[1].Model",
			sentinel:    enigma.ErrUnknownRotor,
		},
		{
			name:        "missing reflector",
			mutate:      func(s *enigma.Settings) { s.Reflector = "" },
			expectError: true,
			errorField:  "Reflector",
		},
		{
			name:        "unknown reflector",
			mutate:      func(s *enigma.Settings) { s.Reflector = "D" },
			expectError: true,
			errorField:  "Reflector",
			sentinel:    enigma.ErrUnknownReflector,
		},
		{
			name:        "ring is a digit",
			mutate:      func(s *enigma.Settings) { s.Rotors[2].Ring = "7" },
			expectError: true,
			errorField:  "Rotors[2].Ring",
			sentinel:    enigma.ErrInvalidSetting,
		},
		{
			name:        "position two letters",
			mutate:      func(s *enigma.Settings) { s.Rotors[0].Position = "AB" },
			expectError: true,
			errorField:  "Rotors[0].Position",
			sentinel:    enigma.ErrInvalidSetting,
		},
		{
			name:        "plug reused",
			mutate:      func(s *enigma.Settings) { s.Plugboard = "AB BC" },
			expectError: true,
			errorField:  "Plugboard",
			sentinel:    enigma.ErrInvalidPlugboard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			s.Rotors = append([]enigma.RotorSetting(nil), valid.Rotors...)
			tt.mutate(&s)

			err := ValidateSettings(&s)
			if !tt.expectError {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if _, err := enigma.New(s); err != nil {
					t.Fatalf("validated settings failed to build: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errorField) {
				t.Errorf("error %q does not mention %s", err, tt.errorField)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("error %q does not wrap %v", err, tt.sentinel)
			}
			if _, buildErr := enigma.New(s); buildErr == nil {
				t.Error("settings rejected by validation still built a machine")
			}
		})
	}
}

func TestValidateSettingsReportsEveryField(t *testing.T) {
	s := enigma.Settings{
		Rotors:    []enigma.RotorSetting{{Model: "X", Ring: "1", Position: "A"}},
		Reflector: "Q",
	}
	err := ValidateSettings(&s)
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, field := range []string{"Rotors[0].Model", "Rotors[0].Ring", "Reflector"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestValidateSettingsNil(t *testing.T) {
	if err := ValidateSettings(nil); err == nil {
		t.Error("expected error for nil settings")
	}
}

func TestValidateRotorOrder(t *testing.T) {
	s := enigma.DefaultSettings()
	if err := ValidateRotorOrder(&s); err != nil {
		t.Fatalf("distinct wheels rejected: %v", err)
	}

	s.Rotors[2].Model = "I"
	err := ValidateRotorOrder(&s)
	if err == nil {
		t.Fatal("repeated wheel accepted")
	}
	if !strings.Contains(err.Error(), "Rotors[2]") || !strings.Contains(err.Error(), "slot 0") {
		t.Errorf("unexpected message %q", err)
	}
}
