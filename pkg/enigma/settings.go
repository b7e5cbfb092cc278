package enigma

import "fmt"

// RotorSetting selects one wheel and how it is set up.
type RotorSetting struct {
	Model    string `yaml:"model" json:"model" validate:"required,rotor_model"`
	Ring     string `yaml:"ring" json:"ring" validate:"required,alphabet_letter"`
	Position string `yaml:"position" json:"position" validate:"required,alphabet_letter"`
}

// Settings is a complete daily key: wheel order (fastest first), ring and
// start positions, reflector and plugboard pairs.
type Settings struct {
	Rotors    []RotorSetting `yaml:"rotors" json:"rotors" validate:"required,min=1,dive"`
	Reflector string         `yaml:"reflector" json:"reflector" validate:"required,reflector_model"`
	Plugboard string         `yaml:"plugboard" json:"plugboard" validate:"plugboard"`
}

// DefaultSettings is rotors I, II, III at ring A and position A with
// reflector B and an empty plugboard.
func DefaultSettings() Settings {
	return Settings{
		Rotors: []RotorSetting{
			{Model: "I", Ring: "A", Position: "A"},
			{Model: "II", Ring: "A", Position: "A"},
			{Model: "III", Ring: "A", Position: "A"},
		},
		Reflector: "B",
	}
}

// New builds a machine from settings. The first configuration error aborts
// construction; no partially built machine is returned.
func New(s Settings) (*Machine, error) {
	pb, err := NewPlugBoard(s.Plugboard)
	if err != nil {
		return nil, err
	}

	rotors := make([]*Rotor, len(s.Rotors))
	for i, rs := range s.Rotors {
		ring, ok := letterIndex(rs.Ring)
		if !ok {
			return nil, fmt.Errorf("%w: rotor slot %d ring setting %q", ErrInvalidSetting, i, rs.Ring)
		}
		pos, ok := letterIndex(rs.Position)
		if !ok {
			return nil, fmt.Errorf("%w: rotor slot %d position %q", ErrInvalidSetting, i, rs.Position)
		}
		r, err := NewRotor(rs.Model, Letter(ring), Letter(pos))
		if err != nil {
			return nil, fmt.Errorf("rotor slot %d: %w", i, err)
		}
		rotors[i] = r
	}

	refl, err := NewReflector(s.Reflector)
	if err != nil {
		return nil, err
	}

	return NewMachine(pb, rotors, refl)
}

// MustNew is New for settings known to be valid, such as DefaultSettings.
func MustNew(s Settings) *Machine {
	m, err := New(s)
	if err != nil {
		panic(err)
	}
	return m
}
