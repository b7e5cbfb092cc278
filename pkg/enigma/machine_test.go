package enigma

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settings builds a key with every ring and position given as one string,
// fastest rotor first.
func settings(plugs, reflector, rings, positions string, models ...string) Settings {
	s := Settings{Reflector: reflector, Plugboard: plugs}
	for i, m := range models {
		s.Rotors = append(s.Rotors, RotorSetting{
			Model:    m,
			Ring:     rings[i : i+1],
			Position: positions[i : i+1],
		})
	}
	return s
}

func TestMachineKnownAnswers(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		in       string
		want     string
	}{
		{
			name:     "plugged reference key",
			settings: settings("AB CD", "B", "AAA", "AAA", "I", "II", "III"),
			in:       "A",
			want:     "O",
		},
		{
			name:     "plugged reference key with punctuation",
			settings: settings("AB CD", "B", "AAA", "AAA", "I", "II", "III"),
			in:       "Hello, World! 42",
			want:     "MFNDN, RAFAM! 42",
		},
		{
			name:     "rotor I fastest",
			settings: settings("", "B", "AAA", "AAA", "I", "II", "III"),
			in:       "AAAAA",
			want:     "FRZQG",
		},
		{
			name:     "rotor III fastest",
			settings: settings("", "B", "AAA", "AAA", "III", "II", "I"),
			in:       "AAAAA",
			want:     "BDZGL",
		},
		{
			name:     "ring settings BBB",
			settings: settings("", "B", "BBB", "AAA", "III", "II", "I"),
			in:       "AAAAA",
			want:     "EUVYX",
		},
		{
			name:     "ring setting on fastest rotor only",
			settings: settings("", "B", "BAA", "AAA", "III", "II", "I"),
			in:       "AAAAA",
			want:     "WBDZG",
		},
		{
			name:     "full key",
			settings: settings("PO ML IU KJ NH YT GB VF RE DC", "B", "BBB", "XMA", "III", "II", "I"),
			in:       "The quick brown fox jumps over the lazy dog",
			want:     "JXQ CSCFY LACVY XPM CPIJY VISK HQD JDNR ZDD",
		},
		{
			name:     "four rotors reflector C",
			settings: settings("", "C", "AAAA", "AAAA", "I", "II", "III", "IV"),
			in:       "ENIGMA",
			want:     "FYGOCX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.settings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Encrypt(tt.in))
		})
	}
}

func TestMachineDeterministicAcrossConstruction(t *testing.T) {
	s := settings("AB CD", "B", "AAA", "AAA", "I", "II", "III")
	first := MustNew(s).Encrypt("A")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, MustNew(s).Encrypt("A"))
	}
}

func TestMachineNeverEncodesLetterToItself(t *testing.T) {
	m := MustNew(settings("AB CD", "B", "AAA", "AAA", "I", "II", "III"))
	for i := 0; i < 500; i++ {
		in := Letter(i % AlphabetSize)
		if out := m.Encode(in); out == in {
			t.Fatalf("press %d: %c enciphered to itself", i, in)
		}
	}
}

func TestMachineSymmetry(t *testing.T) {
	s := settings("PO ML IU KJ NH YT GB VF RE DC", "B", "BBB", "XMA", "III", "II", "I")
	plain := "ATTACK AT DAWN, HOLD THE BRIDGE UNTIL RELIEVED"

	cipher := MustNew(s).Encrypt(plain)
	require.NotEqual(t, plain, cipher)
	assert.Equal(t, plain, MustNew(s).Decrypt(cipher))
}

func TestMachineLowerCaseInput(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, MustNew(s).Encrypt("HELLO"), MustNew(s).Encrypt("hello"))
}

func TestPassthroughDoesNotStep(t *testing.T) {
	m := MustNew(settings("AB", "B", "AAA", "QEV", "I", "II", "III"))
	before := m.Positions()

	in := "12 ,.!? -_/\n\t4€"
	out := m.Encrypt(in)

	assert.Equal(t, in, out)
	assert.Equal(t, before, m.Positions())
	assert.Zero(t, m.Processed())
}

func TestPassthroughIsUpperCased(t *testing.T) {
	m := MustNew(DefaultSettings())

	assert.Equal(t, "É Ä1", m.Encrypt("é ä1"))
	assert.Equal(t, "AAA", m.Positions())
	assert.Equal(t, 'Ü', m.Encode('ü'))
}

func TestInvalidUTF8PassesThrough(t *testing.T) {
	s := DefaultSettings()
	s.Plugboard = "AB CD"

	out := MustNew(s).Encrypt("\xffA\xfe")
	assert.Equal(t, "\xffO\xfe", out)
}

func TestSteppingCascade(t *testing.T) {
	tests := []struct {
		name   string
		models []string
		start  string
		input  string
		want   string
	}{
		{name: "fastest only", models: []string{"I", "II", "III"}, start: "PAA", input: "A", want: "QAA"},
		{name: "fastest on notch carries", models: []string{"I", "II", "III"}, start: "QAA", input: "A", want: "RBA"},
		{name: "carry stops when middle leaves notch", models: []string{"I", "II", "III"}, start: "QEA", input: "A", want: "RFA"},
		{name: "middle off notch blocks", models: []string{"I", "II", "III"}, start: "ADA", input: "A", want: "BDA"},
		{name: "middle on notch steps itself and slowest", models: []string{"III", "II", "I"}, start: "UDA", input: "AAAA", want: "YFB"},
		{name: "carry from fastest", models: []string{"III", "II", "I"}, start: "VEA", input: "A", want: "WFA"},
		{name: "carry lands middle on notch", models: []string{"I", "II", "III"}, start: "QDA", input: "A", want: "RFB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MustNew(settings("", "B", "AAA", tt.start, tt.models...))
			m.Encrypt(tt.input)
			assert.Equal(t, tt.want, m.Positions())
		})
	}
}

func TestSteppingCascadeOneBeforeTurnover(t *testing.T) {
	// Rotor I turns its neighbour over while moving from Q to R.
	m := MustNew(settings("", "B", "AAA", "QAA", "I", "II", "III"))
	m.Encode('X')

	pos := m.Positions()
	assert.Equal(t, 'R', rune(pos[0]), "fastest rotor")
	assert.Equal(t, 'B', rune(pos[1]), "middle rotor")
	assert.Equal(t, 'A', rune(pos[2]), "slowest rotor")
}

func TestSingleRotorSteps(t *testing.T) {
	m := MustNew(settings("", "B", "A", "A", "I"))
	m.Encrypt("AAA")
	assert.Equal(t, "D", m.Positions())
}

func TestReset(t *testing.T) {
	s := settings("AB CD", "B", "AAA", "XYZ", "I", "II", "III")
	m := MustNew(s)

	cipher := m.Encrypt("SECRET MESSAGE")
	assert.NotEqual(t, "XYZ", m.Positions())
	assert.Equal(t, 13, m.Processed())

	m.Reset()
	assert.Equal(t, "XYZ", m.Positions())
	assert.Zero(t, m.Processed())
	assert.Equal(t, "SECRET MESSAGE", m.Decrypt(cipher))
}

func TestIdentityPlugboardMatchesNoPlugboardStage(t *testing.T) {
	id, err := NewPlugBoard("")
	require.NoError(t, err)

	for x := 0; x < AlphabetSize; x++ {
		assert.Equal(t, x, id.ConvertForward(x))
		assert.Equal(t, x, id.ConvertBackward(x))
	}

	// Encoding by hand without the plugboard stage gives the same letter.
	m := MustNew(DefaultSettings())
	rotors := make([]*Rotor, 3)
	for i, rs := range DefaultSettings().Rotors {
		rotors[i], _ = NewRotor(rs.Model, 'A', 'A')
	}
	refl, _ := NewReflector("B")

	// Rotor I reaches its notch on the 17th press; stay below it so only the
	// fastest rotor moves.
	for x := 0; x < 16; x++ {
		got := m.Encode(Letter(x))

		rotors[0].Step()
		idx := x
		for _, r := range rotors {
			idx = r.ConvertForward(idx)
		}
		idx = refl.Reflect(idx)
		for i := len(rotors) - 1; i >= 0; i-- {
			idx = rotors[i].ConvertBackward(idx)
		}
		require.Equal(t, Letter(idx), got, "letter %c", Letter(x))
	}
}

func TestConstructionErrors(t *testing.T) {
	tests := []struct {
		name string
		s    Settings
		want error
	}{
		{name: "unknown rotor", s: settings("", "B", "AAA", "AAA", "I", "IX", "III"), want: ErrUnknownRotor},
		{name: "unknown reflector", s: settings("", "Z", "AAA", "AAA", "I", "II", "III"), want: ErrUnknownReflector},
		{name: "bad plug pair", s: settings("ABC", "B", "AAA", "AAA", "I", "II", "III"), want: ErrInvalidPlugboard},
		{name: "plug outside alphabet", s: settings("A?", "B", "AAA", "AAA", "I", "II", "III"), want: ErrInvalidPlugboard},
		{name: "bad ring", s: settings("", "B", "A1A", "AAA", "I", "II", "III"), want: ErrInvalidSetting},
		{name: "bad position", s: settings("", "B", "AAA", "AA ", "I", "II", "III"), want: ErrInvalidSetting},
		{name: "no rotors", s: Settings{Reflector: "B"}, want: ErrInvalidSetting},
		{name: "two letter ring", s: Settings{Reflector: "B", Rotors: []RotorSetting{{Model: "I", Ring: "AB", Position: "A"}}}, want: ErrInvalidSetting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.s)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, tt.want), "error = %v, want %v", err, tt.want)
		})
	}
}

func TestNewMachineRejectsMissingParts(t *testing.T) {
	pb, _ := NewPlugBoard("")
	r, _ := NewRotor("I", 'A', 'A')
	refl, _ := NewReflector("B")

	_, err := NewMachine(nil, []*Rotor{r}, refl)
	assert.ErrorIs(t, err, ErrInvalidSetting)
	_, err = NewMachine(pb, []*Rotor{r}, nil)
	assert.ErrorIs(t, err, ErrInvalidSetting)
	_, err = NewMachine(pb, []*Rotor{r, nil}, refl)
	assert.ErrorIs(t, err, ErrInvalidSetting)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := settings("DC ba", "C", "BCD", "XMA", "V", "I", "IV")
	m := MustNew(s)
	m.Encrypt("MOVE THE ROTORS")

	got := m.Settings()
	assert.Equal(t, "AB CD", got.Plugboard)
	assert.Equal(t, "C", got.Reflector)
	assert.Equal(t, s.Rotors, got.Rotors)
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Settings{}) })
}
