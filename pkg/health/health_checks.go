package health

import (
	"strings"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
)

// Reference key for the known-answer test: plugs AB CD, rotors I, II, III
// (fastest first) at ring A and position A, reflector B.
var (
	ReferenceSettings = enigma.Settings{
		Rotors: []enigma.RotorSetting{
			{Model: "I", Ring: "A", Position: "A"},
			{Model: "II", Ring: "A", Position: "A"},
			{Model: "III", Ring: "A", Position: "A"},
		},
		Reflector: "B",
		Plugboard: "AB CD",
	}
	ReferencePlaintext  = "A"
	ReferenceCiphertext = "O"
)

const roundTripSample = "THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG 0123456789"

// WheelTablesCheck verifies the rotor and reflector tables.
func WheelTablesCheck() CheckFunc {
	return func() Check {
		check := Check{
			Name: "wheel_tables",
			Details: map[string]any{
				"rotors":     strings.Join(enigma.RotorModels(), ","),
				"reflectors": strings.Join(enigma.ReflectorModels(), ","),
			},
		}
		if err := enigma.VerifyTables(); err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}
		check.Status = StatusHealthy
		check.Message = "All wirings are valid permutations"
		return check
	}
}

// KnownAnswerCheck enciphers the reference plaintext under the reference
// key and compares it with the pinned ciphertext.
func KnownAnswerCheck() CheckFunc {
	return func() Check {
		check := Check{Name: "known_answer", Details: make(map[string]any)}

		m, err := enigma.New(ReferenceSettings)
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}

		got := m.Encrypt(ReferencePlaintext)
		check.Details["want"] = ReferenceCiphertext
		check.Details["got"] = got
		if got != ReferenceCiphertext {
			check.Status = StatusUnhealthy
			check.Message = "Reference key produced the wrong ciphertext"
			return check
		}
		check.Status = StatusHealthy
		check.Message = "Reference ciphertext matches"
		return check
	}
}

// RoundTripCheck verifies that a key deciphers its own ciphertext. A key
// that cannot be built is unhealthy; a sample that stays identical after
// enciphering means the rotors never moved, which is reported as degraded.
func RoundTripCheck(settings enigma.Settings) CheckFunc {
	return func() Check {
		check := Check{Name: "round_trip", Details: make(map[string]any)}

		sender, err := enigma.New(settings)
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}
		receiver := enigma.MustNew(settings)

		cipher := sender.Encrypt(roundTripSample)
		plain := receiver.Decrypt(cipher)
		check.Details["positions_after"] = sender.Positions()

		switch {
		case plain != roundTripSample:
			check.Status = StatusUnhealthy
			check.Message = "Ciphertext did not decipher to the sample"
		case cipher == roundTripSample:
			check.Status = StatusDegraded
			check.Message = "Key left the sample unchanged"
		default:
			check.Status = StatusHealthy
			check.Message = "Key round-trips"
		}
		return check
	}
}

// SelfTest returns a checker with the built-in checks, plus a round trip
// for settings.
func SelfTest(settings enigma.Settings) *HealthChecker {
	hc := NewHealthChecker()
	hc.RegisterCheck("wheel_tables", WheelTablesCheck())
	hc.RegisterCheck("known_answer", KnownAnswerCheck())
	hc.RegisterCheck("round_trip", RoundTripCheck(settings))
	return hc
}
