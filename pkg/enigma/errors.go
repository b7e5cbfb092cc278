package enigma

import "errors"

// Configuration errors. Every one of them is reported while a machine is
// being built; enciphering itself never fails.
var (
	ErrUnknownRotor     = errors.New("unknown rotor model")
	ErrUnknownReflector = errors.New("unknown reflector model")
	ErrInvalidPlugboard = errors.New("invalid plugboard wiring")
	ErrInvalidSetting   = errors.New("invalid machine setting")
)
