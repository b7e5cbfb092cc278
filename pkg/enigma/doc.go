// Package enigma simulates the three-rotor Enigma I cipher machine.
//
// A Machine is assembled from a PlugBoard, a stack of Rotors (fastest
// first) and a Reflector, or built in one call from Settings with New.
// Enciphering is symmetric: a second machine started from the same
// settings turns the ciphertext back into the plaintext.
//
// Letters are upper-cased before enciphering. Anything that is not one of
// the 26 letters passes through unchanged and does not move the rotors.
//
// Stepping follows a simple cascading carry, not the double-stepping of the
// physical middle rotor.
package enigma
