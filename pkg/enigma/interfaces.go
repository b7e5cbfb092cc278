package enigma

// Encrypter enciphers text.
type Encrypter interface {
	Encrypt(text string) string
}

// Decrypter deciphers text. For a rotor machine this is the same
// transformation as encryption from the same starting positions.
type Decrypter interface {
	Decrypt(text string) string
}

// EncryptDecrypter combines both directions.
type EncryptDecrypter interface {
	Encrypter
	Decrypter
}

var _ EncryptDecrypter = (*Machine)(nil)
var _ EncryptDecrypter = (*LockedMachine)(nil)
