package enigma

import "sync"

// LockedMachine serializes access to a Machine. The lock is held for a
// whole message, so two messages never interleave their rotor steps.
type LockedMachine struct {
	mu sync.Mutex
	m  *Machine
}

// NewLocked wraps m. The caller must stop using m directly.
func NewLocked(m *Machine) *LockedMachine {
	return &LockedMachine{m: m}
}

func (l *LockedMachine) Encrypt(text string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Encrypt(text)
}

func (l *LockedMachine) Decrypt(text string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Decrypt(text)
}

// EncryptFromStart resets the machine and enciphers text as one atomic step.
func (l *LockedMachine) EncryptFromStart(text string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m.Reset()
	return l.m.Encrypt(text)
}

func (l *LockedMachine) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m.Reset()
}

func (l *LockedMachine) Positions() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Positions()
}
