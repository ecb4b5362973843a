package secrets

// Session holds a password in memory for the lifetime of one settings
// document. It is never persisted; dropping the session drops the ability
// to decrypt.
type Session struct {
	password string
}

// NewSession creates a session holding the given password.
func NewSession(password string) *Session {
	return &Session{password: password}
}

// Unlocked reports whether the session holds a usable password.
func (s *Session) Unlocked() bool {
	return s != nil && s.password != ""
}

// Encrypt encrypts plaintext under the session password.
func (s *Session) Encrypt(plaintext string) (string, error) {
	return Encrypt(plaintext, s.password)
}

// Decrypt decrypts ciphertext under the session password.
func (s *Session) Decrypt(ciphertext string) (string, error) {
	return Decrypt(ciphertext, s.password)
}

// Clear wipes the held password. The session is unusable afterwards.
func (s *Session) Clear() {
	if s != nil {
		s.password = ""
	}
}
