package auth

// SetVerifier swaps the password check so tests can observe it.
func SetVerifier(s *Service, verify func(encoded string, password []byte) bool) {
	s.verify = verify
}
