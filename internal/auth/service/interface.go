package service

// SecretService generates and verifies client secrets.
type SecretService interface {
	// GenerateSecret creates a random secret and returns it alongside its hash.
	GenerateSecret() (plainSecret string, hashedSecret string, err error)

	// HashSecret hashes a plain text secret.
	HashSecret(plainSecret string) (hashedSecret string, err error)

	// CompareSecret reports whether plainSecret matches hashedSecret.
	CompareSecret(plainSecret string, hashedSecret string) bool
}
