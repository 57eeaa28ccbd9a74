package ports

// PasswordHasher turns plaintext secrets into storable one-way hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}
