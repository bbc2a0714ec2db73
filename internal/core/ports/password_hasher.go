package ports

// PasswordHasher is the one-way password function.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Matches reports whether plain hashes to hash. It must be false for an empty hash.
	Matches(hash, plain string) bool
}
