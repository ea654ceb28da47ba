package ports

// PasswordHasher is the one-way credential hashing contract.
// Compare must use a constant-time comparison.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) bool
}
