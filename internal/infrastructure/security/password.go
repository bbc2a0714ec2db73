package security

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength is the shortest password that gets hashed at all.
const MinPasswordLength = 10

// BcryptHasher implements ports.PasswordHasher with bcrypt.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher using cost, or bcrypt.DefaultCost when cost is out of range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

// Hash returns the empty string for passwords shorter than MinPasswordLength.
// The empty hash never matches, and user validation rejects it on save.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	if len(plain) < MinPasswordLength {
		return "", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Matches(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
