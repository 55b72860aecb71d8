package utils

import "golang.org/x/crypto/bcrypt"

// Password hashing keeps a fixed work-factor window. Costs outside it
// are clamped rather than rejected so a misconfigured BCRYPT_COST can
// never silently produce fast, weak digests.
const (
	MinBcryptCost = 10
	MaxBcryptCost = 12
)

// HashPassword returns the bcrypt digest of plain using the given cost,
// clamped to [MinBcryptCost, MaxBcryptCost].
func HashPassword(plain string, cost int) (string, error) {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	if cost > MaxBcryptCost {
		cost = MaxBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt digest against a plain password.
// It returns false for any mismatch or malformed digest and never
// reports why — callers only learn pass/fail.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
