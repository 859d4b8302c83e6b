package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the bcrypt credential hash stored in
// accounts.credential_hash. An out-of-range cost falls back to the bcrypt
// default rather than failing signup over a misconfigured BCRYPT_COST.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a stored credential hash against a login attempt.
// A malformed stored hash is reported as a mismatch, never as a fault, so
// the login path stays on its single invalid-credential response.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
