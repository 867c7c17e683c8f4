package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash ("password" at cost 10) is compared against when login hits an
// unknown username, so response timing does not reveal whether the account
// exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword derives a bcrypt hash suitable for storage.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash. An empty hash
// still burns a bcrypt comparison against dummyHash and always fails.
func CheckPassword(hash, plain string) bool {
	ok := true
	if hash == "" {
		hash = dummyHash
		ok = false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil && ok
}
