package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

var (
	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers every other verification failure: bad
	// signature, wrong algorithm, malformed or incomplete claims.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the identity embedded in every token.
type Claims struct {
	UserID   int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token carrying the user's id, username and role.
func IssueToken(secret string, userID int, username, role string) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyToken validates a token string and returns its claims. Failures are
// classified as ErrTokenExpired or ErrTokenInvalid.
func VerifyToken(tokenStr, secret string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Username == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
