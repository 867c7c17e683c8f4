package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-pulse/backend/internal/auth"
)

const claimsKey = "claims"

// RequireAuth rejects requests without a valid bearer token. A missing or
// malformed Authorization header is 401; a token that fails verification
// (bad signature, expired, garbage) is 403.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if header == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		claims, err := auth.VerifyToken(strings.TrimSpace(parts[1]), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentUser returns the claims stored by RequireAuth.
func CurrentUser(c *gin.Context) (*auth.Claims, bool) {
	raw, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := raw.(*auth.Claims)
	return claims, ok
}
