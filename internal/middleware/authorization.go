package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/load-optimizer/internal/i18n"
)

// RequireScope rejects bearer tokens that do not carry scope.
// It must run after JWTAuth. An empty scope only requires authentication.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyUnauthorized)
			return
		}
		if !claims.HasScope(scope) {
			abortWithError(c, http.StatusForbidden, i18n.ErrKeyForbidden)
			return
		}
		c.Next()
	}
}
