package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/load-optimizer/internal/domain/dto"
	"github.com/guttosm/load-optimizer/internal/i18n"
	"github.com/guttosm/load-optimizer/internal/service"
)

// ClaimsKey holds the verified *dto.Claims in the gin context.
const ClaimsKey = "auth_claims"

// JWTAuth returns a middleware that validates bearer tokens.
func JWTAuth(verifier service.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := verifier.ValidateToken(token)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(SubjectKey, claims.Subject)
		c.Next()
	}
}

// GetClaims returns the verified claims, if any.
func GetClaims(c *gin.Context) (*dto.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*dto.Claims)
	return claims, ok && claims != nil
}
