package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/load-optimizer/internal/i18n"
	"github.com/guttosm/load-optimizer/internal/service"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
	// SubjectKey holds the authenticated caller in the gin context.
	SubjectKey = "auth_subject"
)

// APIKeyAuth returns a middleware that validates API keys.
// It checks the X-API-Key header first, then falls back to api_key query parameter.
// A nil validator disables authentication.
func APIKeyAuth(validator service.APIKeyValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if validator == nil {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		if key == "" {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyAPIKeyRequired)
			return
		}
		if err := validator.Validate(key); err != nil {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Set(SubjectKey, apiKeySubject(key))
		c.Next()
	}
}

// apiKeySubject identifies a key in logs without revealing it.
func apiKeySubject(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "api-key:" + hex.EncodeToString(sum[:4])
}

// GetSubject returns the authenticated caller, or "" for anonymous requests.
func GetSubject(c *gin.Context) string {
	return c.GetString(SubjectKey)
}
