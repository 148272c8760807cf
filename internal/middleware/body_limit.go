package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/load-optimizer/internal/i18n"
)

// DefaultMaxBodyBytes is the request body limit when none is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// ErrPayloadTooLarge is reported when a body exceeds the configured limit.
var ErrPayloadTooLarge = errors.New("request body too large")

// BodyLimit rejects requests whose declared Content-Length exceeds maxBytes with 413
// and caps the body reader for requests that do not declare one.
// Handlers see *http.MaxBytesError when the cap is hit while reading.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			AbortPayloadTooLarge(c)
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// AbortPayloadTooLarge writes the 413 error response.
func AbortPayloadTooLarge(c *gin.Context) {
	abortWithError(c, http.StatusRequestEntityTooLarge, i18n.ErrKeyPayloadTooLarge)
}

// IsPayloadTooLarge reports whether err came from a capped body.
func IsPayloadTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr) || errors.Is(err, ErrPayloadTooLarge)
}
