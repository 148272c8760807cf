package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/load-optimizer/internal/i18n"
	"github.com/guttosm/load-optimizer/internal/logger"
)

// ErrorHandler logs errors attached to the gin context and answers 500
// when the handler recorded an error without writing a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		log := logger.Logger()
		log.Error().
			Str("request_id", GetRequestID(c)).
			Str("error", err.Error()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Int("status", c.Writer.Status()).
			Msg("Request error")

		if !c.Writer.Written() {
			abortWithError(c, http.StatusInternalServerError, i18n.ErrKeyInternalError)
		}
	}
}
