package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/load-optimizer/internal/domain/dto"
	"github.com/guttosm/load-optimizer/internal/i18n"
)

// abortWithError writes a translated ErrorResponse and stops the chain.
func abortWithError(c *gin.Context, status int, messageKey string) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
	errorResp := dto.NewError(dto.ErrCodeFromStatus(status), message).
		WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(status, errorResp)
}
