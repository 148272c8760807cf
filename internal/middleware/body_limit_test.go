package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newBodyLimitRouter(limit int64) *gin.Engine {
	router := gin.New()
	router.Use(BodyLimit(limit))
	router.POST("/test", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			if IsPayloadTooLarge(err) {
				AbortPayloadTooLarge(c)
				return
			}
			c.Status(http.StatusBadRequest)
			return
		}
		c.String(http.StatusOK, "%d", len(body))
	})
	return router
}

func TestBodyLimit(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		hideLength     bool
		expectedStatus int
		expectedBody   string
	}{
		{name: "body under the limit", body: strings.Repeat("a", 10), expectedStatus: http.StatusOK, expectedBody: "10"},
		{name: "body at the limit", body: strings.Repeat("a", 16), expectedStatus: http.StatusOK, expectedBody: "16"},
		{name: "declared length over the limit", body: strings.Repeat("a", 17), expectedStatus: http.StatusRequestEntityTooLarge, expectedBody: "payload_too_large"},
		{name: "undeclared length over the limit", body: strings.Repeat("a", 64), hideLength: true, expectedStatus: http.StatusRequestEntityTooLarge, expectedBody: "payload_too_large"},
	}

	router := newBodyLimitRouter(16)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tt.body))
			if tt.hideLength {
				req.ContentLength = -1
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestBodyLimit_DefaultLimit(t *testing.T) {
	router := newBodyLimitRouter(0)

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("x"))
	req.ContentLength = DefaultMaxBodyBytes + 1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestIsPayloadTooLarge(t *testing.T) {
	assert.True(t, IsPayloadTooLarge(&http.MaxBytesError{Limit: 1}))
	assert.True(t, IsPayloadTooLarge(fmt.Errorf("decode: %w", &http.MaxBytesError{Limit: 1})))
	assert.True(t, IsPayloadTooLarge(ErrPayloadTooLarge))
	assert.False(t, IsPayloadTooLarge(errors.New("unexpected EOF")))
	assert.False(t, IsPayloadTooLarge(nil))
}
