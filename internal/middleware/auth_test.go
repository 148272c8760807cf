package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/load-optimizer/internal/service"
)

func newAPIKeyRouter(validator service.APIKeyValidator) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), APIKeyAuth(validator))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetSubject(c))
	})
	return router
}

func TestAPIKeyAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-key-456"), bcrypt.MinCost)
	require.NoError(t, err)
	validator := service.NewAPIKeyService(
		map[string]bool{"valid-key-123": true, "another-valid-key": true},
		[]string{string(hash)},
	)

	tests := []struct {
		name           string
		setupRequest   func(*http.Request)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "allows request with valid API key in header",
			setupRequest:   func(req *http.Request) { req.Header.Set(APIKeyHeader, "valid-key-123") },
			expectedStatus: http.StatusOK,
			expectedBody:   apiKeySubject("valid-key-123"),
		},
		{
			name:           "allows request with valid API key in query",
			setupRequest:   func(req *http.Request) { req.URL.RawQuery = "api_key=another-valid-key" },
			expectedStatus: http.StatusOK,
			expectedBody:   apiKeySubject("another-valid-key"),
		},
		{
			name:           "allows request with bcrypt-hashed key",
			setupRequest:   func(req *http.Request) { req.Header.Set(APIKeyHeader, "hashed-key-456") },
			expectedStatus: http.StatusOK,
			expectedBody:   apiKeySubject("hashed-key-456"),
		},
		{
			name:           "header wins over query",
			setupRequest: func(req *http.Request) {
				req.Header.Set(APIKeyHeader, "wrong-key")
				req.URL.RawQuery = "api_key=valid-key-123"
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid API key",
		},
		{
			name:           "rejects request without API key",
			setupRequest:   func(req *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "API key is required",
		},
		{
			name:           "rejects request with invalid API key",
			setupRequest:   func(req *http.Request) { req.Header.Set(APIKeyHeader, "invalid-key") },
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid API key",
		},
	}

	router := newAPIKeyRouter(validator)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			tt.setupRequest(req)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"error":"unauthorized"`)
				assert.Contains(t, w.Body.String(), `"request_id"`)
			}
		})
	}
}

func TestAPIKeyAuth_NilValidatorPassesThrough(t *testing.T) {
	w := httptest.NewRecorder()
	newAPIKeyRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestAPIKeyAuth_LocalizedError(t *testing.T) {
	router := newAPIKeyRouter(service.NewAPIKeyService(map[string]bool{"k": true}, nil))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept-Language", "pt-BR")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Chave de API é obrigatória")
}

func TestAPIKeySubject(t *testing.T) {
	subject := apiKeySubject("valid-key-123")

	assert.Regexp(t, `^api-key:[0-9a-f]{8}$`, subject)
	assert.NotContains(t, subject, "valid-key-123")
	assert.Equal(t, subject, apiKeySubject("valid-key-123"))
	assert.NotEqual(t, subject, apiKeySubject("another-valid-key"))
}
