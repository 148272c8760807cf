package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		origins        []string
		method         string
		origin         string
		expectedStatus int
		expectedOrigin string
	}{
		{
			name:           "preflight from allowed origin",
			origins:        []string{"https://dispatch.example.com"},
			method:         http.MethodOptions,
			origin:         "https://dispatch.example.com",
			expectedStatus: http.StatusNoContent,
			expectedOrigin: "https://dispatch.example.com",
		},
		{
			name:           "simple request from allowed origin",
			origins:        []string{"https://dispatch.example.com"},
			method:         http.MethodPost,
			origin:         "https://dispatch.example.com",
			expectedStatus: http.StatusOK,
			expectedOrigin: "https://dispatch.example.com",
		},
		{
			name:           "default origins allow local development",
			method:         http.MethodGet,
			origin:         "http://localhost:3000",
			expectedStatus: http.StatusOK,
			expectedOrigin: "http://localhost:3000",
		},
		{
			name:           "unknown origin is rejected",
			origins:        []string{"https://dispatch.example.com"},
			method:         http.MethodGet,
			origin:         "https://evil.example.net",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "request without origin passes",
			method:         http.MethodPost,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tt.origins))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})
			router.POST("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_ExposesOperationalHeaders(t *testing.T) {
	router := gin.New()
	router.Use(CORS(nil))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://127.0.0.1:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	exposed := strings.ToLower(w.Header().Get("Access-Control-Expose-Headers"))
	assert.Contains(t, exposed, strings.ToLower(RequestIDHeader))
	assert.Contains(t, exposed, "retry-after")
}
