package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/load-optimizer/internal/domain/dto"
	"github.com/guttosm/load-optimizer/internal/mocks"
	"github.com/guttosm/load-optimizer/internal/service"
)

func TestJWTAuth(t *testing.T) {
	claims := &dto.Claims{Subject: "dispatcher-7", Scopes: []string{"loads:optimize"}}

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*mocks.MockTokenVerifier)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer good-token",
			setupMock: func(m *mocks.MockTokenVerifier) {
				m.On("ValidateToken", "good-token").Return(claims, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "dispatcher-7",
		},
		{
			name:       "scheme is case-insensitive",
			authHeader: "bearer good-token",
			setupMock: func(m *mocks.MockTokenVerifier) {
				m.On("ValidateToken", "good-token").Return(claims, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "dispatcher-7",
		},
		{
			name:           "missing header",
			setupMock:      func(*mocks.MockTokenVerifier) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Authentication token is required",
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMock:      func(*mocks.MockTokenVerifier) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid or expired token",
		},
		{
			name:           "scheme without token",
			authHeader:     "Bearer",
			setupMock:      func(*mocks.MockTokenVerifier) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid or expired token",
		},
		{
			name:           "blank token",
			authHeader:     "Bearer   ",
			setupMock:      func(*mocks.MockTokenVerifier) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Authentication token is required",
		},
		{
			name:       "rejected token",
			authHeader: "Bearer expired-token",
			setupMock: func(m *mocks.MockTokenVerifier) {
				m.On("ValidateToken", "expired-token").Return(nil, errors.New("token expired"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := new(mocks.MockTokenVerifier)
			tt.setupMock(verifier)

			router := gin.New()
			router.Use(JWTAuth(verifier))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, GetSubject(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			verifier.AssertExpectations(t)
		})
	}
}

func TestJWTAuth_ClaimsInContext(t *testing.T) {
	tokens := service.NewTokenService(service.TokenConfig{
		SecretKey: "test-secret-key-at-least-32-bytes!",
		Issuer:    "load-optimizer",
		TTL:       time.Hour,
	})
	issued, err := tokens.IssueToken("dispatcher-7", []string{"loads:optimize", "logs:read"})
	require.NoError(t, err)

	var got *dto.Claims
	router := gin.New()
	router.Use(JWTAuth(tokens))
	router.GET("/test", func(c *gin.Context) {
		var ok bool
		got, ok = GetClaims(c)
		require.True(t, ok)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+issued.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dispatcher-7", got.Subject)
	assert.ElementsMatch(t, []string{"loads:optimize", "logs:read"}, got.Scopes)
	assert.NotEmpty(t, got.TokenID)
}

func TestGetClaims_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetClaims(c)
	assert.False(t, ok)

	c.Set(ClaimsKey, "not claims")
	_, ok = GetClaims(c)
	assert.False(t, ok)

	var nilClaims *dto.Claims
	c.Set(ClaimsKey, nilClaims)
	_, ok = GetClaims(c)
	assert.False(t, ok)
}

