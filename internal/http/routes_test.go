package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/load-optimizer/internal/domain/dto"
	"github.com/guttosm/load-optimizer/internal/domain/model"
	"github.com/guttosm/load-optimizer/internal/middleware"
	"github.com/guttosm/load-optimizer/internal/mocks"
	"github.com/guttosm/load-optimizer/internal/service"
	"github.com/guttosm/load-optimizer/internal/testutil"
)

const testSigningKey = "routes-test-signing-key-0123456789"

func newRoutesEngine(cfg RouterConfig, audit *AuditHandler) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	routes := NewOptimizerRoutes(NewHandler(service.NewLoadOptimizerService()), audit)
	routes.RegisterRoutes(router.Group(APIBasePath), &cfg)
	return router
}

func optimizeRequest(t *testing.T, header http.Header) *http.Request {
	t.Helper()
	raw, err := json.Marshal(testutil.OptimizeRequest())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, APIBasePath+"/optimize", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func issueToken(t *testing.T, scopes ...string) string {
	t.Helper()
	tokens := service.NewTokenService(service.TokenConfig{SecretKey: testSigningKey, Issuer: "load-optimizer", TTL: time.Hour})
	resp, err := tokens.IssueToken("dispatcher-7", scopes)
	require.NoError(t, err)
	return resp.AccessToken
}

func TestOptimizerRoutes_Public(t *testing.T) {
	router := newRoutesEngine(RouterConfig{}, nil)

	w := serve(router, optimizeRequest(t, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, APIBasePath+"/info", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, APIBasePath+"/audit", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOptimizerRoutes_APIKeyAuth(t *testing.T) {
	cfg := RouterConfig{APIKeyValidator: service.NewAPIKeyService(map[string]bool{"fleet-key": true}, nil)}
	router := newRoutesEngine(cfg, nil)

	tests := []struct {
		name           string
		key            string
		expectedStatus int
	}{
		{name: "missing key", expectedStatus: http.StatusUnauthorized},
		{name: "unknown key", key: "nope", expectedStatus: http.StatusUnauthorized},
		{name: "valid key", key: "fleet-key", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.key != "" {
				header.Set(middleware.APIKeyHeader, tt.key)
			}

			w := serve(router, optimizeRequest(t, header))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	t.Run("info stays public", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, APIBasePath+"/info", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestOptimizerRoutes_JWTAuth(t *testing.T) {
	verifier := service.NewTokenService(service.TokenConfig{SecretKey: testSigningKey, Issuer: "load-optimizer"})
	cfg := RouterConfig{
		TokenVerifier:   verifier,
		APIKeyValidator: service.NewAPIKeyService(map[string]bool{"fleet-key": true}, nil),
		RequiredScope:   DefaultOptimizeScope,
		AuditScope:      DefaultAuditScope,
	}

	logs := new(mocks.MockLoggingService)
	logs.On("QueryLogs", mock.Anything, mock.Anything).Return([]model.LogEntry{}, nil)
	logs.On("CountLogs", mock.Anything, mock.Anything).Return(int64(0), nil)
	router := newRoutesEngine(cfg, NewAuditHandler(logs))

	tests := []struct {
		name           string
		req            func(t *testing.T) *http.Request
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "no token",
			req:            func(t *testing.T) *http.Request { return optimizeRequest(t, nil) },
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   dto.ErrCodeUnauthorized,
		},
		{
			name: "api key is ignored when tokens are enabled",
			req: func(t *testing.T) *http.Request {
				return optimizeRequest(t, http.Header{"X-Api-Key": []string{"fleet-key"}})
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   dto.ErrCodeUnauthorized,
		},
		{
			name: "token without optimize scope",
			req: func(t *testing.T) *http.Request {
				return optimizeRequest(t, http.Header{"Authorization": []string{"Bearer " + issueToken(t, DefaultAuditScope)}})
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   dto.ErrCodeForbidden,
		},
		{
			name: "token with optimize scope",
			req: func(t *testing.T) *http.Request {
				return optimizeRequest(t, http.Header{"Authorization": []string{"Bearer " + issueToken(t, DefaultOptimizeScope)}})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "audit without logs scope",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodGet, APIBasePath+"/audit", nil)
				req.Header.Set("Authorization", "Bearer "+issueToken(t, DefaultOptimizeScope))
				return req
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   dto.ErrCodeForbidden,
		},
		{
			name: "audit with logs scope",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodGet, APIBasePath+"/audit", nil)
				req.Header.Set("Authorization", "Bearer "+issueToken(t, DefaultAuditScope))
				return req
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.req(t))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			}
		})
	}
}

func TestOptimizerRoutes_ClientRateLimit(t *testing.T) {
	router := newRoutesEngine(RouterConfig{RateLimit: 2, RateWindow: time.Minute}, nil)

	for i := 0; i < 2; i++ {
		w := serve(router, optimizeRequest(t, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(router, optimizeRequest(t, nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// unauthenticated callers share one budget per IP across public and protected routes
	w = serve(router, httptest.NewRequest(http.MethodGet, APIBasePath+"/info", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestOptimizerRoutes_InfoRateLimit(t *testing.T) {
	router := newRoutesEngine(RouterConfig{RateLimit: 1, RateWindow: time.Minute}, nil)

	w := serve(router, httptest.NewRequest(http.MethodGet, APIBasePath+"/info", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = serve(router, httptest.NewRequest(http.MethodGet, APIBasePath+"/info", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestOptimizerRoutes_Idempotency(t *testing.T) {
	router := newRoutesEngine(RouterConfig{EnableIdempotency: true}, nil)
	header := http.Header{middleware.IdempotencyKeyHeader: []string{"retry-1"}}

	first := serve(router, optimizeRequest(t, header))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get(middleware.IdempotencyReplayedHeader))

	second := serve(router, optimizeRequest(t, header))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestAuthChain(t *testing.T) {
	assert.Empty(t, authChain(&RouterConfig{}))
	assert.Len(t, authChain(&RouterConfig{APIKeyValidator: service.NewAPIKeyService(nil, nil)}), 1)
	assert.Len(t, authChain(&RouterConfig{TokenVerifier: new(mocks.MockTokenVerifier)}), 1)

	assert.Empty(t, scopeCheck(&RouterConfig{}, DefaultOptimizeScope))
	assert.Empty(t, scopeCheck(&RouterConfig{TokenVerifier: new(mocks.MockTokenVerifier)}, ""))
	assert.Len(t, scopeCheck(&RouterConfig{TokenVerifier: new(mocks.MockTokenVerifier)}, DefaultOptimizeScope), 1)
}
