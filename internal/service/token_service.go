package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/guttosm/load-optimizer/config"
	"github.com/guttosm/load-optimizer/internal/domain/dto"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired or signed with another key.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingSigningKey is returned when the token service has no secret.
	ErrMissingSigningKey = errors.New("jwt signing key is not configured")
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	ValidateToken(tokenString string) (*dto.Claims, error)
}

// TokenService issues and validates bearer tokens.
type TokenService interface {
	TokenVerifier
	IssueToken(subject string, scopes []string) (*dto.TokenResponse, error)
}

// TokenConfig holds configuration for the token service.
type TokenConfig struct {
	SecretKey string
	Issuer    string
	TTL       time.Duration
}

// NewTokenConfigFromAuthConfig creates TokenConfig from config.AuthConfig.
func NewTokenConfigFromAuthConfig(authConfig config.AuthConfig) TokenConfig {
	return TokenConfig{
		SecretKey: authConfig.JWTSecretKey,
		Issuer:    authConfig.JWTIssuer,
		TTL:       authConfig.TokenTTL,
	}
}

// scopedClaims is the JWT payload: registered claims plus a space-separated scope.
type scopedClaims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// TokenServiceImpl implements TokenService with HS256 tokens.
type TokenServiceImpl struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService creates a new token service. A non-positive TTL defaults to one hour.
func NewTokenService(cfg TokenConfig) *TokenServiceImpl {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenServiceImpl{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		ttl:       ttl,
		now:       time.Now,
	}
}

// IssueToken signs a token for subject carrying scopes.
func (s *TokenServiceImpl) IssueToken(subject string, scopes []string) (*dto.TokenResponse, error) {
	if len(s.secretKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	if strings.TrimSpace(subject) == "" {
		return nil, errors.New("token subject must not be empty")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	scope := strings.Join(scopes, " ")

	claims := &scopedClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.UTC(),
		Scope:       scope,
	}, nil
}

// ValidateToken verifies signature, issuer and expiry and returns the claims.
func (s *TokenServiceImpl) ValidateToken(tokenString string) (*dto.Claims, error) {
	if len(s.secretKey) == 0 {
		return nil, ErrMissingSigningKey
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}

	claims := &scopedClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, parserOpts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	result := &dto.Claims{
		Subject: claims.Subject,
		Scopes:  strings.Fields(claims.Scope),
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return result, nil
}
