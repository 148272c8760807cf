package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/load-optimizer/config"
)

// ErrInvalidAPIKey is returned when a key matches neither a plain key nor a hash.
var ErrInvalidAPIKey = errors.New("invalid api key")

// APIKeyValidator checks API keys presented by clients.
type APIKeyValidator interface {
	Validate(key string) error
}

// APIKeyService accepts plain keys and bcrypt hashes of keys.
// Keys that matched a hash are remembered by their SHA-256 sum so bcrypt runs once per key.
type APIKeyService struct {
	plain    [][]byte
	hashes   [][]byte
	verified sync.Map
}

// NewAPIKeyService creates a validator. Malformed hashes are skipped with a warning.
func NewAPIKeyService(plainKeys map[string]bool, hashes []string) *APIKeyService {
	s := &APIKeyService{}
	for key, enabled := range plainKeys {
		if enabled && key != "" {
			s.plain = append(s.plain, []byte(key))
		}
	}
	for _, h := range hashes {
		h = strings.TrimSpace(h)
		if _, err := bcrypt.Cost([]byte(h)); err != nil {
			log.Warn().Err(err).Msg("Ignoring malformed API key hash")
			continue
		}
		s.hashes = append(s.hashes, []byte(h))
	}
	return s
}

// NewAPIKeyServiceFromAuthConfig builds the validator from configuration.
func NewAPIKeyServiceFromAuthConfig(cfg config.AuthConfig) *APIKeyService {
	return NewAPIKeyService(cfg.APIKeys, cfg.APIKeyHashes)
}

// Empty reports whether no key can ever be accepted.
func (s *APIKeyService) Empty() bool {
	return len(s.plain) == 0 && len(s.hashes) == 0
}

// Validate returns nil when key is accepted.
func (s *APIKeyService) Validate(key string) error {
	if key == "" {
		return ErrInvalidAPIKey
	}
	candidate := []byte(key)

	for _, k := range s.plain {
		if subtle.ConstantTimeCompare(k, candidate) == 1 {
			return nil
		}
	}

	sum := sha256.Sum256(candidate)
	if _, ok := s.verified.Load(sum); ok {
		return nil
	}
	for _, h := range s.hashes {
		if bcrypt.CompareHashAndPassword(h, candidate) == nil {
			s.verified.Store(sum, struct{}{})
			return nil
		}
	}
	return ErrInvalidAPIKey
}

// HashAPIKey returns a bcrypt hash suitable for API_KEY_HASHES.
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
