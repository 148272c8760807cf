package dto

import (
	"time"
)

// Claims is the verified identity carried by a bearer token.
type Claims struct {
	Subject   string
	Scopes    []string
	TokenID   string
	ExpiresAt time.Time
}

// HasScope reports whether the claims grant scope. An empty scope is always granted.
func (c *Claims) HasScope(scope string) bool {
	if scope == "" {
		return true
	}
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// TokenResponse is printed by the token CLI command.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Scope       string    `json:"scope,omitempty"`
}
