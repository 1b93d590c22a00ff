package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

// cachedToken is the on-disk shape of the token cache. The granted scopes
// are stored alongside the token so a scope change in the configuration
// invalidates the cache instead of silently reusing a narrower grant.
type cachedToken struct {
	oauth2.Token
	Scopes []string `json:"scopes,omitempty"`
}

var errScopeMismatch = errors.New("cached token scopes do not match")

func loadToken(path string, scopes []string) (*oauth2.Token, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token cache: %w", err)
	}

	var cached cachedToken
	if err := json.Unmarshal(b, &cached); err != nil {
		return nil, fmt.Errorf("parse token cache: %w", err)
	}
	if !scopesMatch(cached.Scopes, scopes) {
		return nil, errScopeMismatch
	}

	tok := cached.Token
	return &tok, nil
}

func saveToken(path string, tok *oauth2.Token, scopes []string) error {
	b, err := json.Marshal(cachedToken{Token: *tok, Scopes: scopes})
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	return nil
}

func scopesMatch(granted, wanted []string) bool {
	if len(granted) != len(wanted) {
		return false
	}
	set := make(map[string]bool, len(granted))
	for _, s := range granted {
		set[s] = true
	}
	for _, s := range wanted {
		if !set[s] {
			return false
		}
	}
	return true
}
