// Package auth obtains a delegated Google OAuth token for the documents
// scope. Tokens are cached in a local JSON file; a cached token is reused
// while valid, refreshed when possible, and re-authorized interactively
// otherwise.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrMissingClientConfig is returned when the OAuth client secret file is
// absent. The caller is expected to turn this into remediation
// instructions for the user; no token can be obtained without it.
var ErrMissingClientConfig = errors.New("oauth client secret file not found")

type Manager struct {
	credentialsPath string
	tokenPath       string
	scopes          []string
	callbackPort    int
	logger          *slog.Logger

	// promptAuth tells the user where to authorize. Tests override it to
	// drive the callback themselves.
	promptAuth func(authURL string)
}

func NewManager(credentialsPath, tokenPath string, scopes []string, callbackPort int, logger *slog.Logger) *Manager {
	return &Manager{
		credentialsPath: credentialsPath,
		tokenPath:       tokenPath,
		scopes:          scopes,
		callbackPort:    callbackPort,
		logger:          logger,
		promptAuth: func(authURL string) {
			fmt.Println("Open this URL in your browser to authorize access:")
			fmt.Println(authURL)
		},
	}
}

// Obtain returns a valid token, trying in order: the cached token as-is, a
// refresh exchange, and finally the interactive authorization-code flow.
// Successful refreshes and authorizations overwrite the cache file.
func (m *Manager) Obtain(ctx context.Context) (*oauth2.Token, error) {
	cached, cacheErr := loadToken(m.tokenPath, m.scopes)
	if cacheErr == nil && cached.Valid() {
		m.logger.Debug("using cached token", "path", m.tokenPath)
		return cached, nil
	}

	cfg, err := m.clientConfig()
	if err != nil {
		return nil, err
	}

	if cacheErr == nil && cached.RefreshToken != "" {
		tok, err := cfg.TokenSource(ctx, cached).Token()
		if err == nil {
			if err := saveToken(m.tokenPath, tok, m.scopes); err != nil {
				return nil, fmt.Errorf("save token: %w", err)
			}
			m.logger.Info("token refreshed", "expiry", tok.Expiry)
			return tok, nil
		}
		m.logger.Warn("token refresh failed, re-authorizing", "error", err)
	}

	tok, err := m.authorize(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("authorize: %w", err)
	}
	if err := saveToken(m.tokenPath, tok, m.scopes); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	m.logger.Info("authorization complete", "expiry", tok.Expiry)
	return tok, nil
}

func (m *Manager) clientConfig() (*oauth2.Config, error) {
	b, err := os.ReadFile(m.credentialsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingClientConfig, m.credentialsPath)
	}
	if err != nil {
		return nil, fmt.Errorf("read client secret: %w", err)
	}

	cfg, err := google.ConfigFromJSON(b, m.scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secret: %w", err)
	}
	return cfg, nil
}
