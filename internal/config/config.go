package config

import (
	"os"
	"strconv"
)

type Config struct {
	CredentialsPath string
	TokenPath       string
	SourcePath      string
	Title           string
	CallbackPort    int
	BulletLists     bool
	LogLevel        string
}

func Load() Config {
	return Config{
		CredentialsPath: envStr("QUILL_CREDENTIALS", "credentials.json"),
		TokenPath:       envStr("QUILL_TOKEN", "token.json"),
		SourcePath:      envStr("QUILL_SOURCE", "docs/project-summary.md"),
		Title:           envStr("QUILL_TITLE", "Untitled document"),
		CallbackPort:    envInt("QUILL_OAUTH_PORT", 0),
		BulletLists:     envBool("QUILL_BULLETS", false),
		LogLevel:        envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
