package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// ClientConfig contains resolved API client settings.
type ClientConfig struct {
	APIKey string
	// BootstrapURL is empty unless overridden; the client then uses its
	// default discovery endpoint.
	BootstrapURL string
}

// ResolveClientConfig resolves the settings for a new API client.
func ResolveClientConfig() (ClientConfig, error) {
	account, err := LoadAccount()
	if err != nil {
		return ClientConfig{}, err
	}
	cfg := ClientConfig{
		APIKey:       account.APIKey,
		BootstrapURL: account.BootstrapURL,
	}
	if override := envValue(envBootstrapURL); override != "" {
		cfg.BootstrapURL = override
	}
	return cfg, nil
}

// DefaultEnvFile is the .env file loaded at startup, ~/.teamwork/.env.
func DefaultEnvFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".teamwork", ".env")
}

// LoadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// ReadEnvFile parses path and returns the Teamwork credentials it names.
func ReadEnvFile(path string) (Account, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return Account{}, err
	}
	account := Account{
		APIKey:       vars[envAPIKey],
		BootstrapURL: vars[envBootstrapURL],
	}
	if account.APIKey == "" {
		return Account{}, ErrNotConfigured
	}
	return account, nil
}
