package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/99designs/keyring"
)

// withMockKeyring sets up an in-memory keyring for the duration of a test
func withMockKeyring(t *testing.T, ring keyring.Keyring) {
	t.Helper()
	t.Cleanup(SetOpenKeyring(func(cfg keyring.Config) (keyring.Keyring, error) {
		return ring, nil
	}))
}

// withFailingKeyring sets up a keyring that always fails to open
func withFailingKeyring(t *testing.T, err error) {
	t.Helper()
	t.Cleanup(SetOpenKeyring(func(cfg keyring.Config) (keyring.Keyring, error) {
		return nil, err
	}))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envAPIKey, envProfile, envBootstrapURL, envKeyringBackend, envKeyringPassword, envCredentialsDir} {
		t.Setenv(key, "")
	}
}

func TestProfileKey(t *testing.T) {
	tests := []struct {
		profile  string
		expected string
	}{
		{"", accountKey},
		{"default", accountKey},
		{"work", profilePrefix + "work"},
	}
	for _, tt := range tests {
		if got := profileKey(tt.profile); got != tt.expected {
			t.Errorf("profileKey(%q) = %q, want %q", tt.profile, got, tt.expected)
		}
	}
}

func TestNormalizeProfiles(t *testing.T) {
	got := normalizeProfiles([]string{" default ", "", "work", "default", "  ", "ops"})
	want := []string{"default", "work", "ops"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("normalizeProfiles() = %v, want %v", got, want)
	}
	if normalizeProfiles(nil) != nil {
		t.Error("normalizeProfiles(nil) should be nil")
	}
}

func TestLoadProfileIndex_InvalidJSON(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{{Key: profileIndexKey, Data: []byte("not json")}})
	if _, err := loadProfileIndex(ring); err == nil {
		t.Error("expected error for invalid index")
	}
}

func TestSaveAndLoadProfile(t *testing.T) {
	clearEnv(t)
	ring := keyring.NewArrayKeyring(nil)
	withMockKeyring(t, ring)

	if err := SaveProfile("work", Account{APIKey: "twp_abc", BaseURL: "https://acme.teamwork.com/"}); err != nil {
		t.Fatalf("SaveProfile() error: %v", err)
	}

	current, err := CurrentProfile()
	if err != nil || current != "work" {
		t.Fatalf("CurrentProfile() = %q, %v", current, err)
	}

	account, err := LoadAccount()
	if err != nil {
		t.Fatalf("LoadAccount() error: %v", err)
	}
	if account.APIKey != "twp_abc" || account.BaseURL != "https://acme.teamwork.com/" {
		t.Errorf("LoadAccount() = %+v", account)
	}

	profiles, err := ListProfiles()
	if err != nil || len(profiles) != 1 || profiles[0] != "work" {
		t.Errorf("ListProfiles() = %v, %v", profiles, err)
	}
}

func TestSaveProfile_RequiresAPIKey(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring(nil))
	if err := SaveProfile("default", Account{APIKey: "  "}); err == nil {
		t.Error("expected error for blank api key")
	}
}

func TestSaveProfile_KeyringError(t *testing.T) {
	clearEnv(t)
	withFailingKeyring(t, errors.New("locked"))
	err := SaveProfile("default", Account{APIKey: "k"})
	if err == nil || !strings.Contains(err.Error(), "failed to open keyring") {
		t.Errorf("SaveProfile() error = %v", err)
	}
}

func TestLoadProfile_NotConfigured(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring(nil))
	if _, err := LoadProfile("missing"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("LoadProfile() error = %v, want ErrNotConfigured", err)
	}
}

func TestLoadProfile_InvalidJSON(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring([]keyring.Item{{Key: accountKey, Data: []byte("{")}}))
	if _, err := LoadProfile(""); err == nil {
		t.Error("expected unmarshal error")
	}
}

func TestLoadAccount_EnvAPIKeyWins(t *testing.T) {
	clearEnv(t)
	withFailingKeyring(t, errors.New("keyring should not be opened"))
	t.Setenv(envAPIKey, " env-key ")
	t.Setenv(envBootstrapURL, "http://localhost:9999/authenticate")

	account, err := LoadAccount()
	if err != nil {
		t.Fatalf("LoadAccount() error: %v", err)
	}
	if account.APIKey != "env-key" || account.BootstrapURL != "http://localhost:9999/authenticate" {
		t.Errorf("LoadAccount() = %+v", account)
	}
}

func TestLoadAccount_EnvProfile(t *testing.T) {
	clearEnv(t)
	ring := keyring.NewArrayKeyring(nil)
	withMockKeyring(t, ring)
	if err := SaveProfile("a", Account{APIKey: "key-a"}); err != nil {
		t.Fatal(err)
	}
	if err := SaveProfile("b", Account{APIKey: "key-b"}); err != nil {
		t.Fatal(err)
	}

	t.Setenv(envProfile, "a")
	account, err := LoadAccount()
	if err != nil || account.APIKey != "key-a" {
		t.Errorf("LoadAccount() = %+v, %v", account, err)
	}
}

func TestDeleteProfileSwitchesCurrentProfile(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring(nil))
	for _, p := range []string{"a", "b"} {
		if err := SaveProfile(p, Account{APIKey: "key-" + p}); err != nil {
			t.Fatal(err)
		}
	}

	if err := DeleteProfile("b"); err != nil {
		t.Fatalf("DeleteProfile() error: %v", err)
	}
	current, _ := CurrentProfile()
	if current != "a" {
		t.Errorf("CurrentProfile() = %q, want a", current)
	}
	if _, err := LoadProfile("b"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("LoadProfile(b) error = %v", err)
	}
}

func TestDeleteProfile_Missing(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring(nil))
	if err := DeleteProfile("ghost"); err != nil {
		t.Errorf("DeleteProfile() error = %v", err)
	}
}

func TestListProfiles_LegacyDefault(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring([]keyring.Item{{Key: accountKey, Data: []byte(`{"api_key":"k"}`)}}))
	profiles, err := ListProfiles()
	if err != nil || len(profiles) != 1 || profiles[0] != defaultProfile {
		t.Errorf("ListProfiles() = %v, %v", profiles, err)
	}
}

func TestKeyringBackendMode(t *testing.T) {
	tests := map[string]string{
		"":       keyringBackendAuto,
		"auto":   keyringBackendAuto,
		"FILE":   keyringBackendFile,
		"native": keyringBackendSystem,
		"bogus":  keyringBackendAuto,
	}
	for value, want := range tests {
		t.Setenv(envKeyringBackend, value)
		if got := keyringBackendMode(); got != want {
			t.Errorf("keyringBackendMode(%q) = %q, want %q", value, got, want)
		}
	}
}

func TestShouldForceFileBackend(t *testing.T) {
	tests := []struct {
		goos, backend, dbus string
		want                bool
	}{
		{"linux", keyringBackendAuto, "", true},
		{"linux", keyringBackendAuto, "unix:path=/run/bus", false},
		{"darwin", keyringBackendAuto, "", false},
		{"darwin", keyringBackendFile, "", true},
		{"linux", keyringBackendSystem, "", false},
	}
	for _, tt := range tests {
		if got := shouldForceFileBackend(tt.goos, tt.backend, tt.dbus); got != tt.want {
			t.Errorf("shouldForceFileBackend(%q, %q, %q) = %v", tt.goos, tt.backend, tt.dbus, got)
		}
	}
}

func TestKeyringConfig_SystemBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv(envKeyringBackend, "system")
	cfg := keyringConfig()
	if cfg.ServiceName != serviceName || cfg.FileDir != "" {
		t.Errorf("keyringConfig() = %+v", cfg)
	}
}

func TestKeyringFileDir(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(envCredentialsDir, dir)
	if got := keyringFileDir(); got != filepath.Join(dir, "keyring") {
		t.Errorf("keyringFileDir() = %q", got)
	}
}

func TestKeyringFilePassword(t *testing.T) {
	clearEnv(t)
	t.Setenv(envKeyringPassword, "secret")
	if got, err := keyringFilePassword("pw"); err != nil || got != "secret" {
		t.Errorf("keyringFilePassword() = %q, %v", got, err)
	}

	t.Setenv(envKeyringPassword, "")
	original := stdinHasTTY
	stdinHasTTY = func() bool { return false }
	t.Cleanup(func() { stdinHasTTY = original })
	if _, err := keyringFilePassword("pw"); err == nil || !strings.Contains(err.Error(), envKeyringPassword) {
		t.Errorf("keyringFilePassword() error = %v", err)
	}
}

func TestResolveClientConfig(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring(nil))
	if err := SaveProfile("default", Account{APIKey: "k", BootstrapURL: "https://stored.example/authenticate"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := ResolveClientConfig()
	if err != nil {
		t.Fatalf("ResolveClientConfig() error: %v", err)
	}
	if cfg.APIKey != "k" || cfg.BootstrapURL != "https://stored.example/authenticate" {
		t.Errorf("ResolveClientConfig() = %+v", cfg)
	}

	t.Setenv(envBootstrapURL, "http://override.example/authenticate")
	cfg, _ = ResolveClientConfig()
	if cfg.BootstrapURL != "http://override.example/authenticate" {
		t.Errorf("override not applied: %+v", cfg)
	}
}

func TestResolveClientConfig_NotConfigured(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring(nil))
	if _, err := ResolveClientConfig(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("ResolveClientConfig() error = %v", err)
	}
}

func TestEnvFiles(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TEAMWORK_API_KEY=from-file\n# comment\nTEAMWORK_BOOTSTRAP_URL=http://127.0.0.1/auth\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	account, err := ReadEnvFile(path)
	if err != nil {
		t.Fatalf("ReadEnvFile() error: %v", err)
	}
	if account.APIKey != "from-file" || account.BootstrapURL != "http://127.0.0.1/auth" {
		t.Errorf("ReadEnvFile() = %+v", account)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadEnvFile(missing) error = %v", err)
	}

	os.Unsetenv(envAPIKey)
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error: %v", err)
	}
	if os.Getenv(envAPIKey) != "from-file" {
		t.Errorf("%s = %q after LoadEnvFile", envAPIKey, os.Getenv(envAPIKey))
	}
	t.Cleanup(func() { os.Unsetenv(envAPIKey); os.Unsetenv(envBootstrapURL) })
}

func TestReadEnvFile_NoKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("OTHER=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadEnvFile(path); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("ReadEnvFile() error = %v", err)
	}
}
