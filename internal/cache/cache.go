// Package cache keeps small API lists on disk so name lookups do not hit the
// API on every command.
//
// Cache files are JSON, scoped per resource and per API key (hashed, never
// stored). Default TTL is 5 minutes. Disable with TW_NO_CACHE=1.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const DefaultTTL = 5 * time.Minute

const envNoCache = "TW_NO_CACHE"

type entry struct {
	CachedAt time.Time       `json:"cached_at"`
	Items    json.RawMessage `json:"items"`
}

// Store reads and writes a single cache key (resource+API key).
type Store struct {
	path string
	ttl  time.Duration
}

// NewStore creates a Store with the default TTL. key names the resource,
// e.g. "projects".
func NewStore(dir, key, apiKey string) *Store {
	return NewStoreWithTTL(dir, key, apiKey, DefaultTTL)
}

// NewStoreWithTTL creates a Store with a custom TTL.
func NewStoreWithTTL(dir, key, apiKey string, ttl time.Duration) *Store {
	return &Store{
		path: filepath.Join(dir, fmt.Sprintf("%s_%s.json", sanitizeKey(key), keyHash(apiKey))),
		ttl:  ttl,
	}
}

func keyHash(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:6])
}

// Get loads cached items into dst. Returns false on miss (no file, expired, disabled).
func (s *Store) Get(dst any) bool {
	if disabled() {
		return false
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return false
	}
	if time.Since(e.CachedAt) > s.ttl {
		return false
	}
	return json.Unmarshal(e.Items, dst) == nil
}

// Put writes items to the cache. Errors are ignored.
func (s *Store) Put(items any) {
	if disabled() {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	data, err := json.Marshal(entry{CachedAt: time.Now(), Items: raw})
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		_ = os.Remove(tmp)
		return
	}
	_ = os.Rename(tmp, s.path)
}

// Clear removes this cache file.
func (s *Store) Clear() {
	_ = os.Remove(s.path)
}

// ClearAll removes every cache file in dir. Other files are left alone.
func ClearAll(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() && isCacheFilename(e.Name()) {
			_ = os.Remove(filepath.Join(dir, e.Name()))
		}
	}
}

// DefaultDir returns "$XDG_CACHE_HOME/teamwork-cli" or the platform
// equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "teamwork-cli"), nil
}

func disabled() bool {
	return os.Getenv(envNoCache) != ""
}

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "cache"
	}
	return strings.NewReplacer("/", "-", "\\", "-", "_", "-").Replace(key)
}

// isCacheFilename matches "<key>_<12hex>.json".
func isCacheFilename(name string) bool {
	if filepath.Ext(name) != ".json" {
		return false
	}
	key, hash, ok := strings.Cut(strings.TrimSuffix(name, ".json"), "_")
	if !ok || key == "" || len(hash) != 12 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
