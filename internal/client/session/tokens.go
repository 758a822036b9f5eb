package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore keeps the current token pair in memory and mirrors it to a file
// so a restart does not force a new login. An empty path disables
// persistence.
type TokenStore struct {
	mu      sync.Mutex
	path    string
	access  string
	refresh string
}

type persistedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// NewTokenStore loads any previously saved pair from path.
func NewTokenStore(path string) *TokenStore {
	s := &TokenStore{path: path}

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var saved persistedTokens
			if json.Unmarshal(data, &saved) == nil {
				s.access = saved.AccessToken
				s.refresh = saved.RefreshToken
			}
		}
	}

	return s
}

func (s *TokenStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *TokenStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

// UpdateTokens replaces the pair and rewrites the cache file. Write failures
// are ignored: the session still works for this process.
func (s *TokenStore) UpdateTokens(accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = accessToken
	s.refresh = refreshToken
	s.persistLocked()
}

// Clear drops the pair and removes the cache file.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = ""
	s.refresh = ""
	if s.path != "" {
		_ = os.Remove(s.path)
	}
}

func (s *TokenStore) persistLocked() {
	if s.path == "" {
		return
	}

	data, err := json.Marshal(persistedTokens{AccessToken: s.access, RefreshToken: s.refresh})
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o600)
}

// DefaultTokenPath returns the per-user location of the session cache, or ""
// when no config directory is available.
func DefaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "decat", "session.json")
}
