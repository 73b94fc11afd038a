// Package client is the Go consumer of the personal-finance API. It manages
// stored credentials and refreshes access tokens transparently.
package client

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// TokenStore holds the current access/refresh token pair between requests.
// Implementations must be safe for concurrent use: the transport reads and
// rotates tokens from multiple goroutines.
type TokenStore interface {
	// Tokens returns the stored pair. Empty strings mean no session.
	Tokens() (accessToken, refreshToken string)

	// Save replaces the stored pair.
	Save(accessToken, refreshToken string) error

	// Clear drops the stored pair, ending the session.
	Clear() error

	// HasPair reports whether a complete pair is stored. A half-empty pair
	// cannot sustain a session and counts as absent.
	HasPair() bool
}

// MemoryStore keeps tokens in process memory. This is the default store and
// the right choice for short-lived programs and tests.
type MemoryStore struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accessToken, s.refreshToken
}

func (s *MemoryStore) Save(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = accessToken
	s.refreshToken = refreshToken

	return nil
}

func (s *MemoryStore) Clear() error {
	return s.Save("", "")
}

func (s *MemoryStore) HasPair() bool {
	access, refresh := s.Tokens()

	return access != "" && refresh != ""
}

// fileTokens is the on-disk JSON shape of a stored session.
type fileTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// FileStore persists tokens as a JSON file so sessions survive process
// restarts. The file is written with 0600 permissions since it holds live
// credentials.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a token store backed by the given file path.
// A missing file reads as an empty session.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", ""
	}

	var tokens fileTokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		return "", ""
	}

	return tokens.AccessToken, tokens.RefreshToken
}

func (s *FileStore) Save(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(fileTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode tokens")
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write token file")
	}

	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove token file")
	}

	return nil
}

func (s *FileStore) HasPair() bool {
	access, refresh := s.Tokens()

	return access != "" && refresh != ""
}

// NoopStore never stores anything. Useful for purely anonymous access.
type NoopStore struct{}

func (NoopStore) Tokens() (string, string) { return "", "" }
func (NoopStore) Save(_, _ string) error   { return nil }
func (NoopStore) Clear() error             { return nil }
func (NoopStore) HasPair() bool            { return false }
