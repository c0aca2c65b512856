package gateway

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// CredentialStore holds the session bearer token under a well-known file
// path, the equivalent of the browser's persistent storage key. The zero
// token means logged out.
type CredentialStore struct {
	path  string
	mu    sync.RWMutex
	token string
}

// NewCredentialStore loads any previously stored token from path. A missing
// or unreadable file starts the store logged out.
func NewCredentialStore(path string) *CredentialStore {
	s := &CredentialStore{path: path}
	if data, err := os.ReadFile(path); err == nil {
		s.token = strings.TrimSpace(string(data))
	}
	return s
}

// Token returns the stored bearer token, empty when logged out.
func (s *CredentialStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set stores and persists a new bearer token.
func (s *CredentialStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear forgets the token and removes the persisted copy.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// OwnerID resolves the owner identity from the stored token. Absent or
// undecodable tokens report ok=false; the function never panics.
func (s *CredentialStore) OwnerID() (int64, bool) {
	return DecodeOwnerID(s.Token())
}

// DecodeOwnerID extracts the UserId claim from a JWT bearer token without
// verifying the signature (verification belongs to the backend). Any decoding
// failure is treated identically to an absent credential.
func DecodeOwnerID(token string) (int64, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return 0, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return 0, false
	}
	var claims map[string]any
	if err := json.Unmarshal(payload, &claims); err != nil {
		return 0, false
	}
	switch v := claims["UserId"].(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
