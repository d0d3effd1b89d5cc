// Package prefs holds the single persisted preferences record
package prefs

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Preference keys
const (
	KeyToken        = "token"
	KeyViewerHandle = "viewerHandle"
)

// Store is a process-wide key-value preference store
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Token returns the stored access token, or "" when unset
func Token(s Store) string {
	v, _ := s.Get(KeyToken)
	return v
}

// ViewerHandle returns the stored viewer login, or "" when unset
func ViewerHandle(s Store) string {
	v, _ := s.Get(KeyViewerHandle)
	return v
}

// MemoryStore keeps preferences in memory
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates a store seeded with the given values
func NewMemoryStore(seed map[string]string) *MemoryStore {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &MemoryStore{values: values}
}

// Get returns the value for key
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// FileStore persists preferences as a JSON document. The token is base64
// encoded on disk. Every Set rewrites the whole file through a rename.
type FileStore struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// OpenFileStore loads the preferences at path. A missing file yields an empty store.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading preferences file: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("unable to decode preferences: %w", err)
	}

	if encoded, ok := s.values[KeyToken]; ok && encoded != "" {
		token, err := decodeCredentials(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode stored token: %w", err)
		}
		s.values[KeyToken] = token
	}

	return s, nil
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value for key
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists the record
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, had := s.values[key]
	s.values[key] = value

	if err := s.save(); err != nil {
		if had {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	toSave := make(map[string]string, len(s.values))
	for k, v := range s.values {
		toSave[k] = v
	}
	if token := toSave[KeyToken]; token != "" {
		toSave[KeyToken] = encodeCredentials(token)
	}

	data, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".preferences-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary preferences file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set preferences permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close preferences file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace preferences file: %w", err)
	}
	return nil
}

// encodeCredentials encodes sensitive credentials using base64
func encodeCredentials(value string) string {
	return base64.StdEncoding.EncodeToString([]byte(value))
}

// decodeCredentials decodes base64 encoded credentials
func decodeCredentials(value string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("failed to decode credential: %w", err)
	}
	return string(decoded), nil
}
