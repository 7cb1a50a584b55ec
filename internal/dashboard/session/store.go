package session

import (
	"os"
	"path/filepath"
	"sync"
)

// The two persisted session keys. Both are written together on login and
// cleared together on logout or auth failure.
const (
	tokenKey   = "auth_token"
	subjectKey = "auth_user"
)

// Store persists the session's token and serialized subject. Reads return
// empty values, not errors, when nothing has been persisted yet.
type Store interface {
	ReadToken() (string, error)
	ReadSubject() ([]byte, error)
	Write(token string, subject []byte) error
	Clear() error
}

// FileStore keeps the two session keys as files under a state directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) ReadToken() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenKey))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *FileStore) ReadSubject() ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, subjectKey))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *FileStore) Write(token string, subject []byte) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenKey), []byte(token), 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, subjectKey), subject, 0o600)
}

func (s *FileStore) Clear() error {
	tokenErr := os.Remove(filepath.Join(s.dir, tokenKey))
	subjectErr := os.Remove(filepath.Join(s.dir, subjectKey))
	if tokenErr != nil && !os.IsNotExist(tokenErr) {
		return tokenErr
	}
	if subjectErr != nil && !os.IsNotExist(subjectErr) {
		return subjectErr
	}
	return nil
}

// MemoryStore is an in-process store used in tests.
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	subject []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ReadToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) ReadSubject() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subject, nil
}

func (s *MemoryStore) Write(token string, subject []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.subject = subject
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.subject = nil
	return nil
}
