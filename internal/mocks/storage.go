package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/bluenote/backend/internal/storage"
)

// MockFileStore keeps file contents in memory
type MockFileStore struct {
	mu    sync.Mutex
	Files map[string][]byte
	// SaveError, when set, is returned by Save
	SaveError error
}

func NewMockFileStore() *MockFileStore {
	return &MockFileStore{Files: make(map[string][]byte)}
}

func (m *MockFileStore) Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	if m.SaveError != nil {
		return "", m.SaveError
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files[name] = data
	return "/uploads/" + name, nil
}

func (m *MockFileStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Files[name]; !ok {
		return storage.ErrFileNotFound
	}
	delete(m.Files, name)
	return nil
}
