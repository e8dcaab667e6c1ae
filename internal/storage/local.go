package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileStore keeps uploads in a directory served statically under URLPrefix
type LocalFileStore struct {
	dir       string
	urlPrefix string
}

// NewLocalFileStore creates the upload directory if needed
func NewLocalFileStore(dir, urlPrefix string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalFileStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Dir returns the directory files are written to
func (s *LocalFileStore) Dir() string {
	return s.dir
}

func (s *LocalFileStore) Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	f, err := os.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return s.urlPrefix + "/" + name, nil
}

// Delete removes name; concurrent deletes of the same file see ErrFileNotFound, never a crash
func (s *LocalFileStore) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrFileNotFound
	}
	return err
}

func (s *LocalFileStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
