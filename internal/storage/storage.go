// Package storage persists uploaded file contents.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrFileNotFound is returned by Delete when nothing is stored under the name
var ErrFileNotFound = errors.New("file not found")

// FileStore saves and removes uploaded files by their stored name
type FileStore interface {
	// Save writes r under name and returns the public URL of the stored file
	Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
}
