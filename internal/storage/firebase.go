package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
)

// FirebaseFileStore keeps uploads in a Firebase (Cloud Storage) bucket
type FirebaseFileStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseFileStore(bucket *gcs.BucketHandle, bucketName string) *FirebaseFileStore {
	return &FirebaseFileStore{bucket: bucket, bucketName: bucketName}
}

func (s *FirebaseFileStore) Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	w := s.bucket.Object(name).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object: %w", err)
	}
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media",
		s.bucketName, url.PathEscape(name)), nil
}

func (s *FirebaseFileStore) Delete(ctx context.Context, name string) error {
	err := s.bucket.Object(name).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return ErrFileNotFound
	}
	return err
}
