package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/repositories"
	"github.com/bluenote/backend/internal/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// sniffLen is the number of leading bytes inspected to detect the content type
const sniffLen = 3072

var (
	ErrMissingFile     = NewValidationError("Missing file")
	ErrMissingFileName = NewValidationError("File name is missing")
	ErrUnsupportedFile = NewValidationError("Only image files can be uploaded")
	ErrNotFileOwner    = &Error{Kind: KindOwnership, Message: "Unauthorized: You are not the owner of this file"}
)

// FileService stores uploads and keeps the ownership ledger in sync
type FileService struct {
	store  storage.FileStore
	ledger repositories.FileLedgerRepository
	now    func() time.Time
	log    zerolog.Logger
}

func NewFileService(store storage.FileStore, ledger repositories.FileLedgerRepository, now func() time.Time, log zerolog.Logger) *FileService {
	return &FileService{store: store, ledger: ledger, now: now, log: log}
}

// Upload stores an image under a generated name and returns its URL
func (s *FileService) Upload(ctx context.Context, owner *models.User, r io.Reader, size int64) (*models.FileData, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	switch {
	case errors.Is(err, io.EOF):
		return nil, ErrMissingFile
	case err != nil && !errors.Is(err, io.ErrUnexpectedEOF):
		return nil, err
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, ErrUnsupportedFile
	}

	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), mtype.Extension())
	fileURL, err := s.store.Save(ctx, name, io.MultiReader(bytes.NewReader(head), r), mtype.String())
	if err != nil {
		return nil, err
	}

	record := &models.UploadedFile{
		Name:        name,
		URL:         fileURL,
		OwnerID:     owner.ID.Hex(),
		ContentType: mtype.String(),
		Size:        size,
		CreatedAt:   s.now(),
	}
	if err := s.ledger.CreateFile(record); err != nil {
		if derr := s.store.Delete(ctx, name); derr != nil {
			s.log.Error().Err(derr).Str("file", name).Msg("failed to roll back stored file")
		}
		return nil, err
	}

	s.log.Info().Str("file", name).Str("owner", owner.Username).Int64("size", size).Msg("file uploaded")
	return &models.FileData{FileURL: fileURL}, nil
}

// Delete removes the file addressed by fileURL. Files recorded in the
// ledger may only be removed by their owner.
func (s *FileService) Delete(ctx context.Context, requester *models.User, fileURL string) error {
	name := storedName(fileURL)
	if name == "" {
		return ErrMissingFileName
	}

	record, err := s.ledger.GetFileByName(name)
	switch {
	case err == nil:
		if record.OwnerID != requester.ID.Hex() {
			return ErrNotFileOwner
		}
	case !errors.Is(err, repositories.ErrNotFound):
		return err
	}

	if err := s.store.Delete(ctx, name); err != nil {
		if !errors.Is(err, storage.ErrFileNotFound) {
			return err
		}
		if record == nil {
			return ErrFileNotFound
		}
		// the object is gone already; drop the ledger row it left behind
		s.log.Warn().Str("file", name).Msg("ledger row without stored file")
		if err := s.ledger.DeleteFileByName(name); err != nil {
			return err
		}
		return ErrFileNotFound
	}
	return s.ledger.DeleteFileByName(name)
}

// ReleaseOwned removes fileURL when the ledger records owner as its uploader.
// Files the ledger does not know, or that belong to someone else, are kept.
func (s *FileService) ReleaseOwned(ctx context.Context, owner *models.User, fileURL string) error {
	name := storedName(fileURL)
	if name == "" {
		return nil
	}
	record, err := s.ledger.GetFileByName(name)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if record.OwnerID != owner.ID.Hex() {
		return nil
	}
	if err := s.store.Delete(ctx, name); err != nil && !errors.Is(err, storage.ErrFileNotFound) {
		return err
	}
	return s.ledger.DeleteFileByName(name)
}

// UserFiles lists the uploads recorded for owner, newest first
func (s *FileService) UserFiles(owner *models.User) (*models.FileList, error) {
	files, err := s.ledger.GetFilesByOwner(owner.ID.Hex())
	if err != nil {
		return nil, err
	}
	list := &models.FileList{Files: make([]models.FileRef, 0, len(files))}
	for _, f := range files {
		list.Files = append(list.Files, models.FileRef{
			FileURL:     f.URL,
			ContentType: f.ContentType,
			Size:        f.Size,
			CreatedAt:   f.CreatedAt,
		})
	}
	return list, nil
}

// storedName extracts the bare stored file name from a URL or path
func storedName(fileURL string) string {
	p := fileURL
	if u, err := url.Parse(fileURL); err == nil {
		p = u.Path
	}
	name := path.Base(p)
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
