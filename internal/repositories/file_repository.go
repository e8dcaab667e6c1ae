package repositories

import (
	"errors"

	"github.com/bluenote/backend/internal/models"
	"gorm.io/gorm"
)

// FileLedgerRepository defines the interface for uploaded file bookkeeping
type FileLedgerRepository interface {
	CreateFile(file *models.UploadedFile) error
	GetFileByName(name string) (*models.UploadedFile, error)
	DeleteFileByName(name string) error
	GetFilesByOwner(ownerID string) ([]models.UploadedFile, error)
}

// GormFileLedgerRepository implements FileLedgerRepository on PostgreSQL or SQLite
type GormFileLedgerRepository struct {
	db *gorm.DB
}

func NewGormFileLedgerRepository(db *gorm.DB) *GormFileLedgerRepository {
	return &GormFileLedgerRepository{db: db}
}

// Migrate creates or updates the uploaded_files table
func (r *GormFileLedgerRepository) Migrate() error {
	return r.db.AutoMigrate(&models.UploadedFile{})
}

func (r *GormFileLedgerRepository) CreateFile(file *models.UploadedFile) error {
	return r.db.Create(file).Error
}

func (r *GormFileLedgerRepository) GetFileByName(name string) (*models.UploadedFile, error) {
	var file models.UploadedFile
	err := r.db.Where("name = ?", name).First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteFileByName removes the ledger row for name; a missing row is not an error
func (r *GormFileLedgerRepository) DeleteFileByName(name string) error {
	return r.db.Where("name = ?", name).Delete(&models.UploadedFile{}).Error
}

func (r *GormFileLedgerRepository) GetFilesByOwner(ownerID string) ([]models.UploadedFile, error) {
	var files []models.UploadedFile
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&files).Error
	return files, err
}
