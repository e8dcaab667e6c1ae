package models

import "time"

// UploadedFile is a ledger row for a stored upload (PostgreSQL / SQLite)
type UploadedFile struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;uniqueIndex"`
	URL         string    `json:"url" gorm:"size:500"`
	OwnerID     string    `json:"owner_id" gorm:"size:24;index"`
	ContentType string    `json:"content_type" gorm:"size:100"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeleteFileRequest defines the request body for DELETE /delete_file
type DeleteFileRequest struct {
	FileURL string `json:"file_url" validate:"required"`
}
