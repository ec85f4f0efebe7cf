package domain

import (
	"time"

	"github.com/google/uuid"
)

type DocumentationFolder struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	MediaCount int       `gorm:"column:media_count;not null;default:0" json:"media_count"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (DocumentationFolder) TableName() string { return "documentation_folder" }

type MediaFile struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	FolderID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"folder_id"`
	Folder      *DocumentationFolder `gorm:"constraint:OnDelete:CASCADE;foreignKey:FolderID;references:ID" json:"folder,omitempty"`
	FileName    string               `gorm:"column:file_name;not null" json:"file_name"`
	StorageKey  string               `gorm:"column:storage_key;not null" json:"storage_key"`
	FileURL     string               `gorm:"column:file_url" json:"file_url"`
	ContentType string               `gorm:"column:content_type" json:"content_type"`
	SizeBytes   int64                `gorm:"column:size_bytes" json:"size_bytes"`
	CreatedAt   time.Time            `gorm:"not null" json:"created_at"`
}

func (MediaFile) TableName() string { return "media_file" }
