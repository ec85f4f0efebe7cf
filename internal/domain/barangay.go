package domain

import (
	"time"

	"github.com/google/uuid"
)

// Barangay is a named container scoping its own beneficiary records. Name is
// stored normalized (see NormalizeName) and doubles as the storage-path key.
type Barangay struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Barangay) TableName() string { return "barangay" }
