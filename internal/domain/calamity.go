package domain

import (
	"time"

	"github.com/google/uuid"
)

type Calamity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	CalamityType string    `gorm:"column:calamity_type" json:"calamity_type"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Calamity) TableName() string { return "calamity" }
