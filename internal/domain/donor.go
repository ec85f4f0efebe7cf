package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Donor uniqueness is informal: a pre-insert check on (email, first, last),
// matching the original system. There is deliberately no unique index here.
type Donor struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName     string         `gorm:"not null;column:first_name" json:"first_name"`
	LastName      string         `gorm:"not null;column:last_name" json:"last_name"`
	Email         string         `gorm:"column:email" json:"email"`
	Mobile        string         `gorm:"column:mobile" json:"mobile"`
	Address       string         `gorm:"column:address" json:"address"`
	DonationTypes datatypes.JSON `gorm:"column:donation_types" json:"donation_types"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}

func (Donor) TableName() string { return "donor" }
