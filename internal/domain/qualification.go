package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QualificationRecord is the join row over (beneficiary, calamity). It tracks
// whether the beneficiary qualifies for the calamity's benefit and, once a
// release is recorded, carries the benefit fields and claimant evidence.
type QualificationRecord struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	CalamityID    uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:idx_qualification_pair" json:"calamity_id"`
	Calamity      *Calamity    `gorm:"constraint:OnDelete:CASCADE;foreignKey:CalamityID;references:ID" json:"calamity,omitempty"`
	BeneficiaryID uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:idx_qualification_pair" json:"beneficiary_id"`
	Beneficiary   *Beneficiary `gorm:"constraint:OnDelete:CASCADE;foreignKey:BeneficiaryID;references:ID" json:"beneficiary,omitempty"`

	// BrgyName is denormalized from the owning barangay so a scanned QR
	// payload can resolve the record without an extra hop.
	BrgyName string `gorm:"column:brgy_name;not null;index" json:"brgy_name"`

	IsQualified  bool       `gorm:"column:is_qualified;not null;default:false" json:"is_qualified"`
	IsClaimed    bool       `gorm:"column:is_claimed;not null;default:false" json:"is_claimed"`
	DateVerified *time.Time `gorm:"column:date_verified" json:"date_verified,omitempty"`
	DateClaimed  *time.Time `gorm:"column:date_claimed" json:"date_claimed,omitempty"`

	DonationTypes datatypes.JSON `gorm:"column:donation_types" json:"donation_types"`
	Description   string         `gorm:"column:description" json:"description"`
	Cost          string         `gorm:"column:cost" json:"cost"`
	Quantity      int            `gorm:"column:quantity" json:"quantity"`

	ClaimantImageKey string `gorm:"column:claimant_image_key" json:"claimant_image_key"`
	ClaimantImageURL string `gorm:"column:claimant_image_url" json:"claimant_image_url"`
	HealthSnapshot   string `gorm:"column:health_snapshot" json:"health_snapshot"`
	HousingSnapshot  string `gorm:"column:housing_snapshot" json:"housing_snapshot"`
	CasualtySnapshot string `gorm:"column:casualty_snapshot" json:"casualty_snapshot"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (QualificationRecord) TableName() string { return "qualification_record" }
