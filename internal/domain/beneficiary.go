package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FamilyMember is embedded in the beneficiary record as a JSON list, not a
// table of its own: the original system treats the household roster as part of
// the beneficiary document and never queries members independently.
type FamilyMember struct {
	Name        string `json:"name"`
	Relation    string `json:"relation"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	CivilStatus string `json:"civil_status"`
	Education   string `json:"education"`
	Skills      string `json:"skills"`
	Remarks     string `json:"remarks"`
}

// Beneficiary is scoped to its barangay. The (first, middle, last) name triple
// is unique per barangay; the composite index backs the pre-insert existence
// check so concurrent submitters cannot slip a duplicate past it.
type Beneficiary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarangayID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_beneficiary_name" json:"barangay_id"`
	Barangay   *Barangay `gorm:"constraint:OnDelete:RESTRICT;foreignKey:BarangayID;references:ID" json:"barangay,omitempty"`

	FirstName   string `gorm:"not null;column:first_name;uniqueIndex:idx_beneficiary_name" json:"first_name"`
	MiddleName  string `gorm:"column:middle_name;uniqueIndex:idx_beneficiary_name" json:"middle_name"`
	LastName    string `gorm:"not null;column:last_name;uniqueIndex:idx_beneficiary_name" json:"last_name"`
	Mobile      string `gorm:"column:mobile" json:"mobile"`
	Age         int    `gorm:"column:age" json:"age"`
	Gender      string `gorm:"column:gender" json:"gender"`
	CivilStatus string `gorm:"column:civil_status" json:"civil_status"`
	Ethnicity   string `gorm:"column:ethnicity" json:"ethnicity"`
	Religion    string `gorm:"column:religion" json:"religion"`
	Email       string `gorm:"column:email" json:"email"`

	Region      string `gorm:"column:region" json:"region"`
	Province    string `gorm:"column:province" json:"province"`
	City        string `gorm:"column:city" json:"city"`
	BrgyAddress string `gorm:"column:brgy_address" json:"brgy_address"`
	HouseNumber string `gorm:"column:house_number" json:"house_number"`

	Occupation    string `gorm:"column:occupation" json:"occupation"`
	MonthlyIncome string `gorm:"column:monthly_income" json:"monthly_income"`
	FourPs        bool   `gorm:"column:four_ps" json:"four_ps"`

	HousingConditions datatypes.JSON `gorm:"column:housing_conditions" json:"housing_conditions"`
	HealthConditions  datatypes.JSON `gorm:"column:health_conditions" json:"health_conditions"`
	Casualties        datatypes.JSON `gorm:"column:casualties" json:"casualties"`
	OwnershipTypes    datatypes.JSON `gorm:"column:ownership_types" json:"ownership_types"`
	CodeFlags         datatypes.JSON `gorm:"column:code_flags" json:"code_flags"`

	FamilyMembers datatypes.JSON `gorm:"column:family_members" json:"family_members"`

	QRStorageKey string `gorm:"column:qr_storage_key" json:"qr_storage_key"`
	QRImageURL   string `gorm:"column:qr_image_url" json:"qr_image_url"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Beneficiary) TableName() string { return "beneficiary" }

// FamilyMemberList decodes the embedded household roster. A null or empty
// column decodes to an empty list.
func (b *Beneficiary) FamilyMemberList() ([]FamilyMember, error) {
	if len(b.FamilyMembers) == 0 {
		return nil, nil
	}
	var members []FamilyMember
	if err := json.Unmarshal(b.FamilyMembers, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Tags decodes any of the JSON string-array condition columns.
func Tags(col datatypes.JSON) []string {
	if len(col) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(col, &tags); err != nil {
		return nil
	}
	return tags
}

// TagsJSON encodes a tag set for storage. Encoding a plain []string cannot
// fail, so the error is swallowed.
func TagsJSON(tags []string) datatypes.JSON {
	raw, _ := json.Marshal(tags)
	return datatypes.JSON(raw)
}
