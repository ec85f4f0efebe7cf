package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
)

func SeedBarangay(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Barangay {
	tb.Helper()
	b := &types.Barangay{
		ID:   uuid.New(),
		Name: types.NormalizeName(name),
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed barangay: %v", err)
	}
	return b
}

func SeedCalamity(tb testing.TB, ctx context.Context, tx *gorm.DB, name, calamityType string) *types.Calamity {
	tb.Helper()
	c := &types.Calamity{
		ID:           uuid.New(),
		Name:         types.NormalizeName(name),
		CalamityType: calamityType,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed calamity: %v", err)
	}
	return c
}

func SeedBeneficiary(tb testing.TB, ctx context.Context, tx *gorm.DB, barangayID uuid.UUID, first, middle, last string) *types.Beneficiary {
	tb.Helper()
	b := &types.Beneficiary{
		ID:                uuid.New(),
		BarangayID:        barangayID,
		FirstName:         first,
		MiddleName:        middle,
		LastName:          last,
		Mobile:            "09171234567",
		Age:               34,
		Gender:            "Female",
		CivilStatus:       "Married",
		HousingConditions: types.TagsJSON([]string{"Partially Damaged"}),
		HealthConditions:  types.TagsJSON([]string{"None"}),
		Casualties:        types.TagsJSON([]string{"None"}),
		OwnershipTypes:    types.TagsJSON([]string{"Owned"}),
		CodeFlags:         types.TagsJSON([]string{"None"}),
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed beneficiary: %v", err)
	}
	return b
}

func SeedQualification(tb testing.TB, ctx context.Context, tx *gorm.DB, calamityID, beneficiaryID uuid.UUID, brgyName string, qualified bool) *types.QualificationRecord {
	tb.Helper()
	now := time.Now().UTC()
	q := &types.QualificationRecord{
		ID:            uuid.New(),
		CalamityID:    calamityID,
		BeneficiaryID: beneficiaryID,
		BrgyName:      brgyName,
		IsQualified:   qualified,
	}
	if qualified {
		q.DateVerified = &now
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed qualification: %v", err)
	}
	return q
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedFolder(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.DocumentationFolder {
	tb.Helper()
	f := &types.DocumentationFolder{
		ID:   uuid.New(),
		Name: types.NormalizeName(name),
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed folder: %v", err)
	}
	return f
}
