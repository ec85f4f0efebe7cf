package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bayanihan-ph/relief-backend/internal/data/repos/testutil"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
)

func newRegistryFixture(t *testing.T) (RegistryService, *fakeBarangayRepo, *fakeCalamityRepo, *fakeBeneficiaryRepo, *fakeQualificationRepo) {
	t.Helper()
	barangays := newFakeBarangayRepo()
	calamities := newFakeCalamityRepo()
	beneficiaries := newFakeBeneficiaryRepo()
	records := newFakeQualificationRepo()
	svc := NewRegistryService(nil, testutil.Logger(t), barangays, calamities, beneficiaries, records, &fakeEventRepo{})
	return svc, barangays, calamities, beneficiaries, records
}

func TestCreateBarangayNormalizesAndDeduplicates(t *testing.T) {
	svc, _, _, _, _ := newRegistryFixture(t)
	ctx := context.Background()

	created, err := svc.CreateBarangay(ctx, "  San   ISIDRO ")
	if err != nil {
		t.Fatalf("CreateBarangay: %v", err)
	}
	if created.Name != "san isidro" {
		t.Fatalf("name must be normalized, got %q", created.Name)
	}

	// Any casing/spacing of the same name is the same barangay.
	if _, err := svc.CreateBarangay(ctx, "SAN ISIDRO"); !errors.Is(err, types.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if _, err := svc.CreateBarangay(ctx, "   "); err == nil {
		t.Fatalf("blank name must be rejected")
	}
}

func TestDeleteBarangayReportsRemovedBeneficiaries(t *testing.T) {
	svc, barangays, _, beneficiaries, _ := newRegistryFixture(t)
	ctx := context.Background()

	brgy := &types.Barangay{ID: uuid.New(), Name: "san isidro"}
	barangays.byID[brgy.ID] = brgy
	for i := 0; i < 3; i++ {
		b := &types.Beneficiary{ID: uuid.New(), BarangayID: brgy.ID, FirstName: "B", LastName: string(rune('A' + i))}
		beneficiaries.byID[b.ID] = b
	}

	removed, err := svc.DeleteBarangay(ctx, brgy.ID)
	if err != nil {
		t.Fatalf("DeleteBarangay: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed beneficiaries, got %d", removed)
	}
	if len(beneficiaries.byID) != 0 {
		t.Fatalf("beneficiaries must be removed with the barangay")
	}
	if _, err := svc.DeleteBarangay(ctx, brgy.ID); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
}

func TestListBarangaysCarriesCounts(t *testing.T) {
	svc, barangays, _, beneficiaries, _ := newRegistryFixture(t)
	ctx := context.Background()

	brgy := &types.Barangay{ID: uuid.New(), Name: "san isidro"}
	barangays.byID[brgy.ID] = brgy
	b := &types.Beneficiary{ID: uuid.New(), BarangayID: brgy.ID, FirstName: "Maria", LastName: "Cruz"}
	beneficiaries.byID[b.ID] = b

	summaries, err := svc.ListBarangays(ctx)
	if err != nil {
		t.Fatalf("ListBarangays: %v", err)
	}
	if len(summaries) != 1 || summaries[0].BeneficiaryCount != 1 {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestQualifyBeneficiary(t *testing.T) {
	svc, barangays, calamities, beneficiaries, records := newRegistryFixture(t)
	ctx := context.Background()

	brgy := &types.Barangay{ID: uuid.New(), Name: "san isidro"}
	barangays.byID[brgy.ID] = brgy
	calamity := &types.Calamity{ID: uuid.New(), Name: "typhoon odette", CalamityType: "Typhoon"}
	calamities.byID[calamity.ID] = calamity
	b := &types.Beneficiary{ID: uuid.New(), BarangayID: brgy.ID, FirstName: "Maria", LastName: "Cruz"}
	beneficiaries.byID[b.ID] = b

	record, err := svc.QualifyBeneficiary(ctx, calamity.ID, b.ID)
	if err != nil {
		t.Fatalf("QualifyBeneficiary: %v", err)
	}
	if !record.IsQualified || record.DateVerified == nil {
		t.Fatalf("record must be qualified with a verification date")
	}
	if record.BrgyName != "san isidro" {
		t.Fatalf("barangay name must be denormalized, got %q", record.BrgyName)
	}

	// Qualifying twice lands on the same record.
	again, err := svc.QualifyBeneficiary(ctx, calamity.ID, b.ID)
	if err != nil {
		t.Fatalf("second qualify: %v", err)
	}
	if again.ID != record.ID {
		t.Fatalf("second qualify must reuse the record")
	}
	if len(records.byID) != 1 {
		t.Fatalf("exactly one record expected, got %d", len(records.byID))
	}

	if _, err := svc.QualifyBeneficiary(ctx, calamity.ID, uuid.New()); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("unknown beneficiary: got %v", err)
	}
	if _, err := svc.QualifyBeneficiary(ctx, uuid.New(), b.ID); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("unknown calamity: got %v", err)
	}
}

func TestCreateCalamityValidation(t *testing.T) {
	svc, _, _, _, _ := newRegistryFixture(t)
	ctx := context.Background()

	created, err := svc.CreateCalamity(ctx, "Typhoon Odette", "Typhoon")
	if err != nil {
		t.Fatalf("CreateCalamity: %v", err)
	}
	if created.Name != "typhoon odette" {
		t.Fatalf("name must be normalized, got %q", created.Name)
	}

	if _, err := svc.CreateCalamity(ctx, "typhoon odette", "Typhoon"); !errors.Is(err, types.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := svc.CreateCalamity(ctx, "Flood 2026", ""); err == nil {
		t.Fatalf("missing calamity type must be rejected")
	}
}
