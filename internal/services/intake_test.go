package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/bayanihan-ph/relief-backend/internal/data/repos/testutil"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/intake"
	"github.com/bayanihan-ph/relief-backend/internal/qr"
)

type intakeFixture struct {
	svc           IntakeService
	barangays     *fakeBarangayRepo
	beneficiaries *fakeBeneficiaryRepo
	events        *fakeEventRepo
	bucket        *fakeBucket
	sessions      *fakeStore
	brgy          *types.Barangay
}

func newIntakeFixture(t *testing.T) *intakeFixture {
	t.Helper()
	log := testutil.Logger(t)

	barangays := newFakeBarangayRepo()
	beneficiaries := newFakeBeneficiaryRepo()
	events := &fakeEventRepo{}
	bucket := newFakeBucket()
	sessions := newFakeStore()

	brgy := &types.Barangay{ID: uuid.New(), Name: "san isidro"}
	barangays.byID[brgy.ID] = brgy

	renderer, err := qr.NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	svc := NewIntakeService(nil, log, sessions, barangays, beneficiaries, events, bucket, renderer)
	return &intakeFixture{
		svc:           svc,
		barangays:     barangays,
		beneficiaries: beneficiaries,
		events:        events,
		bucket:        bucket,
		sessions:      sessions,
		brgy:          brgy,
	}
}

func completeDraft() intake.Draft {
	return intake.Draft{
		Identity: intake.Identity{
			FirstName:   "Maria",
			LastName:    "Cruz",
			Mobile:      "09171234567",
			Age:         41,
			Gender:      "Female",
			CivilStatus: "Married",
		},
		Address: intake.Address{
			Region:      "Caraga",
			Province:    "Surigao del Norte",
			City:        "Surigao City",
			BrgyName:    "san isidro",
			HouseNumber: "12",
		},
		Conditions: intake.Conditions{
			FourPs:    "yes",
			Housing:   []string{"Totally Damaged"},
			Health:    []string{intake.NoneTag},
			Casualty:  []string{intake.NoneTag},
			Ownership: []string{"Owned"},
			Codes:     []string{"Senior Citizen"},
		},
		Family: []intake.Row{
			{Name: "Jose Cruz", Relation: "Son", Age: 15, Gender: "Male", CivilStatus: "Single"},
		},
	}
}

func runWizard(t *testing.T, fx *intakeFixture, draft intake.Draft) (string, *types.Beneficiary, error) {
	t.Helper()
	ctx := context.Background()

	sessionID, _, err := fx.svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := fx.svc.SaveDraft(ctx, sessionID, draft); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if _, err := fx.svc.Advance(ctx, sessionID); err != nil {
		t.Fatalf("advance past identity: %v", err)
	}
	if _, err := fx.svc.Advance(ctx, sessionID); err != nil {
		t.Fatalf("advance past conditions: %v", err)
	}
	created, _, err := fx.svc.Submit(ctx, sessionID, false)
	return sessionID, created, err
}

func TestIntakeWizardCommitsBeneficiary(t *testing.T) {
	fx := newIntakeFixture(t)
	ctx := context.Background()

	sessionID, created, err := runWizard(t, fx, completeDraft())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if created.BarangayID != fx.brgy.ID {
		t.Fatalf("beneficiary landed in wrong barangay")
	}
	if created.BrgyAddress != "san isidro" {
		t.Fatalf("brgy address not denormalized: %q", created.BrgyAddress)
	}
	if !created.FourPs {
		t.Fatalf("four ps flag lost")
	}

	members, err := created.FamilyMemberList()
	if err != nil {
		t.Fatalf("FamilyMemberList: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Jose Cruz" {
		t.Fatalf("family roster lost: %v", members)
	}

	if created.QRStorageKey == "" || created.QRImageURL == "" {
		t.Fatalf("QR card must be attached on commit")
	}
	if !strings.HasPrefix(created.QRStorageKey, "barangay/san isidro/recipients/") {
		t.Fatalf("unexpected QR key %q", created.QRStorageKey)
	}
	if _, ok := fx.bucket.objects[created.QRStorageKey]; !ok {
		t.Fatalf("QR card missing from bucket")
	}

	// The session is dropped once committed.
	if _, err := fx.svc.GetSession(ctx, sessionID); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("completed session must be gone, got %v", err)
	}

	if len(fx.events.events) == 0 {
		t.Fatalf("commit must append an activity event")
	}
}

func TestIntakeRejectsDuplicateName(t *testing.T) {
	fx := newIntakeFixture(t)

	if _, _, err := runWizard(t, fx, completeDraft()); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	_, _, err := runWizard(t, fx, completeDraft())
	if !errors.Is(err, types.ErrDuplicate) {
		t.Fatalf("duplicate name triple must be rejected, got %v", err)
	}
}

func TestIntakeDuplicateParksSessionOnFamilyStep(t *testing.T) {
	fx := newIntakeFixture(t)
	ctx := context.Background()

	if _, _, err := runWizard(t, fx, completeDraft()); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	sessionID, _, err := runWizard(t, fx, completeDraft())
	if !errors.Is(err, types.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	m, err := fx.svc.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("session must survive a failed commit: %v", err)
	}
	if m.Step != intake.StepFamily {
		t.Fatalf("failed commit must park on the family step, at %s", m.Step)
	}
	if m.Draft.Identity.FirstName != "Maria" {
		t.Fatalf("draft must survive a failed commit")
	}
}

func TestIntakeLivingAloneNeedsConfirmation(t *testing.T) {
	fx := newIntakeFixture(t)
	ctx := context.Background()

	draft := completeDraft()
	draft.Family = nil

	sessionID, _, err := runWizard(t, fx, draft)
	if !errors.Is(err, intake.ErrConfirmationRequired) {
		t.Fatalf("empty family must ask for confirmation, got %v", err)
	}

	created, _, err := fx.svc.Submit(ctx, sessionID, true)
	if err != nil {
		t.Fatalf("confirmed submit: %v", err)
	}
	members, err := created.FamilyMemberList()
	if err != nil {
		t.Fatalf("FamilyMemberList: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("living-alone commit must have no family members")
	}
}

func TestIntakeReissueQR(t *testing.T) {
	fx := newIntakeFixture(t)
	ctx := context.Background()

	_, created, err := runWizard(t, fx, completeDraft())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	delete(fx.bucket.objects, created.QRStorageKey)

	reissued, err := fx.svc.ReissueQR(ctx, created.ID)
	if err != nil {
		t.Fatalf("ReissueQR: %v", err)
	}
	if _, ok := fx.bucket.objects[reissued.QRStorageKey]; !ok {
		t.Fatalf("reissue must restore the QR object")
	}
}

func TestIntakeAdvanceBlocksInvalidIdentity(t *testing.T) {
	fx := newIntakeFixture(t)
	ctx := context.Background()

	draft := completeDraft()
	draft.Identity.Mobile = "123"

	sessionID, _, err := fx.svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := fx.svc.SaveDraft(ctx, sessionID, draft); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	m, err := fx.svc.Advance(ctx, sessionID)
	if err == nil {
		t.Fatalf("invalid mobile must block advancement")
	}
	if m.Step != intake.StepIdentity {
		t.Fatalf("step must not move, at %s", m.Step)
	}
}
