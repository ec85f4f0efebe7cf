package services

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	qualificationrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/qualification"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
)

// The fakes below satisfy the repo and client interfaces with in-memory maps
// so service behavior can be tested without Postgres, Redis or a bucket.

type fakeBarangayRepo struct {
	byID map[uuid.UUID]*types.Barangay
}

func newFakeBarangayRepo() *fakeBarangayRepo {
	return &fakeBarangayRepo{byID: map[uuid.UUID]*types.Barangay{}}
}

func (f *fakeBarangayRepo) Create(_ context.Context, _ *gorm.DB, barangays []*types.Barangay) ([]*types.Barangay, error) {
	for _, b := range barangays {
		f.byID[b.ID] = b
	}
	return barangays, nil
}

func (f *fakeBarangayRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Barangay, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, types.ErrNotFound
}

func (f *fakeBarangayRepo) GetByName(_ context.Context, _ *gorm.DB, name string) (*types.Barangay, error) {
	normalized := types.NormalizeName(name)
	for _, b := range f.byID {
		if b.Name == normalized {
			return b, nil
		}
	}
	return nil, types.ErrNotFound
}

func (f *fakeBarangayRepo) List(_ context.Context, _ *gorm.DB) ([]*types.Barangay, error) {
	out := make([]*types.Barangay, 0, len(f.byID))
	for _, b := range f.byID {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBarangayRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	_, err := f.GetByName(ctx, tx, name)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *fakeBarangayRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

type fakeCalamityRepo struct {
	byID map[uuid.UUID]*types.Calamity
}

func newFakeCalamityRepo() *fakeCalamityRepo {
	return &fakeCalamityRepo{byID: map[uuid.UUID]*types.Calamity{}}
}

func (f *fakeCalamityRepo) Create(_ context.Context, _ *gorm.DB, calamities []*types.Calamity) ([]*types.Calamity, error) {
	for _, c := range calamities {
		f.byID[c.ID] = c
	}
	return calamities, nil
}

func (f *fakeCalamityRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Calamity, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, types.ErrNotFound
}

func (f *fakeCalamityRepo) GetByName(_ context.Context, _ *gorm.DB, name string) (*types.Calamity, error) {
	normalized := types.NormalizeName(name)
	for _, c := range f.byID {
		if c.Name == normalized {
			return c, nil
		}
	}
	return nil, types.ErrNotFound
}

func (f *fakeCalamityRepo) List(_ context.Context, _ *gorm.DB) ([]*types.Calamity, error) {
	out := make([]*types.Calamity, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCalamityRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	_, err := f.GetByName(ctx, tx, name)
	return err == nil, nil
}

func (f *fakeCalamityRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

type fakeBeneficiaryRepo struct {
	byID map[uuid.UUID]*types.Beneficiary
}

func newFakeBeneficiaryRepo() *fakeBeneficiaryRepo {
	return &fakeBeneficiaryRepo{byID: map[uuid.UUID]*types.Beneficiary{}}
}

func (f *fakeBeneficiaryRepo) Create(_ context.Context, _ *gorm.DB, beneficiaries []*types.Beneficiary) ([]*types.Beneficiary, error) {
	for _, b := range beneficiaries {
		f.byID[b.ID] = b
	}
	return beneficiaries, nil
}

func (f *fakeBeneficiaryRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Beneficiary, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, types.ErrNotFound
}

func (f *fakeBeneficiaryRepo) GetInBarangay(_ context.Context, _ *gorm.DB, barangayID, id uuid.UUID) (*types.Beneficiary, error) {
	if b, ok := f.byID[id]; ok && b.BarangayID == barangayID {
		return b, nil
	}
	return nil, types.ErrNotFound
}

func (f *fakeBeneficiaryRepo) ListByBarangay(_ context.Context, _ *gorm.DB, barangayID uuid.UUID) ([]*types.Beneficiary, error) {
	var out []*types.Beneficiary
	for _, b := range f.byID {
		if b.BarangayID == barangayID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBeneficiaryRepo) CountByBarangay(ctx context.Context, tx *gorm.DB, barangayID uuid.UUID) (int64, error) {
	rows, _ := f.ListByBarangay(ctx, tx, barangayID)
	return int64(len(rows)), nil
}

func (f *fakeBeneficiaryRepo) NameExists(_ context.Context, _ *gorm.DB, barangayID uuid.UUID, firstName, middleName, lastName string) (bool, error) {
	for _, b := range f.byID {
		if b.BarangayID == barangayID && b.FirstName == firstName &&
			b.MiddleName == middleName && b.LastName == lastName {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBeneficiaryRepo) UpdateQRFields(_ context.Context, _ *gorm.DB, id uuid.UUID, storageKey, imageURL string) error {
	b, ok := f.byID[id]
	if !ok {
		return types.ErrNotFound
	}
	b.QRStorageKey = storageKey
	b.QRImageURL = imageURL
	return nil
}

func (f *fakeBeneficiaryRepo) UpdateFamilyMembers(_ context.Context, _ *gorm.DB, id uuid.UUID, members datatypes.JSON) error {
	b, ok := f.byID[id]
	if !ok {
		return types.ErrNotFound
	}
	b.FamilyMembers = members
	return nil
}

func (f *fakeBeneficiaryRepo) DeleteByBarangay(_ context.Context, _ *gorm.DB, barangayID uuid.UUID) (int64, error) {
	var removed int64
	for id, b := range f.byID {
		if b.BarangayID == barangayID {
			delete(f.byID, id)
			removed++
		}
	}
	return removed, nil
}

type fakeQualificationRepo struct {
	byID map[uuid.UUID]*types.QualificationRecord
}

func newFakeQualificationRepo() *fakeQualificationRepo {
	return &fakeQualificationRepo{byID: map[uuid.UUID]*types.QualificationRecord{}}
}

func (f *fakeQualificationRepo) Create(_ context.Context, _ *gorm.DB, records []*types.QualificationRecord) ([]*types.QualificationRecord, error) {
	for _, r := range records {
		f.byID[r.ID] = r
	}
	return records, nil
}

func (f *fakeQualificationRepo) GetByPair(_ context.Context, _ *gorm.DB, calamityID, beneficiaryID uuid.UUID) (*types.QualificationRecord, error) {
	for _, r := range f.byID {
		if r.CalamityID == calamityID && r.BeneficiaryID == beneficiaryID {
			return r, nil
		}
	}
	return nil, types.ErrNotFound
}

func (f *fakeQualificationRepo) ListByCalamity(_ context.Context, _ *gorm.DB, calamityID uuid.UUID) ([]*types.QualificationRecord, error) {
	var out []*types.QualificationRecord
	for _, r := range f.byID {
		if r.CalamityID == calamityID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeQualificationRepo) MarkQualified(_ context.Context, _ *gorm.DB, id uuid.UUID, verifiedAt time.Time) error {
	r, ok := f.byID[id]
	if !ok {
		return types.ErrNotFound
	}
	r.IsQualified = true
	r.DateVerified = &verifiedAt
	return nil
}

func (f *fakeQualificationRepo) MarkClaimed(_ context.Context, _ *gorm.DB, id uuid.UUID, update qualificationrepo.ClaimUpdate) (bool, error) {
	r, ok := f.byID[id]
	if !ok || r.IsClaimed {
		return false, nil
	}
	r.IsClaimed = true
	r.DonationTypes = update.DonationTypes
	r.Description = update.Description
	r.Cost = update.Cost
	r.Quantity = update.Quantity
	r.ClaimantImageKey = update.ClaimantImageKey
	r.ClaimantImageURL = update.ClaimantImageURL
	r.HealthSnapshot = update.HealthSnapshot
	r.HousingSnapshot = update.HousingSnapshot
	r.CasualtySnapshot = update.CasualtySnapshot
	claimedAt := update.DateClaimed
	r.DateClaimed = &claimedAt
	return true, nil
}

type fakeEventRepo struct {
	events []string
}

func (f *fakeEventRepo) Append(_ context.Context, _ *gorm.DB, event string, _ time.Time) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventRepo) ListByDay(_ context.Context, _ *gorm.DB, _ string) ([]*types.EventLog, error) {
	return nil, nil
}

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}}
}

func (f *fakeBucket) UploadFile(_ context.Context, key, _ string, body io.Reader) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = raw
	return nil
}

func (f *fakeBucket) DeleteFile(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeBucket) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

type fakeStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string][]byte{}}
}

func (f *fakeStore) PutJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = raw
	return nil
}

func (f *fakeStore) GetJSON(_ context.Context, key string, out any) error {
	f.mu.Lock()
	raw, ok := f.values[key]
	f.mu.Unlock()
	if !ok {
		return types.ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

func (f *fakeStore) Close() error { return nil }
