package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	beneficiaryrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/beneficiary"
	eventrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/event"
	qualificationrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/qualification"
	"github.com/bayanihan-ph/relief-backend/internal/data/repos/registry"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

// BarangaySummary pairs a barangay with its beneficiary head count for the
// dashboard cards.
type BarangaySummary struct {
	Barangay         *types.Barangay `json:"barangay"`
	BeneficiaryCount int64           `json:"beneficiary_count"`
}

type RegistryService interface {
	CreateBarangay(ctx context.Context, name string) (*types.Barangay, error)
	ListBarangays(ctx context.Context) ([]*BarangaySummary, error)
	GetBarangayByName(ctx context.Context, name string) (*types.Barangay, error)
	// DeleteBarangay removes the barangay and everything registered under it,
	// reporting how many beneficiary records went with it.
	DeleteBarangay(ctx context.Context, id uuid.UUID) (int64, error)

	CreateCalamity(ctx context.Context, name, calamityType string) (*types.Calamity, error)
	ListCalamities(ctx context.Context) ([]*types.Calamity, error)
	DeleteCalamity(ctx context.Context, id uuid.UUID) error

	// QualifyBeneficiary marks a beneficiary as qualified for a calamity,
	// creating the qualification record if the pair has none yet.
	QualifyBeneficiary(ctx context.Context, calamityID, beneficiaryID uuid.UUID) (*types.QualificationRecord, error)
}

type registryService struct {
	db                *gorm.DB
	log               *logger.Logger
	barangayRepo      registry.BarangayRepo
	calamityRepo      registry.CalamityRepo
	beneficiaryRepo   beneficiaryrepo.BeneficiaryRepo
	qualificationRepo qualificationrepo.QualificationRepo
	eventRepo         eventrepo.EventRepo
}

func NewRegistryService(
	db *gorm.DB,
	log *logger.Logger,
	barangayRepo registry.BarangayRepo,
	calamityRepo registry.CalamityRepo,
	beneficiaryRepo beneficiaryrepo.BeneficiaryRepo,
	qualificationRepo qualificationrepo.QualificationRepo,
	eventRepo eventrepo.EventRepo,
) RegistryService {
	serviceLog := log.With("service", "RegistryService")
	return &registryService{
		db:                db,
		log:               serviceLog,
		barangayRepo:      barangayRepo,
		calamityRepo:      calamityRepo,
		beneficiaryRepo:   beneficiaryRepo,
		qualificationRepo: qualificationRepo,
		eventRepo:         eventRepo,
	}
}

func (rs *registryService) CreateBarangay(ctx context.Context, name string) (*types.Barangay, error) {
	normalized := types.NormalizeName(name)
	if normalized == "" {
		verr := types.NewValidationError()
		verr.Add("name", "required")
		return nil, verr
	}

	record := &types.Barangay{ID: uuid.New(), Name: normalized}
	if err := rs.withTx(ctx, func(tx *gorm.DB) error {
		exists, exErr := rs.barangayRepo.NameExists(ctx, tx, normalized)
		if exErr != nil {
			return exErr
		}
		if exists {
			return types.ErrDuplicate
		}
		_, cErr := rs.barangayRepo.Create(ctx, tx, []*types.Barangay{record})
		return cErr
	}); err != nil {
		return nil, err
	}

	rs.appendEvent(ctx, fmt.Sprintf("Added barangay %s", normalized))
	return record, nil
}

func (rs *registryService) ListBarangays(ctx context.Context) ([]*BarangaySummary, error) {
	barangays, err := rs.barangayRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	summaries := make([]*BarangaySummary, 0, len(barangays))
	for _, b := range barangays {
		count, cErr := rs.beneficiaryRepo.CountByBarangay(ctx, nil, b.ID)
		if cErr != nil {
			return nil, cErr
		}
		summaries = append(summaries, &BarangaySummary{Barangay: b, BeneficiaryCount: count})
	}
	return summaries, nil
}

func (rs *registryService) GetBarangayByName(ctx context.Context, name string) (*types.Barangay, error) {
	return rs.barangayRepo.GetByName(ctx, nil, name)
}

func (rs *registryService) DeleteBarangay(ctx context.Context, id uuid.UUID) (int64, error) {
	brgy, err := rs.barangayRepo.GetByID(ctx, nil, id)
	if err != nil {
		return 0, err
	}

	var removed int64
	if err := rs.withTx(ctx, func(tx *gorm.DB) error {
		var delErr error
		removed, delErr = rs.beneficiaryRepo.DeleteByBarangay(ctx, tx, id)
		if delErr != nil {
			return delErr
		}
		return rs.barangayRepo.Delete(ctx, tx, id)
	}); err != nil {
		return 0, err
	}

	rs.appendEvent(ctx, fmt.Sprintf("Deleted barangay %s and %d beneficiary records", brgy.Name, removed))
	return removed, nil
}

func (rs *registryService) CreateCalamity(ctx context.Context, name, calamityType string) (*types.Calamity, error) {
	normalized := types.NormalizeName(name)
	verr := types.NewValidationError()
	if normalized == "" {
		verr.Add("name", "required")
	}
	if strings.TrimSpace(calamityType) == "" {
		verr.Add("calamity_type", "required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	record := &types.Calamity{ID: uuid.New(), Name: normalized, CalamityType: calamityType}
	if err := rs.withTx(ctx, func(tx *gorm.DB) error {
		exists, exErr := rs.calamityRepo.NameExists(ctx, tx, normalized)
		if exErr != nil {
			return exErr
		}
		if exists {
			return types.ErrDuplicate
		}
		_, cErr := rs.calamityRepo.Create(ctx, tx, []*types.Calamity{record})
		return cErr
	}); err != nil {
		return nil, err
	}

	rs.appendEvent(ctx, fmt.Sprintf("Added calamity %s (%s)", normalized, calamityType))
	return record, nil
}

func (rs *registryService) ListCalamities(ctx context.Context) ([]*types.Calamity, error) {
	return rs.calamityRepo.List(ctx, nil)
}

func (rs *registryService) DeleteCalamity(ctx context.Context, id uuid.UUID) error {
	calamity, err := rs.calamityRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if err := rs.calamityRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	rs.appendEvent(ctx, fmt.Sprintf("Deleted calamity %s", calamity.Name))
	return nil
}

func (rs *registryService) QualifyBeneficiary(ctx context.Context, calamityID, beneficiaryID uuid.UUID) (*types.QualificationRecord, error) {
	beneficiary, err := rs.beneficiaryRepo.GetByID(ctx, nil, beneficiaryID)
	if err != nil {
		return nil, err
	}
	if _, err := rs.calamityRepo.GetByID(ctx, nil, calamityID); err != nil {
		return nil, err
	}
	brgy, err := rs.barangayRepo.GetByID(ctx, nil, beneficiary.BarangayID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	existing, err := rs.qualificationRepo.GetByPair(ctx, nil, calamityID, beneficiaryID)
	switch {
	case err == nil:
		if !existing.IsQualified {
			if mErr := rs.qualificationRepo.MarkQualified(ctx, nil, existing.ID, now); mErr != nil {
				return nil, mErr
			}
			existing.IsQualified = true
			existing.DateVerified = &now
		}
		return existing, nil
	case errors.Is(err, types.ErrNotFound):
		record := &types.QualificationRecord{
			ID:            uuid.New(),
			CalamityID:    calamityID,
			BeneficiaryID: beneficiaryID,
			BrgyName:      brgy.Name,
			IsQualified:   true,
			DateVerified:  &now,
		}
		if _, cErr := rs.qualificationRepo.Create(ctx, nil, []*types.QualificationRecord{record}); cErr != nil {
			return nil, cErr
		}
		rs.appendEvent(ctx, fmt.Sprintf("Qualified beneficiary %s %s for calamity relief",
			beneficiary.FirstName, beneficiary.LastName))
		return record, nil
	default:
		return nil, err
	}
}

func (rs *registryService) appendEvent(ctx context.Context, event string) {
	if err := rs.eventRepo.Append(ctx, nil, event, time.Now().UTC()); err != nil {
		rs.log.Warn("failed to append registry event", "event", event, "error", err)
	}
}

func (rs *registryService) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if rs.db == nil {
		return fn(nil)
	}
	return rs.db.WithContext(ctx).Transaction(fn)
}
