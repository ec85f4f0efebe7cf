package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bayanihan-ph/relief-backend/internal/clients/gcs"
	"github.com/bayanihan-ph/relief-backend/internal/clients/redis"
	beneficiaryrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/beneficiary"
	eventrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/event"
	qualificationrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/qualification"
	"github.com/bayanihan-ph/relief-backend/internal/data/repos/registry"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
	"github.com/bayanihan-ph/relief-backend/internal/qr"
	"github.com/bayanihan-ph/relief-backend/internal/utils"
)

// DonationTypeMonetary is the benefit type that makes the cost field
// mandatory on release.
const DonationTypeMonetary = "Monetary Donations"

// ReleaseInput is everything the release form submits for one claim.
type ReleaseInput struct {
	DonationTypes []string `json:"donation_types"`
	Description   string   `json:"description"`
	Cost          string   `json:"cost"`
	Quantity      int      `json:"quantity"`
	// ClaimantImage is a base64 data URI captured at the release desk.
	ClaimantImage    string `json:"claimant_image"`
	HealthSnapshot   string `json:"health_snapshot"`
	HousingSnapshot  string `json:"housing_snapshot"`
	CasualtySnapshot string `json:"casualty_snapshot"`
}

// ValidateRelease is the pure gate over the release form. It runs before any
// store or bucket round trip.
func ValidateRelease(in ReleaseInput) error {
	verr := types.NewValidationError()
	if len(in.DonationTypes) == 0 {
		verr.Add("donation_types", "select at least one donation type")
	}
	for _, dt := range in.DonationTypes {
		if dt == DonationTypeMonetary && in.Cost == "" {
			verr.Add("cost", "cost is required for monetary donations")
		}
	}
	if in.ClaimantImage == "" {
		verr.Add("claimant_image", "claimant photo is required")
	}
	if in.HealthSnapshot == "" {
		verr.Add("health_snapshot", "health snapshot is required")
	}
	if in.HousingSnapshot == "" {
		verr.Add("housing_snapshot", "housing snapshot is required")
	}
	if in.CasualtySnapshot == "" {
		verr.Add("casualty_snapshot", "casualty snapshot is required")
	}
	return verr.OrNil()
}

// VerificationResult pairs the resolved beneficiary with the qualification
// record a scan landed on, so the desk can show claim status before releasing.
// QualifiedCalamities lists every calamity the beneficiary qualifies for, not
// just the one being verified against.
type VerificationResult struct {
	Beneficiary         *types.Beneficiary         `json:"beneficiary"`
	Qualification       *types.QualificationRecord `json:"qualification"`
	QualifiedCalamities []string                   `json:"qualified_calamities"`
}

type ReleaseService interface {
	// Verify resolves a scanned QR payload against one calamity.
	Verify(ctx context.Context, calamityID uuid.UUID, rawPayload []byte) (*VerificationResult, error)
	// Release records the one-shot claim for a verified beneficiary.
	Release(ctx context.Context, calamityID, beneficiaryID uuid.UUID, in ReleaseInput) (*types.QualificationRecord, error)
}

type releaseService struct {
	log               *logger.Logger
	barangayRepo      registry.BarangayRepo
	calamityRepo      registry.CalamityRepo
	beneficiaryRepo   beneficiaryrepo.BeneficiaryRepo
	qualificationRepo qualificationrepo.QualificationRepo
	eventRepo         eventrepo.EventRepo
	bucket            gcs.BucketService
	cache             redis.Store
}

func NewReleaseService(
	log *logger.Logger,
	barangayRepo registry.BarangayRepo,
	calamityRepo registry.CalamityRepo,
	beneficiaryRepo beneficiaryrepo.BeneficiaryRepo,
	qualificationRepo qualificationrepo.QualificationRepo,
	eventRepo eventrepo.EventRepo,
	bucket gcs.BucketService,
	cache redis.Store,
) ReleaseService {
	serviceLog := log.With("service", "ReleaseService")
	return &releaseService{
		log:               serviceLog,
		barangayRepo:      barangayRepo,
		calamityRepo:      calamityRepo,
		beneficiaryRepo:   beneficiaryRepo,
		qualificationRepo: qualificationRepo,
		eventRepo:         eventRepo,
		bucket:            bucket,
		cache:             cache,
	}
}

func (rs *releaseService) Verify(ctx context.Context, calamityID uuid.UUID, rawPayload []byte) (*VerificationResult, error) {
	payload, err := qr.Decode(rawPayload)
	if err != nil {
		return nil, err
	}
	beneficiaryID, err := uuid.Parse(payload.ID)
	if err != nil {
		verr := types.NewValidationError()
		verr.Add("id", "not a valid beneficiary id")
		return nil, verr
	}

	brgy, err := rs.barangayRepo.GetByName(ctx, nil, payload.BrgyName)
	if err != nil {
		return nil, fmt.Errorf("resolve barangay %q: %w", payload.BrgyName, err)
	}
	beneficiary, err := rs.beneficiaryRepo.GetInBarangay(ctx, nil, brgy.ID, beneficiaryID)
	if err != nil {
		return nil, err
	}

	qualified, err := rs.qualifiedCalamities(ctx, beneficiary.ID)
	if err != nil {
		return nil, err
	}

	record, err := rs.qualificationRepo.GetByPair(ctx, nil, calamityID, beneficiary.ID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrNotQualified
		}
		return nil, err
	}
	if !record.IsQualified {
		return nil, types.ErrNotQualified
	}

	return &VerificationResult{
		Beneficiary:         beneficiary,
		Qualification:       record,
		QualifiedCalamities: qualified,
	}, nil
}

// qualifiedCalamities walks every known calamity in turn and collects the
// names the beneficiary holds a qualified record for.
func (rs *releaseService) qualifiedCalamities(ctx context.Context, beneficiaryID uuid.UUID) ([]string, error) {
	calamities, err := rs.calamityRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, c := range calamities {
		record, err := rs.qualificationRepo.GetByPair(ctx, nil, c.ID, beneficiaryID)
		if errors.Is(err, types.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if record.IsQualified {
			names = append(names, c.Name)
		}
	}
	return names, nil
}

func (rs *releaseService) Release(ctx context.Context, calamityID, beneficiaryID uuid.UUID, in ReleaseInput) (*types.QualificationRecord, error) {
	if err := ValidateRelease(in); err != nil {
		return nil, err
	}

	record, err := rs.qualificationRepo.GetByPair(ctx, nil, calamityID, beneficiaryID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrNotQualified
		}
		return nil, err
	}
	if !record.IsQualified {
		return nil, types.ErrNotQualified
	}
	if record.IsClaimed {
		return nil, types.ErrAlreadyClaimed
	}

	contentType, photo, err := utils.ParseDataURI(in.ClaimantImage)
	if err != nil {
		verr := types.NewValidationError()
		verr.Add("claimant_image", "claimant photo must be a base64 data URI")
		return nil, verr
	}

	// Upload before the claim flips. If the guarded update then reports the
	// record already claimed, the orphaned photo is overwritten by key on the
	// next attempt rather than leaked under a fresh name.
	key := fmt.Sprintf("claims/%s.png", record.ID)
	if err := rs.bucket.UploadFile(ctx, key, contentType, bytes.NewReader(photo)); err != nil {
		return nil, fmt.Errorf("upload claimant photo: %w", err)
	}

	now := time.Now().UTC()
	claimed, err := rs.qualificationRepo.MarkClaimed(ctx, nil, record.ID, qualificationrepo.ClaimUpdate{
		DonationTypes:    types.TagsJSON(in.DonationTypes),
		Description:      in.Description,
		Cost:             in.Cost,
		Quantity:         in.Quantity,
		ClaimantImageKey: key,
		ClaimantImageURL: rs.bucket.GetPublicURL(key),
		HealthSnapshot:   in.HealthSnapshot,
		HousingSnapshot:  in.HousingSnapshot,
		CasualtySnapshot: in.CasualtySnapshot,
		DateClaimed:      now,
	})
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, types.ErrAlreadyClaimed
	}

	if rs.cache != nil {
		if err := rs.cache.Delete(ctx, rosterCacheKey(calamityID)); err != nil {
			rs.log.Warn("failed to drop roster cache after release", "calamity_id", calamityID, "error", err)
		}
	}

	if err := rs.eventRepo.Append(ctx, nil,
		fmt.Sprintf("Released benefit to beneficiary %s for calamity %s", beneficiaryID, calamityID),
		now); err != nil {
		rs.log.Warn("failed to append release event", "error", err)
	}

	updated, err := rs.qualificationRepo.GetByPair(ctx, nil, calamityID, beneficiaryID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
