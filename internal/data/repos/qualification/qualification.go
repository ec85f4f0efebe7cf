package qualification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

// ClaimUpdate carries everything a benefit release writes in one shot.
type ClaimUpdate struct {
	DonationTypes    datatypes.JSON
	Description      string
	Cost             string
	Quantity         int
	ClaimantImageKey string
	ClaimantImageURL string
	HealthSnapshot   string
	HousingSnapshot  string
	CasualtySnapshot string
	DateClaimed      time.Time
}

type QualificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.QualificationRecord) ([]*types.QualificationRecord, error)
	GetByPair(ctx context.Context, tx *gorm.DB, calamityID, beneficiaryID uuid.UUID) (*types.QualificationRecord, error)
	ListByCalamity(ctx context.Context, tx *gorm.DB, calamityID uuid.UUID) ([]*types.QualificationRecord, error)
	MarkQualified(ctx context.Context, tx *gorm.DB, id uuid.UUID, verifiedAt time.Time) error
	// MarkClaimed performs the guarded one-shot claim update. It reports
	// false when the record was already claimed (zero rows touched).
	MarkClaimed(ctx context.Context, tx *gorm.DB, id uuid.UUID, update ClaimUpdate) (bool, error)
}

type qualificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQualificationRepo(db *gorm.DB, baseLog *logger.Logger) QualificationRepo {
	repoLog := baseLog.With("repo", "QualificationRepo")
	return &qualificationRepo{db: db, log: repoLog}
}

func (qr *qualificationRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.QualificationRecord) ([]*types.QualificationRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	if len(records) == 0 {
		return []*types.QualificationRecord{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.ErrDuplicate
		}
		return nil, err
	}
	return records, nil
}

func (qr *qualificationRepo) GetByPair(ctx context.Context, tx *gorm.DB, calamityID, beneficiaryID uuid.UUID) (*types.QualificationRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var result types.QualificationRecord
	if err := transaction.WithContext(ctx).
		Where("calamity_id = ? AND beneficiary_id = ?", calamityID, beneficiaryID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (qr *qualificationRepo) ListByCalamity(ctx context.Context, tx *gorm.DB, calamityID uuid.UUID) ([]*types.QualificationRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*types.QualificationRecord
	if err := transaction.WithContext(ctx).
		Where("calamity_id = ?", calamityID).
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *qualificationRepo) MarkQualified(ctx context.Context, tx *gorm.DB, id uuid.UUID, verifiedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.QualificationRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_qualified":  true,
			"date_verified": verifiedAt,
		}).Error
}

func (qr *qualificationRepo) MarkClaimed(ctx context.Context, tx *gorm.DB, id uuid.UUID, update ClaimUpdate) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	// The is_claimed guard makes the release idempotent at the store: a
	// second submit touches zero rows instead of recording a second event.
	res := transaction.WithContext(ctx).
		Model(&types.QualificationRecord{}).
		Where("id = ? AND is_claimed = ?", id, false).
		Updates(map[string]any{
			"is_claimed":         true,
			"donation_types":     update.DonationTypes,
			"description":        update.Description,
			"cost":               update.Cost,
			"quantity":           update.Quantity,
			"claimant_image_key": update.ClaimantImageKey,
			"claimant_image_url": update.ClaimantImageURL,
			"health_snapshot":    update.HealthSnapshot,
			"housing_snapshot":   update.HousingSnapshot,
			"casualty_snapshot":  update.CasualtySnapshot,
			"date_claimed":       update.DateClaimed,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
