package beneficiary

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

type BeneficiaryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, beneficiaries []*types.Beneficiary) ([]*types.Beneficiary, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Beneficiary, error)
	GetInBarangay(ctx context.Context, tx *gorm.DB, barangayID, id uuid.UUID) (*types.Beneficiary, error)
	ListByBarangay(ctx context.Context, tx *gorm.DB, barangayID uuid.UUID) ([]*types.Beneficiary, error)
	CountByBarangay(ctx context.Context, tx *gorm.DB, barangayID uuid.UUID) (int64, error)
	NameExists(ctx context.Context, tx *gorm.DB, barangayID uuid.UUID, firstName, middleName, lastName string) (bool, error)
	UpdateQRFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, storageKey, imageURL string) error
	UpdateFamilyMembers(ctx context.Context, tx *gorm.DB, id uuid.UUID, members datatypes.JSON) error
	// DeleteByBarangay removes every beneficiary in the barangay and reports
	// how many rows went with it.
	DeleteByBarangay(ctx context.Context, tx *gorm.DB, barangayID uuid.UUID) (int64, error)
}

type beneficiaryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBeneficiaryRepo(db *gorm.DB, baseLog *logger.Logger) BeneficiaryRepo {
	repoLog := baseLog.With("repo", "BeneficiaryRepo")
	return &beneficiaryRepo{db: db, log: repoLog}
}

func (br *beneficiaryRepo) Create(ctx context.Context, tx *gorm.DB, beneficiaries []*types.Beneficiary) ([]*types.Beneficiary, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if len(beneficiaries) == 0 {
		return []*types.Beneficiary{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&beneficiaries).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.ErrDuplicate
		}
		return nil, err
	}
	return beneficiaries, nil
}

func (br *beneficiaryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Beneficiary, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var result types.Beneficiary
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (br *beneficiaryRepo) GetInBarangay(ctx context.Context, tx *gorm.DB, barangayID, id uuid.UUID) (*types.Beneficiary, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var result types.Beneficiary
	if err := transaction.WithContext(ctx).
		Where("barangay_id = ? AND id = ?", barangayID, id).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (br *beneficiaryRepo) ListByBarangay(ctx context.Context, tx *gorm.DB, barangayID uuid.UUID) ([]*types.Beneficiary, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Beneficiary
	if err := transaction.WithContext(ctx).
		Where("barangay_id = ?", barangayID).
		Order("last_name asc, first_name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *beneficiaryRepo) CountByBarangay(ctx context.Context, tx *gorm.DB, barangayID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Beneficiary{}).
		Where("barangay_id = ?", barangayID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NameExists is the pre-insert duplicate check over the exact name triple.
// The composite unique index remains the arbiter under concurrent writers.
func (br *beneficiaryRepo) NameExists(ctx context.Context, tx *gorm.DB, barangayID uuid.UUID, firstName, middleName, lastName string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Beneficiary{}).
		Where("barangay_id = ? AND first_name = ? AND middle_name = ? AND last_name = ?",
			barangayID, firstName, middleName, lastName).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (br *beneficiaryRepo) UpdateQRFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, storageKey, imageURL string) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Beneficiary{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"qr_storage_key": storageKey,
			"qr_image_url":   imageURL,
		}).Error
}

func (br *beneficiaryRepo) DeleteByBarangay(ctx context.Context, tx *gorm.DB, barangayID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	res := transaction.WithContext(ctx).
		Where("barangay_id = ?", barangayID).
		Delete(&types.Beneficiary{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (br *beneficiaryRepo) UpdateFamilyMembers(ctx context.Context, tx *gorm.DB, id uuid.UUID, members datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Beneficiary{}).
		Where("id = ?", id).
		Update("family_members", members).Error
}
