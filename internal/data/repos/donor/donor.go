package donor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

type DonorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, donors []*types.Donor) ([]*types.Donor, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Donor, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Donor, error)
	Exists(ctx context.Context, tx *gorm.DB, email, firstName, lastName string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, donor *types.Donor) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type donorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDonorRepo(db *gorm.DB, baseLog *logger.Logger) DonorRepo {
	repoLog := baseLog.With("repo", "DonorRepo")
	return &donorRepo{db: db, log: repoLog}
}

func (dr *donorRepo) Create(ctx context.Context, tx *gorm.DB, donors []*types.Donor) ([]*types.Donor, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if len(donors) == 0 {
		return []*types.Donor{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&donors).Error; err != nil {
		return nil, err
	}
	return donors, nil
}

func (dr *donorRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Donor, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var result types.Donor
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

func (dr *donorRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Donor, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.Donor
	if err := transaction.WithContext(ctx).
		Order("last_name asc, first_name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Exists mirrors the original system's informal donor uniqueness: a pre-check
// over (email, first, last) with no backing constraint.
func (dr *donorRepo) Exists(ctx context.Context, tx *gorm.DB, email, firstName, lastName string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Donor{}).
		Where("email = ? AND first_name = ? AND last_name = ?", email, firstName, lastName).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (dr *donorRepo) Update(ctx context.Context, tx *gorm.DB, donor *types.Donor) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).Save(donor).Error
}

func (dr *donorRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Donor{}).Error
}
