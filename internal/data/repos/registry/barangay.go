package registry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

type BarangayRepo interface {
	Create(ctx context.Context, tx *gorm.DB, barangays []*types.Barangay) ([]*types.Barangay, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Barangay, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Barangay, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Barangay, error)
	NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type barangayRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBarangayRepo(db *gorm.DB, baseLog *logger.Logger) BarangayRepo {
	repoLog := baseLog.With("repo", "BarangayRepo")
	return &barangayRepo{db: db, log: repoLog}
}

func (br *barangayRepo) Create(ctx context.Context, tx *gorm.DB, barangays []*types.Barangay) ([]*types.Barangay, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if len(barangays) == 0 {
		return []*types.Barangay{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&barangays).Error; err != nil {
		return nil, err
	}
	return barangays, nil
}

func (br *barangayRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Barangay, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var result types.Barangay
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

func (br *barangayRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Barangay, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var result types.Barangay
	if err := transaction.WithContext(ctx).
		Where("name = ?", types.NormalizeName(name)).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (br *barangayRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Barangay, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Barangay
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *barangayRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Barangay{}).
		Where("name = ?", types.NormalizeName(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (br *barangayRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Barangay{}).Error
}
