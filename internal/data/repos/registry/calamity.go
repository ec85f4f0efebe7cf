package registry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

type CalamityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, calamities []*types.Calamity) ([]*types.Calamity, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Calamity, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Calamity, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Calamity, error)
	NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type calamityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalamityRepo(db *gorm.DB, baseLog *logger.Logger) CalamityRepo {
	repoLog := baseLog.With("repo", "CalamityRepo")
	return &calamityRepo{db: db, log: repoLog}
}

func (cr *calamityRepo) Create(ctx context.Context, tx *gorm.DB, calamities []*types.Calamity) ([]*types.Calamity, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(calamities) == 0 {
		return []*types.Calamity{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&calamities).Error; err != nil {
		return nil, err
	}
	return calamities, nil
}

func (cr *calamityRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Calamity, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Calamity
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

func (cr *calamityRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Calamity, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Calamity
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

func (cr *calamityRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Calamity, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Calamity
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *calamityRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Calamity{}).
		Where("name = ?", types.NormalizeName(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *calamityRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Calamity{}).Error
}
