package documentationrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

type DocumentationRepo interface {
	CreateFolder(ctx context.Context, tx *gorm.DB, folders []*types.DocumentationFolder) ([]*types.DocumentationFolder, error)
	GetFolderByName(ctx context.Context, tx *gorm.DB, name string) (*types.DocumentationFolder, error)
	ListFolders(ctx context.Context, tx *gorm.DB) ([]*types.DocumentationFolder, error)
	FolderNameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
	DeleteFolder(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	AddMedia(ctx context.Context, tx *gorm.DB, media *types.MediaFile) (*types.MediaFile, error)
	GetMedia(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MediaFile, error)
	ListMedia(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) ([]*types.MediaFile, error)
	DeleteMedia(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type documentationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentationRepo(db *gorm.DB, baseLog *logger.Logger) DocumentationRepo {
	repoLog := baseLog.With("repo", "DocumentationRepo")
	return &documentationRepo{db: db, log: repoLog}
}

func (dr *documentationRepo) CreateFolder(ctx context.Context, tx *gorm.DB, folders []*types.DocumentationFolder) ([]*types.DocumentationFolder, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if len(folders) == 0 {
		return []*types.DocumentationFolder{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

func (dr *documentationRepo) GetFolderByName(ctx context.Context, tx *gorm.DB, name string) (*types.DocumentationFolder, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var result types.DocumentationFolder
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

func (dr *documentationRepo) ListFolders(ctx context.Context, tx *gorm.DB) ([]*types.DocumentationFolder, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.DocumentationFolder
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *documentationRepo) FolderNameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.DocumentationFolder{}).
		Where("name = ?", types.NormalizeName(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (dr *documentationRepo) DeleteFolder(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.DocumentationFolder{}).Error
}

// AddMedia inserts the row and bumps the folder's media_count in one place so
// the counter never drifts from the rows.
func (dr *documentationRepo) AddMedia(ctx context.Context, tx *gorm.DB, media *types.MediaFile) (*types.MediaFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if err := transaction.WithContext(ctx).Create(media).Error; err != nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).
		Model(&types.DocumentationFolder{}).
		Where("id = ?", media.FolderID).
		Update("media_count", gorm.Expr("media_count + 1")).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (dr *documentationRepo) GetMedia(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MediaFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var result types.MediaFile
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

func (dr *documentationRepo) ListMedia(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) ([]*types.MediaFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.MediaFile
	if err := transaction.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *documentationRepo) DeleteMedia(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	media, err := dr.GetMedia(ctx, transaction, id)
	if err != nil {
		return err
	}
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MediaFile{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Model(&types.DocumentationFolder{}).
		Where("id = ? AND media_count > 0", media.FolderID).
		Update("media_count", gorm.Expr("media_count - 1")).Error
}
