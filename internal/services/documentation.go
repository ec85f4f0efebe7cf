package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bayanihan-ph/relief-backend/internal/clients/gcs"
	documentationrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/documentation"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

type DocumentationService interface {
	CreateFolder(ctx context.Context, name string) (*types.DocumentationFolder, error)
	ListFolders(ctx context.Context) ([]*types.DocumentationFolder, error)
	// DeleteFolder removes the folder row, its media rows and their objects.
	DeleteFolder(ctx context.Context, name string) error

	UploadMedia(ctx context.Context, folderName, fileName, contentType string, size int64, body io.Reader) (*types.MediaFile, error)
	ListMedia(ctx context.Context, folderName string) ([]*types.MediaFile, error)
	DeleteMedia(ctx context.Context, mediaID uuid.UUID) error
}

type documentationService struct {
	db     *gorm.DB
	log    *logger.Logger
	repo   documentationrepo.DocumentationRepo
	bucket gcs.BucketService
}

func NewDocumentationService(db *gorm.DB, log *logger.Logger, repo documentationrepo.DocumentationRepo, bucket gcs.BucketService) DocumentationService {
	serviceLog := log.With("service", "DocumentationService")
	return &documentationService{db: db, log: serviceLog, repo: repo, bucket: bucket}
}

func (ds *documentationService) CreateFolder(ctx context.Context, name string) (*types.DocumentationFolder, error) {
	normalized := types.NormalizeName(name)
	if normalized == "" {
		verr := types.NewValidationError()
		verr.Add("name", "required")
		return nil, verr
	}

	record := &types.DocumentationFolder{ID: uuid.New(), Name: normalized}
	if err := ds.withTx(ctx, func(tx *gorm.DB) error {
		exists, exErr := ds.repo.FolderNameExists(ctx, tx, normalized)
		if exErr != nil {
			return exErr
		}
		if exists {
			return types.ErrDuplicate
		}
		_, cErr := ds.repo.CreateFolder(ctx, tx, []*types.DocumentationFolder{record})
		return cErr
	}); err != nil {
		return nil, err
	}
	return record, nil
}

func (ds *documentationService) ListFolders(ctx context.Context) ([]*types.DocumentationFolder, error) {
	return ds.repo.ListFolders(ctx, nil)
}

func (ds *documentationService) DeleteFolder(ctx context.Context, name string) error {
	folder, err := ds.repo.GetFolderByName(ctx, nil, name)
	if err != nil {
		return err
	}
	media, err := ds.repo.ListMedia(ctx, nil, folder.ID)
	if err != nil {
		return err
	}

	// Objects go first. A bucket miss is logged and skipped so a half-deleted
	// folder can still be cleaned up by retrying.
	for _, m := range media {
		if delErr := ds.bucket.DeleteFile(ctx, m.StorageKey); delErr != nil {
			ds.log.Warn("failed to delete media object", "key", m.StorageKey, "error", delErr)
		}
	}

	return ds.withTx(ctx, func(tx *gorm.DB) error {
		for _, m := range media {
			if delErr := ds.repo.DeleteMedia(ctx, tx, m.ID); delErr != nil {
				return delErr
			}
		}
		return ds.repo.DeleteFolder(ctx, tx, folder.ID)
	})
}

func (ds *documentationService) UploadMedia(ctx context.Context, folderName, fileName, contentType string, size int64, body io.Reader) (*types.MediaFile, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		verr := types.NewValidationError()
		verr.Add("file_name", "required")
		return nil, verr
	}

	folder, err := ds.repo.GetFolderByName(ctx, nil, folderName)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("documentation/%s/media/%s", folder.Name, fileName)
	if err := ds.bucket.UploadFile(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}

	media := &types.MediaFile{
		ID:          uuid.New(),
		FolderID:    folder.ID,
		FileName:    fileName,
		StorageKey:  key,
		FileURL:     ds.bucket.GetPublicURL(key),
		ContentType: contentType,
		SizeBytes:   size,
	}
	if _, err := ds.repo.AddMedia(ctx, nil, media); err != nil {
		// Row insert failed after the object landed; drop the object so the
		// folder and bucket stay in step.
		if delErr := ds.bucket.DeleteFile(ctx, key); delErr != nil {
			ds.log.Warn("failed to roll back orphaned media object", "key", key, "error", delErr)
		}
		return nil, err
	}
	return media, nil
}

func (ds *documentationService) ListMedia(ctx context.Context, folderName string) ([]*types.MediaFile, error) {
	folder, err := ds.repo.GetFolderByName(ctx, nil, folderName)
	if err != nil {
		return nil, err
	}
	return ds.repo.ListMedia(ctx, nil, folder.ID)
}

func (ds *documentationService) DeleteMedia(ctx context.Context, mediaID uuid.UUID) error {
	media, err := ds.repo.GetMedia(ctx, nil, mediaID)
	if err != nil {
		return err
	}
	if err := ds.bucket.DeleteFile(ctx, media.StorageKey); err != nil {
		ds.log.Warn("failed to delete media object", "key", media.StorageKey, "error", err)
	}
	return ds.repo.DeleteMedia(ctx, nil, mediaID)
}

func (ds *documentationService) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if ds.db == nil {
		return fn(nil)
	}
	return ds.db.WithContext(ctx).Transaction(fn)
}
