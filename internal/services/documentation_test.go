package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bayanihan-ph/relief-backend/internal/data/repos/testutil"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
)

type fakeDocumentationRepo struct {
	folders map[uuid.UUID]*types.DocumentationFolder
	media   map[uuid.UUID]*types.MediaFile
}

func newFakeDocumentationRepo() *fakeDocumentationRepo {
	return &fakeDocumentationRepo{
		folders: map[uuid.UUID]*types.DocumentationFolder{},
		media:   map[uuid.UUID]*types.MediaFile{},
	}
}

func (f *fakeDocumentationRepo) CreateFolder(_ context.Context, _ *gorm.DB, folders []*types.DocumentationFolder) ([]*types.DocumentationFolder, error) {
	for _, folder := range folders {
		f.folders[folder.ID] = folder
	}
	return folders, nil
}

func (f *fakeDocumentationRepo) GetFolderByName(_ context.Context, _ *gorm.DB, name string) (*types.DocumentationFolder, error) {
	normalized := types.NormalizeName(name)
	for _, folder := range f.folders {
		if folder.Name == normalized {
			return folder, nil
		}
	}
	return nil, types.ErrNotFound
}

func (f *fakeDocumentationRepo) ListFolders(_ context.Context, _ *gorm.DB) ([]*types.DocumentationFolder, error) {
	out := make([]*types.DocumentationFolder, 0, len(f.folders))
	for _, folder := range f.folders {
		out = append(out, folder)
	}
	return out, nil
}

func (f *fakeDocumentationRepo) FolderNameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	_, err := f.GetFolderByName(ctx, tx, name)
	return err == nil, nil
}

func (f *fakeDocumentationRepo) DeleteFolder(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(f.folders, id)
	return nil
}

func (f *fakeDocumentationRepo) AddMedia(_ context.Context, _ *gorm.DB, media *types.MediaFile) (*types.MediaFile, error) {
	f.media[media.ID] = media
	if folder, ok := f.folders[media.FolderID]; ok {
		folder.MediaCount++
	}
	return media, nil
}

func (f *fakeDocumentationRepo) GetMedia(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.MediaFile, error) {
	if m, ok := f.media[id]; ok {
		return m, nil
	}
	return nil, types.ErrNotFound
}

func (f *fakeDocumentationRepo) ListMedia(_ context.Context, _ *gorm.DB, folderID uuid.UUID) ([]*types.MediaFile, error) {
	var out []*types.MediaFile
	for _, m := range f.media {
		if m.FolderID == folderID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeDocumentationRepo) DeleteMedia(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	m, ok := f.media[id]
	if !ok {
		return types.ErrNotFound
	}
	delete(f.media, id)
	if folder, ok := f.folders[m.FolderID]; ok && folder.MediaCount > 0 {
		folder.MediaCount--
	}
	return nil
}

func newDocumentationFixture(t *testing.T) (DocumentationService, *fakeDocumentationRepo, *fakeBucket) {
	t.Helper()
	repo := newFakeDocumentationRepo()
	bucket := newFakeBucket()
	svc := NewDocumentationService(nil, testutil.Logger(t), repo, bucket)
	return svc, repo, bucket
}

func TestDocumentationFolderLifecycle(t *testing.T) {
	svc, _, _ := newDocumentationFixture(t)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, "  Typhoon ODETTE Ops ")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if folder.Name != "typhoon odette ops" {
		t.Fatalf("name must be normalized, got %q", folder.Name)
	}

	if _, err := svc.CreateFolder(ctx, "TYPHOON odette OPS"); !errors.Is(err, types.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	folders, err := svc.ListFolders(ctx)
	if err != nil || len(folders) != 1 {
		t.Fatalf("ListFolders: %v (%d)", err, len(folders))
	}
}

func TestUploadMediaKeysUnderFolder(t *testing.T) {
	svc, repo, bucket := newDocumentationFixture(t)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, "relief ops")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	media, err := svc.UploadMedia(ctx, "relief ops", "distribution.jpg", "image/jpeg", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}
	if media.StorageKey != "documentation/relief ops/media/distribution.jpg" {
		t.Fatalf("unexpected key %q", media.StorageKey)
	}
	if _, ok := bucket.objects[media.StorageKey]; !ok {
		t.Fatalf("object missing from bucket")
	}
	if repo.folders[folder.ID].MediaCount != 1 {
		t.Fatalf("media count must track uploads, got %d", repo.folders[folder.ID].MediaCount)
	}

	if _, err := svc.UploadMedia(ctx, "no such folder", "a.jpg", "image/jpeg", 1, strings.NewReader("x")); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("unknown folder: got %v", err)
	}
}

func TestDeleteFolderRemovesObjects(t *testing.T) {
	svc, repo, bucket := newDocumentationFixture(t)
	ctx := context.Background()

	if _, err := svc.CreateFolder(ctx, "relief ops"); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	m1, err := svc.UploadMedia(ctx, "relief ops", "a.jpg", "image/jpeg", 1, strings.NewReader("a"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}
	m2, err := svc.UploadMedia(ctx, "relief ops", "b.jpg", "image/jpeg", 1, strings.NewReader("b"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}

	if err := svc.DeleteFolder(ctx, "relief ops"); err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}
	if len(repo.folders) != 0 || len(repo.media) != 0 {
		t.Fatalf("folder and media rows must be gone")
	}
	for _, key := range []string{m1.StorageKey, m2.StorageKey} {
		if _, ok := bucket.objects[key]; ok {
			t.Fatalf("object %q must be deleted with the folder", key)
		}
	}
}

func TestDeleteMediaDecrementsCount(t *testing.T) {
	svc, repo, bucket := newDocumentationFixture(t)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, "relief ops")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	media, err := svc.UploadMedia(ctx, "relief ops", "a.jpg", "image/jpeg", 1, strings.NewReader("a"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}

	if err := svc.DeleteMedia(ctx, media.ID); err != nil {
		t.Fatalf("DeleteMedia: %v", err)
	}
	if repo.folders[folder.ID].MediaCount != 0 {
		t.Fatalf("media count must return to 0, got %d", repo.folders[folder.ID].MediaCount)
	}
	if _, ok := bucket.objects[media.StorageKey]; ok {
		t.Fatalf("object must be deleted")
	}
}
