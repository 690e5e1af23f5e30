package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"photovault/internal/apperr"
	"photovault/internal/blob"
	"photovault/internal/events"
	"photovault/internal/models"
	"photovault/internal/repository"
	"photovault/internal/uploader"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return apperr.ErrConflict
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id string) error {
	return nil
}

type fakePhotoRepo struct {
	mu     sync.Mutex
	photos map[string]*models.Photo
	order  []string
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: map[string]*models.Photo{}}
}

func (f *fakePhotoRepo) Insert(_ context.Context, p *models.Photo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.photos[p.ID] = &cp
	f.order = append(f.order, p.ID)
	return nil
}

func (f *fakePhotoRepo) GetByID(_ context.Context, id string) (*models.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.photos[id]
	if !ok || p.Archived {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePhotoRepo) ListByUser(_ context.Context, userID string) ([]models.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Photo{}
	for _, id := range f.order {
		p := f.photos[id]
		if p.UserID == userID && !p.Archived {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePhotoRepo) Update(_ context.Context, id string, upd repository.PhotoUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.photos[id]
	if !ok || p.Archived {
		return apperr.ErrNotFound
	}
	if upd.FileName != nil {
		p.FileName = *upd.FileName
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Tags != nil {
		p.Tags = *upd.Tags
	}
	return nil
}

func (f *fakePhotoRepo) ReplaceImage(_ context.Context, id, blobKey, contentType, thumbnail string, size int64, width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.photos[id]
	if !ok || p.Archived {
		return apperr.ErrNotFound
	}
	p.BlobKey = blobKey
	p.ContentType = contentType
	p.Thumbnail = thumbnail
	p.Size = size
	p.Width = width
	p.Height = height
	return nil
}

func (f *fakePhotoRepo) Archive(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.photos[id]
	if !ok || p.Archived {
		return apperr.ErrNotFound
	}
	p.Archived = true
	return nil
}

func newTestPhotoService(repo repository.PhotoRepository, blobs blob.Store) *PhotoService {
	manager := uploader.NewManager(3, 0, zap.NewNop().Sugar())
	return NewPhotoService(repo, blobs, manager, events.Noop{}, zap.NewNop().Sugar())
}
