// Package repository maps User and Photo records onto MongoDB collections.
// Deletes are archival: records are flagged, never physically removed, and
// archived records are excluded from reads.
package repository

import (
	"context"

	"photovault/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

// PhotoUpdate carries the mutable photo fields; nil means unchanged.
type PhotoUpdate struct {
	FileName *string
	Category *string
	Tags     *[]string
}

type PhotoRepository interface {
	Insert(ctx context.Context, p *models.Photo) error
	GetByID(ctx context.Context, id string) (*models.Photo, error)
	ListByUser(ctx context.Context, userID string) ([]models.Photo, error)
	Update(ctx context.Context, id string, upd PhotoUpdate) error
	ReplaceImage(ctx context.Context, id string, blobKey, contentType, thumbnail string, size int64, width, height int) error
	Archive(ctx context.Context, id string) error
}
