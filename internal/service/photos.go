package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"photovault/internal/apperr"
	"photovault/internal/blob"
	"photovault/internal/events"
	"photovault/internal/gallery"
	"photovault/internal/metrics"
	"photovault/internal/models"
	"photovault/internal/repository"
	"photovault/internal/uploader"
)

// PhotoService owns photo persistence: document records in Mongo, pixel
// data in the blob store, the two tied together by the blob key.
type PhotoService struct {
	repo    repository.PhotoRepository
	blobs   blob.Store
	manager *uploader.Manager
	bus     events.Publisher
	log     *zap.SugaredLogger
}

func NewPhotoService(repo repository.PhotoRepository, blobs blob.Store, manager *uploader.Manager, bus events.Publisher, log *zap.SugaredLogger) *PhotoService {
	return &PhotoService{repo: repo, blobs: blobs, manager: manager, bus: bus, log: log}
}

// UploadInput is one incoming file plus its metadata.
type UploadInput struct {
	FileName     string
	OriginalName string
	Category     string
	Tags         []string
	ContentType  string
	UploadedAt   time.Time
	Data         []byte
}

// Upload validates, prepares and persists a single photo.
func (s *PhotoService) Upload(ctx context.Context, userID string, in UploadInput) (*models.Photo, error) {
	item := &uploader.Item{
		Name:        in.FileName,
		ContentType: in.ContentType,
		Category:    in.Category,
		Tags:        in.Tags,
		Data:        in.Data,
	}
	if err := s.manager.Validate(item); err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %v", apperr.ErrBadRequest, err)
	}
	if err := s.manager.Prepare(item); err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %v", apperr.ErrBadRequest, err)
	}
	photo, err := s.storePrepared(ctx, userID, item, in.OriginalName, in.UploadedAt)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.UploadsTotal.WithLabelValues("completed").Inc()
	return photo, nil
}

// StoreFunc adapts the service for batch runs: items arrive already
// validated and prepared by the queue manager.
func (s *PhotoService) StoreFunc(userID string) uploader.StoreFunc {
	return func(ctx context.Context, item *uploader.Item) (string, error) {
		photo, err := s.storePrepared(ctx, userID, item, item.Name, time.Time{})
		if err != nil {
			metrics.UploadsTotal.WithLabelValues("failed").Inc()
			return "", err
		}
		metrics.UploadsTotal.WithLabelValues("completed").Inc()
		return photo.ID, nil
	}
}

func (s *PhotoService) storePrepared(ctx context.Context, userID string, item *uploader.Item, originalName string, uploadedAt time.Time) (*models.Photo, error) {
	if originalName == "" {
		originalName = item.Name
	}
	if uploadedAt.IsZero() {
		uploadedAt = time.Now()
	}
	blobKey := uuid.NewString()
	if err := s.blobs.Put(ctx, blobKey, item.ContentType, item.Compressed); err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}
	photo := &models.Photo{
		ID:           uuid.NewString(),
		FileName:     item.Name,
		OriginalName: originalName,
		UserID:       userID,
		Category:     item.Category,
		Size:         int64(len(item.Compressed)),
		ContentType:  item.ContentType,
		Width:        item.Width,
		Height:       item.Height,
		UploadedAt:   uploadedAt,
		BlobKey:      blobKey,
		Thumbnail:    item.Preview,
		Tags:         item.Tags,
	}
	if err := s.repo.Insert(ctx, photo); err != nil {
		// keep the blob cache referentially consistent with the store
		_ = s.blobs.Delete(ctx, blobKey)
		return nil, fmt.Errorf("store photo record: %w", err)
	}
	_ = s.bus.Publish(ctx, events.Event{
		Type:     events.TypePhotoUploaded,
		UserID:   userID,
		PhotoID:  photo.ID,
		Category: photo.Category,
	})
	return photo, nil
}

// NotifyBatchFinished publishes the batch summary event.
func (s *PhotoService) NotifyBatchFinished(ctx context.Context, userID string, completed, failed int) {
	_ = s.bus.Publish(ctx, events.Event{
		Type:      events.TypeBatchFinished,
		UserID:    userID,
		Completed: completed,
		Failed:    failed,
	})
}

// List returns the user's photos with the gallery query applied.
func (s *PhotoService) List(ctx context.Context, userID string, q gallery.Query) ([]models.Photo, error) {
	photos, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return gallery.Apply(photos, q), nil
}

// Get loads one photo and enforces ownership. Other users' photos are
// reported as not found rather than forbidden.
func (s *PhotoService) Get(ctx context.Context, userID, id string) (*models.Photo, error) {
	photo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if photo.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	return photo, nil
}

func (s *PhotoService) Update(ctx context.Context, userID, id string, upd repository.PhotoUpdate) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, upd)
}

// Delete archives the record and evicts its blob so the key stops
// resolving.
func (s *PhotoService) Delete(ctx context.Context, userID, id string) error {
	photo, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Archive(ctx, id); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, photo.BlobKey); err != nil {
		s.log.Warnw("blob evict failed", "key", photo.BlobKey, "err", err)
	}
	_ = s.bus.Publish(ctx, events.Event{
		Type:    events.TypePhotoArchived,
		UserID:  userID,
		PhotoID: id,
	})
	return nil
}

// BulkOutcome reports per-item results of a bulk operation. Items are
// processed independently; one failure never halts the rest.
type BulkOutcome struct {
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed"`
}

func (s *PhotoService) BulkDelete(ctx context.Context, userID string, ids []string) BulkOutcome {
	out := BulkOutcome{Succeeded: []string{}, Failed: map[string]string{}}
	for _, id := range ids {
		if err := s.Delete(ctx, userID, id); err != nil {
			out.Failed[id] = err.Error()
			continue
		}
		out.Succeeded = append(out.Succeeded, id)
	}
	return out
}

// Image resolves a blob key to its bytes.
func (s *PhotoService) Image(ctx context.Context, key string) (*blob.Object, error) {
	obj, err := s.blobs.Get(ctx, key)
	if err == blob.ErrNotFound {
		return nil, apperr.ErrNotFound
	}
	return obj, err
}

// Download returns a photo's record together with its bytes for
// attachment delivery.
func (s *PhotoService) Download(ctx context.Context, userID, id string) (*models.Photo, *blob.Object, error) {
	photo, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	obj, err := s.Image(ctx, photo.BlobKey)
	if err != nil {
		return nil, nil, err
	}
	return photo, obj, nil
}
