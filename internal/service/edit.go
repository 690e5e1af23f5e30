package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"photovault/internal/apperr"
	"photovault/internal/editor"
	"photovault/internal/models"
	"photovault/internal/uploader"
)

// Edit renders the adjustments against the photo's original bytes and
// saves the result as the photo's new image. The old blob is evicted once
// the record points at the new one.
func (s *PhotoService) Edit(ctx context.Context, userID, id string, adj editor.Adjustments) (*models.Photo, error) {
	photo, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	obj, err := s.Image(ctx, photo.BlobKey)
	if err != nil {
		return nil, err
	}

	ed, err := editor.Load(obj.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBadRequest, err)
	}
	img, err := ed.Apply(adj)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrBadRequest, err)
	}
	rendered, contentType, err := editor.Render(img, obj.ContentType)
	if err != nil {
		return nil, fmt.Errorf("render edited image: %w", err)
	}

	// run the result through the upload pipeline for the refreshed
	// thumbnail and dimensions
	item := &uploader.Item{Name: photo.FileName, ContentType: contentType, Data: rendered}
	if err := s.manager.Prepare(item); err != nil {
		return nil, fmt.Errorf("prepare edited image: %w", err)
	}

	newKey := uuid.NewString()
	if err := s.blobs.Put(ctx, newKey, item.ContentType, item.Compressed); err != nil {
		return nil, fmt.Errorf("store edited blob: %w", err)
	}
	if err := s.repo.ReplaceImage(ctx, id, newKey, item.ContentType, item.Preview,
		int64(len(item.Compressed)), item.Width, item.Height); err != nil {
		_ = s.blobs.Delete(ctx, newKey)
		return nil, err
	}
	if err := s.blobs.Delete(ctx, photo.BlobKey); err != nil {
		s.log.Warnw("old blob evict failed", "key", photo.BlobKey, "err", err)
	}
	return s.Get(ctx, userID, id)
}

// ExportZip packs the requested photos into a zip archive. Items are
// exported independently: a missing record or blob is skipped and counted,
// never aborting the rest.
func (s *PhotoService) ExportZip(ctx context.Context, userID string, ids []string) ([]byte, int, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	skipped := 0
	for _, id := range ids {
		photo, obj, err := s.Download(ctx, userID, id)
		if err != nil {
			skipped++
			continue
		}
		w, err := zw.Create(photo.FileName)
		if err != nil {
			return nil, 0, err
		}
		if _, err := w.Write(obj.Data); err != nil {
			return nil, 0, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), skipped, nil
}
