// Package blob stores full-resolution image payloads keyed by opaque
// generated keys. Photo documents carry only the key and a bounded
// thumbnail; the pixel data lives here.
package blob

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("blob not found")

// Object is a stored payload plus its content type.
type Object struct {
	ContentType string
	Data        []byte
}

// Store is the blob storage contract. Implementations must be safe for
// concurrent use; operations are keyed by unique tokens so no coordination
// beyond per-key atomicity is required.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}
