// Package events publishes photo lifecycle events. Publishing is
// best-effort: the gallery keeps working when the broker is down or absent.
package events

import (
	"context"
	"time"
)

type Type string

const (
	TypePhotoUploaded Type = "photo.uploaded"
	TypePhotoArchived Type = "photo.archived"
	TypeBatchFinished Type = "batch.finished"
)

// Event is the envelope written to the bus.
type Event struct {
	Type       Type      `json:"type"`
	UserID     string    `json:"user_id"`
	PhotoID    string    `json:"photo_id,omitempty"`
	Category   string    `json:"category,omitempty"`
	Completed  int       `json:"completed,omitempty"`
	Failed     int       `json:"failed,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Noop discards all events. Used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
