// Package uploader runs photo upload batches with a bounded number of
// in-flight items. Admission is FIFO, one item's failure never blocks its
// siblings, and lifecycle is reported through a typed event channel.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var (
	ErrEmptyFile       = errors.New("empty file")
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrCanceled        = errors.New("batch canceled")
)

var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Item is one file moving through the queue. It lives only for the
// duration of a batch.
type Item struct {
	Name        string
	ContentType string
	Category    string
	Tags        []string
	Data        []byte

	// derived by Prepare
	Preview    string // base64 thumbnail
	Compressed []byte
	Width      int
	Height     int

	// lifecycle
	Status   Status
	Progress int
	Err      error
	PhotoID  string
}

type EventKind string

const (
	EventItemStarted   EventKind = "item_started"
	EventItemProgress  EventKind = "item_progress"
	EventItemCompleted EventKind = "item_completed"
	EventItemFailed    EventKind = "item_failed"
	EventBatchDone     EventKind = "batch_done"
)

// Event reports a lifecycle transition. BatchDone fires exactly once, after
// every item has reached a terminal status.
type Event struct {
	Kind     EventKind
	Index    int
	PhotoID  string
	Progress int
	Err      error

	// BatchDone only
	Completed int
	Failed    int
}

// StoreFunc persists one prepared item and returns the new photo ID.
type StoreFunc func(ctx context.Context, item *Item) (string, error)

// Manager validates, prepares and uploads batches.
type Manager struct {
	maxConcurrent int
	maxSize       int64
	log           *zap.SugaredLogger
}

func NewManager(maxConcurrent int, maxSize int64, log *zap.SugaredLogger) *Manager {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Manager{maxConcurrent: maxConcurrent, maxSize: maxSize, log: log}
}

// Validate checks type and size limits for one item.
func (m *Manager) Validate(item *Item) error {
	if len(item.Data) == 0 {
		return ErrEmptyFile
	}
	if m.maxSize > 0 && int64(len(item.Data)) > m.maxSize {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, len(item.Data))
	}
	if !allowedTypes[item.ContentType] {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, item.ContentType)
	}
	return nil
}

// Run uploads the batch with at most maxConcurrent items in flight and
// returns the event channel. The channel is buffered for the whole batch
// and closed after BatchDone. Canceling ctx aborts in-flight stores and
// fails the still-queued items; completed items are untouched.
func (m *Manager) Run(ctx context.Context, items []*Item, store StoreFunc) <-chan Event {
	events := make(chan Event, len(items)*4+1)

	go func() {
		defer close(events)

		sem := make(chan struct{}, m.maxConcurrent)
		var wg sync.WaitGroup

		var mu sync.Mutex
		completed, failed := 0, 0
		terminal := func(item *Item, idx int, err error) {
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				item.Status = StatusFailed
				item.Err = err
				failed++
				events <- Event{Kind: EventItemFailed, Index: idx, Err: err}
				return
			}
			item.Status = StatusCompleted
			item.Progress = 100
			completed++
			events <- Event{Kind: EventItemCompleted, Index: idx, PhotoID: item.PhotoID, Progress: 100}
		}

		for idx, item := range items {
			item.Status = StatusPending

			// FIFO admission: wait for a slot before dispatching the next item
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				terminal(item, idx, ErrCanceled)
				continue
			}

			wg.Add(1)
			go func(idx int, item *Item) {
				defer wg.Done()
				defer func() { <-sem }()

				if ctx.Err() != nil {
					terminal(item, idx, ErrCanceled)
					return
				}

				item.Status = StatusUploading
				item.Progress = 10
				events <- Event{Kind: EventItemStarted, Index: idx, Progress: 10}

				if err := m.Validate(item); err != nil {
					terminal(item, idx, err)
					return
				}
				if err := m.Prepare(item); err != nil {
					terminal(item, idx, err)
					return
				}
				item.Progress = 50
				events <- Event{Kind: EventItemProgress, Index: idx, Progress: 50}

				id, err := store(ctx, item)
				if err != nil {
					if m.log != nil {
						m.log.Warnw("upload failed", "name", item.Name, "err", err)
					}
					terminal(item, idx, err)
					return
				}
				item.PhotoID = id
				terminal(item, idx, nil)
			}(idx, item)
		}

		wg.Wait()
		events <- Event{Kind: EventBatchDone, Completed: completed, Failed: failed}
	}()

	return events
}
