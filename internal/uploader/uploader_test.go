package uploader

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newItems(t *testing.T, n int) []*Item {
	t.Helper()
	data := pngBytes(t, 8, 8)
	items := make([]*Item, n)
	for i := range items {
		items[i] = &Item{
			Name:        fmt.Sprintf("photo-%d.png", i),
			ContentType: "image/png",
			Data:        data,
		}
	}
	return items
}

func drain(events <-chan Event) []Event {
	var out []Event
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

func TestRunRespectsConcurrencyCap(t *testing.T) {
	const cap = 3
	m := NewManager(cap, 0, nil)
	items := newItems(t, 10)

	var inFlight, maxSeen int64
	store := func(ctx context.Context, item *Item) (string, error) {
		cur := atomic.AddInt64(&inFlight, 1)
		for {
			prev := atomic.LoadInt64(&maxSeen)
			if cur <= prev || atomic.CompareAndSwapInt64(&maxSeen, prev, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return "id-" + item.Name, nil
	}

	evs := drain(m.Run(context.Background(), items, store))

	assert.LessOrEqual(t, atomic.LoadInt64(&maxSeen), int64(cap))
	last := evs[len(evs)-1]
	require.Equal(t, EventBatchDone, last.Kind)
	assert.Equal(t, 10, last.Completed)
	assert.Equal(t, 0, last.Failed)
}

func TestRunEveryItemReachesOneTerminalState(t *testing.T) {
	m := NewManager(2, 0, nil)
	items := newItems(t, 6)
	// third and fifth items fail
	store := func(ctx context.Context, item *Item) (string, error) {
		if item.Name == "photo-2.png" || item.Name == "photo-4.png" {
			return "", errors.New("boom")
		}
		return "id", nil
	}

	evs := drain(m.Run(context.Background(), items, store))

	terminal := map[int]int{}
	var done *Event
	for i := range evs {
		switch evs[i].Kind {
		case EventItemCompleted, EventItemFailed:
			terminal[evs[i].Index]++
		case EventBatchDone:
			require.Nil(t, done, "BatchDone fired more than once")
			done = &evs[i]
		}
	}
	require.NotNil(t, done)
	assert.Equal(t, 4, done.Completed)
	assert.Equal(t, 2, done.Failed)
	for i, item := range items {
		assert.Equal(t, 1, terminal[i], "item %d terminal events", i)
		assert.Contains(t, []Status{StatusCompleted, StatusFailed}, item.Status)
	}
	assert.Equal(t, StatusFailed, items[2].Status)
	assert.Equal(t, StatusCompleted, items[3].Status)
}

func TestRunFailureDoesNotBlockSiblings(t *testing.T) {
	m := NewManager(1, 0, nil)
	items := newItems(t, 3)
	store := func(ctx context.Context, item *Item) (string, error) {
		if item.Name == "photo-0.png" {
			return "", errors.New("first fails")
		}
		return "id", nil
	}

	evs := drain(m.Run(context.Background(), items, store))
	last := evs[len(evs)-1]
	assert.Equal(t, 2, last.Completed)
	assert.Equal(t, 1, last.Failed)
}

func TestRunCancellation(t *testing.T) {
	m := NewManager(1, 0, nil)
	items := newItems(t, 5)

	ctx, cancel := context.WithCancel(context.Background())
	var stored int64
	var once sync.Once
	store := func(ctx context.Context, item *Item) (string, error) {
		atomic.AddInt64(&stored, 1)
		// cancel after the first item completes
		once.Do(cancel)
		return "id", nil
	}

	evs := drain(m.Run(ctx, items, store))
	last := evs[len(evs)-1]
	require.Equal(t, EventBatchDone, last.Kind)
	assert.Equal(t, 5, last.Completed+last.Failed)
	// first item finished before the cancel and stays completed
	assert.Equal(t, StatusCompleted, items[0].Status)
	for _, item := range items {
		if item.Status == StatusFailed {
			assert.ErrorIs(t, item.Err, ErrCanceled)
		}
	}
}

func TestValidate(t *testing.T) {
	m := NewManager(3, 100, nil)

	assert.ErrorIs(t, m.Validate(&Item{ContentType: "image/png"}), ErrEmptyFile)
	assert.ErrorIs(t, m.Validate(&Item{
		ContentType: "image/png", Data: make([]byte, 101),
	}), ErrTooLarge)
	assert.ErrorIs(t, m.Validate(&Item{
		ContentType: "text/html", Data: []byte("x"),
	}), ErrUnsupportedType)
	assert.NoError(t, m.Validate(&Item{
		ContentType: "image/png", Data: []byte("x"),
	}))
}

func TestPrepareDerivesPreviewAndDimensions(t *testing.T) {
	m := NewManager(3, 0, nil)
	item := &Item{
		Name:        "wide.png",
		ContentType: "image/png",
		Data:        pngBytes(t, 64, 32),
	}
	require.NoError(t, m.Prepare(item))

	assert.Equal(t, 64, item.Width)
	assert.Equal(t, 32, item.Height)
	assert.NotEmpty(t, item.Preview)
	assert.True(t, len(item.Preview) <= thumbByteLimit)
	assert.NotEmpty(t, item.Compressed)
}

// minimal 1x1 lossless webp
const tinyWebP = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

func TestPrepareDecodesWebP(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(tinyWebP)
	require.NoError(t, err)

	m := NewManager(3, 0, nil)
	item := &Item{Name: "pic.webp", ContentType: "image/webp", Data: data}
	require.NoError(t, m.Validate(item))
	require.NoError(t, m.Prepare(item))

	assert.Equal(t, 1, item.Width)
	assert.Equal(t, 1, item.Height)
	// webp is always transcoded for storage
	assert.Equal(t, "image/jpeg", item.ContentType)
	assert.NotEmpty(t, item.Compressed)
	assert.NotEmpty(t, item.Preview)
}

func TestPrepareRejectsGarbage(t *testing.T) {
	m := NewManager(3, 0, nil)
	item := &Item{Name: "junk.png", ContentType: "image/png", Data: []byte("not an image")}
	assert.Error(t, m.Prepare(item))
}
