// Package gallery implements the view-model operations over a photo list:
// text/category/date filtering, sorting, and a selection set that is
// independent of what the current filter shows.
package gallery

import (
	"sort"
	"strings"
	"time"

	"photovault/internal/models"
)

type SortKey string

const (
	SortDate SortKey = "date"
	SortName SortKey = "name"
	SortSize SortKey = "size"
)

// Query describes one derived view of the photo list. The zero value is a
// pass-through: applying it returns the authoritative ordering unchanged.
type Query struct {
	Search   string
	Category string
	From     time.Time // inclusive; zero means unbounded
	To       time.Time // inclusive; zero means unbounded
	Sort     SortKey
	Desc     bool
}

// Apply produces the filtered, sorted subset. The input slice is never
// mutated; clearing all filters round-trips to the original ordering.
func Apply(photos []models.Photo, q Query) []models.Photo {
	out := make([]models.Photo, 0, len(photos))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range photos {
		if !matches(p, search, q) {
			continue
		}
		out = append(out, p)
	}
	sortPhotos(out, q.Sort, q.Desc)
	return out
}

func matches(p models.Photo, search string, q Query) bool {
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if !q.From.IsZero() && p.UploadedAt.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && p.UploadedAt.After(q.To) {
		return false
	}
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.FileName), search) ||
		strings.Contains(strings.ToLower(p.OriginalName), search) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func sortPhotos(photos []models.Photo, key SortKey, desc bool) {
	var less func(a, b models.Photo) bool
	switch key {
	case SortDate:
		less = func(a, b models.Photo) bool { return a.UploadedAt.Before(b.UploadedAt) }
	case SortName:
		less = func(a, b models.Photo) bool {
			return strings.ToLower(a.FileName) < strings.ToLower(b.FileName)
		}
	case SortSize:
		less = func(a, b models.Photo) bool { return a.Size < b.Size }
	default:
		return // keep authoritative order
	}
	sort.SliceStable(photos, func(i, j int) bool {
		if desc {
			return less(photos[j], photos[i])
		}
		return less(photos[i], photos[j])
	})
}
