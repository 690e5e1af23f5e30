// Package memories derives the day-bucketed timeline from a photo list.
// Memories are recomputed on every load and never persisted.
package memories

import (
	"fmt"
	"math"
	"sort"
	"time"

	"photovault/internal/models"
)

const maxRepresentatives = 4

// titleTemplates maps a category to its headline phrase. Custom categories
// use the fallback template.
var titleTemplates = map[string]string{
	models.CategoryFamily:  "Family moments",
	models.CategoryTravel:  "Adventures away",
	models.CategoryNature:  "Out in nature",
	models.CategoryFood:    "Good food",
	models.CategoryFriends: "Time with friends",
	models.CategoryEvents:  "A day to celebrate",
	models.CategoryOther:   "Captured moments",
}

const fallbackTemplate = "Captured moments"

// Build groups photos by calendar day in loc and returns the memories
// newest-first. Photos within a group are chronological.
func Build(photos []models.Photo, loc *time.Location) []models.Memory {
	if loc == nil {
		loc = time.Local
	}
	buckets := make(map[string][]models.Photo)
	for _, p := range photos {
		if p.Archived {
			continue
		}
		day := p.UploadedAt.In(loc).Format("2006-01-02")
		buckets[day] = append(buckets[day], p)
	}

	mems := make([]models.Memory, 0, len(buckets))
	for day, group := range buckets {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].UploadedAt.Before(group[j].UploadedAt)
		})
		dominant := dominantCategory(group)
		date, _ := time.ParseInLocation("2006-01-02", day, loc)
		mems = append(mems, models.Memory{
			Date:             day,
			Title:            title(dominant, date),
			DominantCategory: dominant,
			PhotoCount:       len(group),
			Photos:           group,
			Representatives:  representatives(group),
		})
	}

	sort.Slice(mems, func(i, j int) bool { return mems[i].Date > mems[j].Date })
	return mems
}

// dominantCategory picks the most frequent category in the group; ties go
// to the category encountered first in chronological order.
func dominantCategory(group []models.Photo) string {
	counts := make(map[string]int)
	order := []string{}
	for _, p := range group {
		cat := p.Category
		if cat == "" {
			cat = models.CategoryOther
		}
		if counts[cat] == 0 {
			order = append(order, cat)
		}
		counts[cat]++
	}
	best := models.CategoryOther
	bestCount := 0
	for _, cat := range order {
		if counts[cat] > bestCount {
			best = cat
			bestCount = counts[cat]
		}
	}
	return best
}

func title(category string, date time.Time) string {
	phrase, ok := titleTemplates[category]
	if !ok {
		phrase = fallbackTemplate
	}
	return fmt.Sprintf("%s - %s", phrase, date.Format("January 2, 2006"))
}

// representatives picks up to four photos spread evenly across the group's
// chronological span rather than simply the first four.
func representatives(group []models.Photo) []models.Photo {
	n := len(group)
	if n <= maxRepresentatives {
		reps := make([]models.Photo, n)
		copy(reps, group)
		return reps
	}
	reps := make([]models.Photo, 0, maxRepresentatives)
	step := float64(n-1) / float64(maxRepresentatives-1)
	seen := -1
	for i := 0; i < maxRepresentatives; i++ {
		idx := int(math.Round(float64(i) * step))
		if idx == seen {
			idx++
		}
		reps = append(reps, group[idx])
		seen = idx
	}
	return reps
}
