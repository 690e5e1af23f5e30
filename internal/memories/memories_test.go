package memories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photovault/internal/models"
)

func at(day, hour int) time.Time {
	return time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestBuildGroupsByCalendarDay(t *testing.T) {
	photos := []models.Photo{
		{ID: "a", Category: models.CategoryTravel, UploadedAt: at(10, 9)},
		{ID: "b", Category: models.CategoryTravel, UploadedAt: at(10, 17)},
		{ID: "c", Category: models.CategoryFood, UploadedAt: at(12, 8)},
	}

	mems := Build(photos, time.UTC)
	require.Len(t, mems, 2)

	// newest day first
	assert.Equal(t, "2025-03-12", mems[0].Date)
	assert.Equal(t, "2025-03-10", mems[1].Date)

	same := mems[1]
	assert.Equal(t, 2, same.PhotoCount)
	assert.Contains(t, same.Title, "March 10, 2025")
	assert.Equal(t, models.CategoryTravel, same.DominantCategory)
	// chronological within the group
	assert.Equal(t, "a", same.Photos[0].ID)
	assert.Equal(t, "b", same.Photos[1].ID)
}

func TestDominantCategoryTieGoesToFirstEncountered(t *testing.T) {
	photos := []models.Photo{
		{ID: "a", Category: models.CategoryFood, UploadedAt: at(5, 8)},
		{ID: "b", Category: models.CategoryNature, UploadedAt: at(5, 9)},
		{ID: "c", Category: models.CategoryNature, UploadedAt: at(5, 10)},
		{ID: "d", Category: models.CategoryFood, UploadedAt: at(5, 11)},
	}
	mems := Build(photos, time.UTC)
	require.Len(t, mems, 1)
	assert.Equal(t, models.CategoryFood, mems[0].DominantCategory)
}

func TestCustomCategoryUsesFallbackTitle(t *testing.T) {
	photos := []models.Photo{
		{ID: "a", Category: "rock climbing", UploadedAt: at(1, 8)},
	}
	mems := Build(photos, time.UTC)
	require.Len(t, mems, 1)
	assert.Equal(t, "rock climbing", mems[0].DominantCategory)
	assert.Contains(t, mems[0].Title, fallbackTemplate)
}

func TestRepresentativesSpreadAcrossSpan(t *testing.T) {
	var photos []models.Photo
	for i := 0; i < 10; i++ {
		photos = append(photos, models.Photo{
			ID:         fmt.Sprintf("p%d", i),
			Category:   models.CategoryTravel,
			UploadedAt: at(20, 8).Add(time.Duration(i) * time.Minute),
		})
	}
	mems := Build(photos, time.UTC)
	require.Len(t, mems, 1)

	reps := mems[0].Representatives
	require.Len(t, reps, 4)
	// endpoints plus evenly spread interior, not simply the first four
	assert.Equal(t, "p0", reps[0].ID)
	assert.Equal(t, "p3", reps[1].ID)
	assert.Equal(t, "p6", reps[2].ID)
	assert.Equal(t, "p9", reps[3].ID)
}

func TestRepresentativesSmallGroupKeepsAll(t *testing.T) {
	photos := []models.Photo{
		{ID: "a", UploadedAt: at(2, 8)},
		{ID: "b", UploadedAt: at(2, 9)},
	}
	mems := Build(photos, time.UTC)
	require.Len(t, mems, 1)
	assert.Len(t, mems[0].Representatives, 2)
}

func TestArchivedPhotosExcluded(t *testing.T) {
	photos := []models.Photo{
		{ID: "a", UploadedAt: at(2, 8), Archived: true},
	}
	assert.Empty(t, Build(photos, time.UTC))
}
