package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunumarche/internal/domain/entity"
	"sunumarche/internal/domain/repository"
	"sunumarche/pkg/errors"
)

func sub(category, city string, price float64, createdAt time.Time) *entity.PriceSubmission {
	return &entity.PriceSubmission{
		Category:  category,
		City:      city,
		Region:    "Dakar",
		Country:   "Sénégal",
		Price:     price,
		Unit:      "kg",
		CreatedAt: createdAt,
	}
}

func TestComputeTrendsAverage(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	submissions := []*entity.PriceSubmission{
		sub("Fruits", "Dakar", 750, now.Add(-2*24*time.Hour)),
		sub("Fruits", "Dakar", 850, now.Add(-1*24*time.Hour)),
	}

	trends, err := ComputeTrends(submissions, repository.PriceSubmissionFilter{}, now, 30, 5)
	require.NoError(t, err)
	require.Len(t, trends, 1)

	assert.Equal(t, "Fruits", trends[0].Category)
	assert.Equal(t, "Dakar", trends[0].City)
	assert.Equal(t, 800, trends[0].AveragePrice)
	assert.Equal(t, "kg", trends[0].Unit)
	assert.Equal(t, 2, trends[0].Submissions)
}

func TestComputeTrendsWindowCutoff(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	submissions := []*entity.PriceSubmission{
		sub("Fruits", "Dakar", 700, now.Add(-40*24*time.Hour)),
		sub("Fruits", "Dakar", 900, now.Add(-5*24*time.Hour)),
	}

	trends, err := ComputeTrends(submissions, repository.PriceSubmissionFilter{}, now, 30, 5)
	require.NoError(t, err)
	require.Len(t, trends, 1)

	// the 40-day-old observation falls outside the window
	assert.Equal(t, 1, trends[0].Submissions)
	assert.Equal(t, 900, trends[0].AveragePrice)
}

func TestComputeTrendsCityFilter(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	thies := sub("Fruits", "Thiès", 600, now.Add(-24*time.Hour))
	thies.Region = "Thiès"

	submissions := []*entity.PriceSubmission{
		sub("Fruits", "Dakar", 800, now.Add(-24*time.Hour)),
		thies,
	}

	trends, err := ComputeTrends(submissions, repository.PriceSubmissionFilter{City: "Dakar"}, now, 30, 5)
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, "Dakar", trends[0].City)

	// filters are exact matches; a different casing matches nothing
	trends, err = ComputeTrends(submissions, repository.PriceSubmissionFilter{City: "dakar"}, now, 30, 5)
	require.NoError(t, err)
	assert.Empty(t, trends)
}

func TestComputeTrendsGroupingAndOrdering(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	submissions := []*entity.PriceSubmission{
		sub("Fruits", "Dakar", 800, now.Add(-3*24*time.Hour)),
		sub("Légumes", "Dakar", 500, now.Add(-3*24*time.Hour)),
		sub("Légumes", "Dakar", 520, now.Add(-2*24*time.Hour)),
		sub("Céréales", "Thiès", 350, now.Add(-2*24*time.Hour)),
		sub("Légumes", "Dakar", 510, now.Add(-1*24*time.Hour)),
		sub("Céréales", "Thiès", 360, now.Add(-1*24*time.Hour)),
	}

	trends, err := ComputeTrends(submissions, repository.PriceSubmissionFilter{}, now, 30, 5)
	require.NoError(t, err)
	require.Len(t, trends, 3)

	// ordered by observation count, highest first
	assert.Equal(t, "Légumes", trends[0].Category)
	assert.Equal(t, 3, trends[0].Submissions)
	assert.Equal(t, "Céréales", trends[1].Category)
	assert.Equal(t, 2, trends[1].Submissions)
	assert.Equal(t, "Fruits", trends[2].Category)
	assert.Equal(t, 1, trends[2].Submissions)
}

func TestComputeTrendsTieKeepsFirstSeenOrder(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	submissions := []*entity.PriceSubmission{
		sub("Fruits", "Dakar", 800, now.Add(-2*24*time.Hour)),
		sub("Légumes", "Dakar", 500, now.Add(-1*24*time.Hour)),
	}

	trends, err := ComputeTrends(submissions, repository.PriceSubmissionFilter{}, now, 30, 5)
	require.NoError(t, err)
	require.Len(t, trends, 2)

	assert.Equal(t, "Fruits", trends[0].Category)
	assert.Equal(t, "Légumes", trends[1].Category)
}

func TestComputeTrendsMaxCategoriesCap(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	submissions := []*entity.PriceSubmission{
		sub("Fruits", "Dakar", 800, now.Add(-24*time.Hour)),
		sub("Légumes", "Dakar", 500, now.Add(-24*time.Hour)),
		sub("Céréales", "Thiès", 350, now.Add(-24*time.Hour)),
	}

	trends, err := ComputeTrends(submissions, repository.PriceSubmissionFilter{}, now, 30, 2)
	require.NoError(t, err)
	assert.Len(t, trends, 2)
}

func TestComputeTrendsShortWindowKeepsRawPoints(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// three observations on the same day, newest first in the input
	submissions := []*entity.PriceSubmission{
		sub("Fruits", "Dakar", 820, now.Add(-1*time.Hour)),
		sub("Fruits", "Dakar", 800, now.Add(-3*time.Hour)),
		sub("Fruits", "Dakar", 780, now.Add(-5*time.Hour)),
	}

	trends, err := ComputeTrends(submissions, repository.PriceSubmissionFilter{}, now, 7, 5)
	require.NoError(t, err)
	require.Len(t, trends, 1)

	points := trends[0].DataPoints
	require.Len(t, points, 3)

	// one point per observation, oldest first
	assert.Equal(t, 780, points[0].Price)
	assert.Equal(t, 800, points[1].Price)
	assert.Equal(t, 820, points[2].Price)
}

func TestComputeTrendsLongWindowBucketsByDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	submissions := []*entity.PriceSubmission{
		sub("Fruits", "Dakar", 700, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		sub("Fruits", "Dakar", 900, time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)),
		sub("Fruits", "Dakar", 850, time.Date(2026, 3, 13, 11, 0, 0, 0, time.UTC)),
	}

	trends, err := ComputeTrends(submissions, repository.PriceSubmissionFilter{}, now, 30, 5)
	require.NoError(t, err)
	require.Len(t, trends, 1)

	points := trends[0].DataPoints
	// days without submissions are not synthesized
	require.Len(t, points, 2)

	assert.Equal(t, "2026-03-10", points[0].Date)
	assert.Equal(t, 800, points[0].Price)
	assert.Equal(t, "2026-03-13", points[1].Date)
	assert.Equal(t, 850, points[1].Price)
}

func TestComputeTrendsFirstSeenUnitWins(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	sack := sub("Céréales", "Thiès", 17500, now.Add(-1*24*time.Hour))
	sack.Unit = "sac"

	submissions := []*entity.PriceSubmission{
		sub("Céréales", "Thiès", 350, now.Add(-2*24*time.Hour)),
		sack,
	}

	trends, err := ComputeTrends(submissions, repository.PriceSubmissionFilter{}, now, 30, 5)
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, "kg", trends[0].Unit)
}

func TestComputeTrendsValidation(t *testing.T) {
	now := time.Now()

	_, err := ComputeTrends(nil, repository.PriceSubmissionFilter{}, now, -1, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = ComputeTrends(nil, repository.PriceSubmissionFilter{}, now, 30, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestComputeTrendsEmptyInput(t *testing.T) {
	trends, err := ComputeTrends(nil, repository.PriceSubmissionFilter{}, time.Now(), 30, 5)
	require.NoError(t, err)
	assert.Empty(t, trends)
}
