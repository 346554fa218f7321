package usecase

import (
	"math"
	"sort"
	"time"

	"sunumarche/internal/domain/entity"
	"sunumarche/internal/domain/repository"
	"sunumarche/pkg/errors"
)

// Daily bucketing kicks in above this window; at or below it the sparkline
// shows one point per raw observation.
const dailyBucketThresholdDays = 7

const dateLayout = "2006-01-02"

type trendGroupKey struct {
	category string
	city     string
}

type trendGroup struct {
	key         trendGroupKey
	unit        string
	submissions []*entity.PriceSubmission
	priceSum    float64
}

// ComputeTrends turns a flat submission log into per-(category, city) market
// summaries over a trailing window of windowDays before now.
//
// It is pure: no side effects, deterministic for a given input, so results
// are safe to memoize per (filter, windowDays, maxCategories, snapshot).
// Groups are ordered by observation count descending; ties keep first-seen
// order. Calendar dates are derived in UTC.
func ComputeTrends(
	submissions []*entity.PriceSubmission,
	filter repository.PriceSubmissionFilter,
	now time.Time,
	windowDays int,
	maxCategories int,
) ([]*entity.TrendAggregate, error) {
	if windowDays < 0 {
		return nil, errors.Validation("days must not be negative")
	}
	if maxCategories <= 0 {
		return nil, errors.Validation("limit must be positive")
	}

	cutoff := now.Add(-time.Duration(windowDays) * 24 * time.Hour)

	groups := make(map[trendGroupKey]*trendGroup)
	var order []trendGroupKey

	for _, sub := range submissions {
		if sub.CreatedAt.Before(cutoff) {
			continue
		}
		if !matchesFilter(sub, filter) {
			continue
		}

		key := trendGroupKey{category: sub.Category, city: sub.City}
		group, ok := groups[key]
		if !ok {
			// first-seen member fixes the group's unit; no cross-unit
			// conversion is attempted
			group = &trendGroup{key: key, unit: sub.Unit}
			groups[key] = group
			order = append(order, key)
		}
		group.submissions = append(group.submissions, sub)
		group.priceSum += sub.Price
	}

	aggregates := make([]*entity.TrendAggregate, 0, len(order))
	for _, key := range order {
		group := groups[key]
		count := len(group.submissions)

		aggregates = append(aggregates, &entity.TrendAggregate{
			Category:     key.category,
			City:         key.city,
			AveragePrice: roundPrice(group.priceSum / float64(count)),
			Unit:         group.unit,
			Submissions:  count,
			DataPoints:   buildDataPoints(group.submissions, windowDays),
		})
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].Submissions > aggregates[j].Submissions
	})

	if len(aggregates) > maxCategories {
		aggregates = aggregates[:maxCategories]
	}

	return aggregates, nil
}

func matchesFilter(sub *entity.PriceSubmission, filter repository.PriceSubmissionFilter) bool {
	if filter.Country != "" && sub.Country != filter.Country {
		return false
	}
	if filter.Region != "" && sub.Region != filter.Region {
		return false
	}
	if filter.City != "" && sub.City != filter.City {
		return false
	}
	return true
}

// buildDataPoints emits the chartable series for one group. Long windows get
// one point per calendar day present in the data (days without submissions
// are not synthesized); short windows keep every raw observation.
func buildDataPoints(submissions []*entity.PriceSubmission, windowDays int) []entity.PricePoint {
	if windowDays > dailyBucketThresholdDays {
		return dailyPoints(submissions)
	}
	return rawPoints(submissions)
}

func dailyPoints(submissions []*entity.PriceSubmission) []entity.PricePoint {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var dates []string

	for _, sub := range submissions {
		date := sub.CreatedAt.UTC().Format(dateLayout)
		if _, seen := counts[date]; !seen {
			dates = append(dates, date)
		}
		sums[date] += sub.Price
		counts[date]++
	}

	sort.Strings(dates)

	points := make([]entity.PricePoint, 0, len(dates))
	for _, date := range dates {
		points = append(points, entity.PricePoint{
			Date:  date,
			Price: roundPrice(sums[date] / float64(counts[date])),
		})
	}
	return points
}

func rawPoints(submissions []*entity.PriceSubmission) []entity.PricePoint {
	ordered := make([]*entity.PriceSubmission, len(submissions))
	copy(ordered, submissions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	points := make([]entity.PricePoint, 0, len(ordered))
	for _, sub := range ordered {
		points = append(points, entity.PricePoint{
			Date:  sub.CreatedAt.UTC().Format(dateLayout),
			Price: roundPrice(sub.Price),
		})
	}
	return points
}

func roundPrice(v float64) int {
	return int(math.Round(v))
}
