package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"sunumarche/internal/domain/entity"
	"sunumarche/internal/domain/repository"
	"sunumarche/internal/domain/service"
	"sunumarche/internal/infrastructure/cache"
	"sunumarche/internal/infrastructure/ratelimit"
	"sunumarche/pkg/errors"
	"sunumarche/pkg/logger"
)

type TrendUseCase struct {
	priceRepo   repository.PriceSubmissionRepository
	cache       *cache.Cache
	cacheTTL    time.Duration
	rateLimiter *ratelimit.RateLimiter
	fallback    bool
}

func NewTrendUseCase(
	priceRepo repository.PriceSubmissionRepository,
	trendCache *cache.Cache,
	cacheTTL time.Duration,
	fallbackOnError bool,
) *TrendUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &TrendUseCase{
		priceRepo:   priceRepo,
		cache:       trendCache,
		cacheTTL:    cacheTTL,
		rateLimiter: rateLimiter,
		fallback:    fallbackOnError,
	}
}

type SubmitPriceInput struct {
	Category string
	City     string
	Region   string
	Country  string
	Price    float64
	Unit     string
	// Geo carries the client's raw reverse-geocode payload; it is consulted
	// only when the explicit city field is empty.
	Geo *service.RawGeocodeResult
}

func (uc *TrendUseCase) SubmitPrice(ctx context.Context, userID string, input SubmitPriceInput) (*entity.PriceSubmission, error) {
	allowed, waitTime := uc.rateLimiter.Allow(userID, "submit_price")
	if !allowed {
		logger.Warn("SubmitPrice rate limited: user %s must wait %v", userID, waitTime)
		return nil, errors.TooManyRequests("Too many price submissions. Please wait before submitting again")
	}

	if math.IsNaN(input.Price) || math.IsInf(input.Price, 0) || input.Price <= 0 {
		return nil, errors.Validation("price must be a positive number")
	}
	if input.Category == "" {
		return nil, errors.Validation("category is required")
	}
	if input.Unit == "" {
		return nil, errors.Validation("unit is required")
	}

	city, region, country := input.City, input.Region, input.Country
	if city == "" && input.Geo != nil {
		loc := service.ResolveLocation(*input.Geo)
		city, region, country = loc.City, loc.Region, loc.Country
	}
	if city == "" {
		return nil, errors.Validation("city is required")
	}

	submission := &entity.PriceSubmission{
		UserID:    userID,
		Category:  input.Category,
		City:      city,
		Region:    region,
		Country:   country,
		Price:     input.Price,
		Unit:      input.Unit,
		CreatedAt: time.Now(),
	}

	// append-only log: a failed write surfaces as-is, it is never retried or
	// swallowed here
	if err := uc.priceRepo.Append(ctx, submission); err != nil {
		logger.Error("SubmitPrice: failed to append submission for user %s: %v", userID, err)
		return nil, err
	}

	return submission, nil
}

type GetTrendsInput struct {
	Country string
	Region  string
	City    string
	Days    int
	Limit   int
}

type TrendsResult struct {
	Trends []*entity.TrendAggregate `json:"trends"`
	// Fallback is true when the backing store was unreachable and the
	// aggregates below were computed from the bundled sample dataset.
	Fallback bool `json:"fallback"`
}

func (uc *TrendUseCase) GetTrends(ctx context.Context, input GetTrendsInput) (*TrendsResult, error) {
	if input.Days < 0 {
		return nil, errors.Validation("days must not be negative")
	}
	if input.Limit <= 0 {
		return nil, errors.Validation("limit must be positive")
	}

	filter := repository.PriceSubmissionFilter{
		Country: input.Country,
		Region:  input.Region,
		City:    input.City,
	}

	cacheKey := fmt.Sprintf("trends:%s:%s:%s:%d:%d", input.Country, input.Region, input.City, input.Days, input.Limit)

	var cached TrendsResult
	if found, err := uc.cache.GetJSON(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	} else if err != nil {
		logger.Warn("GetTrends: cache lookup failed for %s: %v", cacheKey, err)
	}

	now := time.Now()
	since := now.Add(-time.Duration(input.Days) * 24 * time.Hour)

	submissions, err := uc.priceRepo.QuerySince(ctx, since, filter)
	if err != nil {
		if !uc.fallback {
			return nil, err
		}
		// trend display is best-effort: serve the labeled sample dataset
		// instead of failing the read
		logger.Warn("GetTrends: backing store unavailable, serving fallback dataset: %v", err)
		trends, aggErr := ComputeTrends(fallbackSubmissions(now), filter, now, input.Days, input.Limit)
		if aggErr != nil {
			return nil, aggErr
		}
		return &TrendsResult{Trends: trends, Fallback: true}, nil
	}

	trends, err := ComputeTrends(submissions, filter, now, input.Days, input.Limit)
	if err != nil {
		return nil, err
	}

	result := &TrendsResult{Trends: trends}

	if err := uc.cache.SetJSON(ctx, cacheKey, result, uc.cacheTTL); err != nil {
		logger.Warn("GetTrends: cache write failed for %s: %v", cacheKey, err)
	}

	return result, nil
}

// fallbackSubmissions is the sample dataset served when the store is down.
// Prices are plausible CFA-per-kg figures for the Dakar region markets.
func fallbackSubmissions(now time.Time) []*entity.PriceSubmission {
	type sample struct {
		category string
		city     string
		region   string
		unit     string
		base     float64
	}

	samples := []sample{
		{"Fruits", "Dakar", "Dakar", "kg", 800},
		{"Légumes", "Dakar", "Dakar", "kg", 500},
		{"Céréales", "Thiès", "Thiès", "kg", 350},
	}

	var submissions []*entity.PriceSubmission
	for i, s := range samples {
		for day := 0; day < 14; day += 2 {
			// deterministic wobble so charts are not flat lines
			price := s.base + float64((day*7+i*13)%60) - 30
			submissions = append(submissions, &entity.PriceSubmission{
				ID:        fmt.Sprintf("fallback-%d-%d", i, day),
				UserID:    "fallback",
				Category:  s.category,
				City:      s.city,
				Region:    s.region,
				Country:   "Sénégal",
				Price:     price,
				Unit:      s.unit,
				CreatedAt: now.Add(-time.Duration(day) * 24 * time.Hour),
			})
		}
	}
	return submissions
}
