package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"sunumarche/internal/domain/entity"
	"sunumarche/internal/domain/repository"
)

// memoryPriceSubmissionRepository is the in-process append-only log. The
// slice only ever grows; records are never mutated after append.
type memoryPriceSubmissionRepository struct {
	mu          sync.Mutex
	submissions []*entity.PriceSubmission
}

func NewMemoryPriceSubmissionRepository() repository.PriceSubmissionRepository {
	return &memoryPriceSubmissionRepository{}
}

func (r *memoryPriceSubmissionRepository) Append(ctx context.Context, submission *entity.PriceSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now()
	}

	stored := *submission
	r.submissions = append(r.submissions, &stored)
	return nil
}

func (r *memoryPriceSubmissionRepository) QuerySince(ctx context.Context, since time.Time, filter repository.PriceSubmissionFilter) ([]*entity.PriceSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.PriceSubmission
	for _, sub := range r.submissions {
		if sub.CreatedAt.Before(since) {
			continue
		}
		if filter.Country != "" && sub.Country != filter.Country {
			continue
		}
		if filter.Region != "" && sub.Region != filter.Region {
			continue
		}
		if filter.City != "" && sub.City != filter.City {
			continue
		}
		copied := *sub
		matched = append(matched, &copied)
	}

	return matched, nil
}
