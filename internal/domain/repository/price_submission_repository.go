package repository

import (
	"context"
	"time"

	"sunumarche/internal/domain/entity"
)

// PriceSubmissionFilter narrows a query along the location hierarchy.
// Empty fields place no restriction on that dimension.
type PriceSubmissionFilter struct {
	Country string
	Region  string
	City    string
}

// PriceSubmissionRepository is an append-only log: there is deliberately no
// update or delete capability.
type PriceSubmissionRepository interface {
	Append(ctx context.Context, submission *entity.PriceSubmission) error
	QuerySince(ctx context.Context, since time.Time, filter PriceSubmissionFilter) ([]*entity.PriceSubmission, error)
}
