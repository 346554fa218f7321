package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"sunumarche/internal/domain/entity"
	"sunumarche/internal/domain/repository"
	"sunumarche/pkg/errors"
)

type firestorePriceSubmissionRepository struct {
	client *firestore.Client
}

func NewFirestorePriceSubmissionRepository(client *firestore.Client) repository.PriceSubmissionRepository {
	return &firestorePriceSubmissionRepository{
		client: client,
	}
}

func (r *firestorePriceSubmissionRepository) Append(ctx context.Context, submission *entity.PriceSubmission) error {
	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now()
	}

	// Create, not Set: an existing id must never be overwritten in an
	// append-only log
	_, err := r.client.Collection("price_submissions").Doc(submission.ID).Create(ctx, submission)
	if err != nil {
		return storeError("Failed to append price submission", err)
	}

	return nil
}

func (r *firestorePriceSubmissionRepository) QuerySince(ctx context.Context, since time.Time, filter repository.PriceSubmissionFilter) ([]*entity.PriceSubmission, error) {
	query := r.client.Collection("price_submissions").Query.
		Where("createdAt", ">=", since)

	if filter.Country != "" {
		query = query.Where("country", "==", filter.Country)
	}
	if filter.Region != "" {
		query = query.Where("region", "==", filter.Region)
	}
	if filter.City != "" {
		query = query.Where("city", "==", filter.City)
	}

	iter := query.OrderBy("createdAt", firestore.Asc).Documents(ctx)
	var submissions []*entity.PriceSubmission

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, storeError("Failed to query price submissions", err)
		}

		var submission entity.PriceSubmission
		if err := doc.DataTo(&submission); err != nil {
			return nil, errors.Internal("Failed to parse price submission data", err)
		}

		submissions = append(submissions, &submission)
	}

	return submissions, nil
}
