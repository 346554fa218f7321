package repository

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sunumarche/pkg/errors"
)

// storeError classifies a Firestore failure: connectivity problems become
// STORE_UNAVAILABLE so callers can apply their outage policy (fallback data
// on reads, loud failure on writes); everything else is internal.
func storeError(message string, err error) *errors.AppError {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return errors.Unavailable(message, err)
	default:
		return errors.Internal(message, err)
	}
}
