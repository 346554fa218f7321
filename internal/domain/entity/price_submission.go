package entity

import (
	"time"
)

// PriceSubmission is a single crowdsourced market price observation.
// Submissions are append-only: once created they are never mutated or
// deleted, and bad data is diluted by volume rather than corrected.
type PriceSubmission struct {
	ID       string  `json:"id" firestore:"id"`
	UserID   string  `json:"user_id" firestore:"userId"`
	Category string  `json:"category" firestore:"category"`
	City     string  `json:"city" firestore:"city"`
	Region   string  `json:"region" firestore:"region"`
	Country  string  `json:"country" firestore:"country"`
	Price    float64 `json:"price" firestore:"price"`
	Unit     string  `json:"unit" firestore:"unit"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
