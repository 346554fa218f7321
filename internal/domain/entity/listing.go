package entity

import (
	"time"
)

type ListingImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

// Listing is a produce offer published by a seller: a quantity of some
// category of produce at a unit price, located where the seller trades.
type Listing struct {
	ID          string         `json:"id" firestore:"id"`
	SellerID    string         `json:"seller_id" firestore:"sellerId"`
	Title       string         `json:"title" firestore:"title"`
	Description string         `json:"description" firestore:"description"`
	Category    string         `json:"category" firestore:"category"`
	Price       float64        `json:"price" firestore:"price"`
	Unit        string         `json:"unit" firestore:"unit"` // "kg", "tonne", "sac", "unite"
	Quantity    float64        `json:"quantity" firestore:"quantity"`
	Images      []ListingImage `json:"images" firestore:"images"`

	City    string `json:"city" firestore:"city"`
	Region  string `json:"region" firestore:"region"`
	Country string `json:"country" firestore:"country"`

	Status string `json:"status" firestore:"status"` // "active", "sold", "suspended"
	Views  int    `json:"views" firestore:"views"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}
