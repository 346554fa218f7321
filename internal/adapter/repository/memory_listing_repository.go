package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"sunumarche/internal/domain/entity"
	"sunumarche/internal/domain/repository"
	"sunumarche/pkg/errors"
)

type memoryListingRepository struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
}

func NewMemoryListingRepository() repository.ListingRepository {
	return &memoryListingRepository{
		listings: make(map[string]*entity.Listing),
	}
}

func (r *memoryListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	stored := *listing
	r.listings[listing.ID] = &stored
	return nil
}

func (r *memoryListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, exists := r.listings[id]
	if !exists || listing.DeletedAt != nil {
		return nil, errors.NotFound("Listing", nil)
	}

	copied := *listing
	return &copied, nil
}

func (r *memoryListingRepository) List(ctx context.Context, filter map[string]interface{}, sortKey string, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Listing
	for _, listing := range r.listings {
		if listing.DeletedAt != nil {
			continue
		}
		if matchesListingFilter(listing, filter) {
			copied := *listing
			matched = append(matched, &copied)
		}
	}

	sortListings(matched, sortKey)

	total := int64(len(matched))
	return paginateListings(matched, limit, offset), total, nil
}

func (r *memoryListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.listings[listing.ID]; !exists {
		return errors.NotFound("Listing", nil)
	}

	listing.UpdatedAt = time.Now()
	stored := *listing
	r.listings[listing.ID] = &stored
	return nil
}

func (r *memoryListingRepository) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, exists := r.listings[id]
	if !exists {
		return errors.NotFound("Listing", nil)
	}

	now := time.Now()
	listing.DeletedAt = &now
	listing.Status = "deleted"
	listing.UpdatedAt = now
	return nil
}

func (r *memoryListingRepository) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, exists := r.listings[id]
	if !exists {
		return errors.NotFound("Listing", nil)
	}

	listing.Views++
	return nil
}

func (r *memoryListingRepository) SearchByTitle(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query = strings.ToLower(query)

	var matched []*entity.Listing
	for _, listing := range r.listings {
		if listing.DeletedAt != nil {
			continue
		}
		if !matchesListingFilter(listing, filter) {
			continue
		}
		if strings.Contains(strings.ToLower(listing.Title), query) ||
			strings.Contains(strings.ToLower(listing.Category), query) {
			copied := *listing
			matched = append(matched, &copied)
		}
	}

	sortListings(matched, "")

	total := int64(len(matched))
	return paginateListings(matched, limit, offset), total, nil
}

func (r *memoryListingRepository) ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Listing
	for _, listing := range r.listings {
		if listing.DeletedAt != nil || listing.SellerID != sellerID {
			continue
		}
		if status != "" && listing.Status != status {
			continue
		}
		copied := *listing
		matched = append(matched, &copied)
	}

	sortListings(matched, "")

	total := int64(len(matched))
	return paginateListings(matched, limit, offset), total, nil
}

func matchesListingFilter(listing *entity.Listing, filter map[string]interface{}) bool {
	for key, value := range filter {
		want, _ := value.(string)
		var have string
		switch key {
		case "category":
			have = listing.Category
		case "city":
			have = listing.City
		case "region":
			have = listing.Region
		case "country":
			have = listing.Country
		case "status":
			have = listing.Status
		case "sellerId":
			have = listing.SellerID
		default:
			return false
		}
		if have != want {
			return false
		}
	}
	return true
}

func sortListings(listings []*entity.Listing, sortKey string) {
	switch sortKey {
	case "price_asc":
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].Price < listings[j].Price })
	case "price_desc":
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].Price > listings[j].Price })
	default:
		sort.SliceStable(listings, func(i, j int) bool { return listings[i].CreatedAt.After(listings[j].CreatedAt) })
	}
}

func paginateListings(listings []*entity.Listing, limit, offset int) []*entity.Listing {
	if offset > len(listings) {
		offset = len(listings)
	}
	listings = listings[offset:]
	if limit > 0 && limit < len(listings) {
		listings = listings[:limit]
	}
	return listings
}
