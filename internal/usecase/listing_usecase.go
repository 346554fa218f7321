package usecase

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"sunumarche/internal/domain/entity"
	"sunumarche/internal/domain/repository"
	"sunumarche/internal/domain/service"
	"sunumarche/pkg/errors"
	"sunumarche/pkg/logger"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewListingUseCase(listingRepo repository.ListingRepository, userRepo repository.UserRepository) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

type CreateListingInput struct {
	Title       string
	Description string
	Category    string
	Price       float64
	Unit        string
	Quantity    float64
	Images      []ListingImageInput
	City        string
	Region      string
	Country     string
	Geo         *service.RawGeocodeResult
}

type ListingImageInput struct {
	URL          string
	DisplayOrder int
}

type ListListingsInput struct {
	Category string
	City     string
	Region   string
	Country  string
	SellerID string
	Sort     string
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, sellerID string, input CreateListingInput) (*entity.Listing, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.BadRequest("Invalid seller", err)
	}

	if math.IsNaN(input.Price) || math.IsInf(input.Price, 0) || input.Price <= 0 {
		return nil, errors.Validation("price must be a positive number")
	}
	if input.Category == "" {
		return nil, errors.Validation("category is required")
	}

	city, region, country := input.City, input.Region, input.Country
	if city == "" && input.Geo != nil {
		loc := service.ResolveLocation(*input.Geo)
		city, region, country = loc.City, loc.Region, loc.Country
	}
	if city == "" {
		// fall back to the seller's home market
		city, region, country = seller.City, seller.Region, seller.Country
	}
	if city == "" {
		return nil, errors.Validation("city is required")
	}

	images := make([]entity.ListingImage, len(input.Images))
	for i, img := range input.Images {
		images[i] = entity.ListingImage{
			ID:           uuid.New().String(),
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		}
	}

	now := time.Now()
	listing := &entity.Listing{
		SellerID:    sellerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Unit:        input.Unit,
		Quantity:    input.Quantity,
		Images:      images,
		City:        city,
		Region:      region,
		Country:     country,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) GetListing(ctx context.Context, id string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.listingRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn("GetListing: failed to bump views for %s: %v", id, err)
	}

	return listing, nil
}

func (uc *ListingUseCase) ListListings(ctx context.Context, input ListListingsInput, limit, offset int) ([]*entity.Listing, int64, error) {
	filter := make(map[string]interface{})
	if input.Category != "" {
		filter["category"] = input.Category
	}
	if input.City != "" {
		filter["city"] = input.City
	}
	if input.Region != "" {
		filter["region"] = input.Region
	}
	if input.Country != "" {
		filter["country"] = input.Country
	}
	filter["status"] = "active"

	return uc.listingRepo.List(ctx, filter, input.Sort, limit, offset)
}

func (uc *ListingUseCase) SearchListings(ctx context.Context, query string, input ListListingsInput, limit, offset int) ([]*entity.Listing, int64, error) {
	if query == "" {
		return nil, 0, errors.Validation("search query is required")
	}

	filter := make(map[string]interface{})
	if input.Category != "" {
		filter["category"] = input.Category
	}
	if input.City != "" {
		filter["city"] = input.City
	}
	filter["status"] = "active"

	return uc.listingRepo.SearchByTitle(ctx, query, filter, limit, offset)
}

func (uc *ListingUseCase) ListMyListings(ctx context.Context, sellerID, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	return uc.listingRepo.ListBySellerID(ctx, sellerID, status, limit, offset)
}

func (uc *ListingUseCase) UpdateListing(ctx context.Context, id, sellerID string, input CreateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("You don't have permission to update this listing", nil)
	}

	if math.IsNaN(input.Price) || math.IsInf(input.Price, 0) || input.Price <= 0 {
		return nil, errors.Validation("price must be a positive number")
	}

	listing.Title = input.Title
	listing.Description = input.Description
	listing.Category = input.Category
	listing.Price = input.Price
	listing.Unit = input.Unit
	listing.Quantity = input.Quantity
	if input.City != "" {
		listing.City = input.City
		listing.Region = input.Region
		listing.Country = input.Country
	}
	listing.UpdatedAt = time.Now()

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) DeleteListing(ctx context.Context, id, sellerID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if listing.SellerID != sellerID {
		return errors.Forbidden("You don't have permission to delete this listing", nil)
	}

	return uc.listingRepo.SoftDelete(ctx, id)
}
