package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sunumarche/internal/domain/entity"
	"sunumarche/pkg/errors"
)

func seedListing(t *testing.T, repo interface {
	Create(ctx context.Context, listing *entity.Listing) error
}, listing *entity.Listing) *entity.Listing {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), listing))
	return listing
}

func TestMemoryListingRepositoryFilterAndSort(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()

	seedListing(t, repo, &entity.Listing{
		SellerID: "s1", Title: "Mangues Kent", Category: "Fruits",
		Price: 800, City: "Dakar", Status: "active",
		CreatedAt: time.Now().Add(-2 * time.Hour),
	})
	seedListing(t, repo, &entity.Listing{
		SellerID: "s2", Title: "Tomates", Category: "Légumes",
		Price: 500, City: "Dakar", Status: "active",
		CreatedAt: time.Now().Add(-1 * time.Hour),
	})
	seedListing(t, repo, &entity.Listing{
		SellerID: "s1", Title: "Mil", Category: "Céréales",
		Price: 350, City: "Thiès", Status: "active",
		CreatedAt: time.Now(),
	})

	listings, total, err := repo.List(ctx, map[string]interface{}{"city": "Dakar"}, "", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	// default sort is newest first
	assert.Equal(t, "Tomates", listings[0].Title)

	listings, _, err = repo.List(ctx, nil, "price_asc", 20, 0)
	require.NoError(t, err)
	require.Len(t, listings, 3)
	assert.Equal(t, float64(350), listings[0].Price)
	assert.Equal(t, float64(800), listings[2].Price)
}

func TestMemoryListingRepositorySoftDelete(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()

	listing := seedListing(t, repo, &entity.Listing{
		SellerID: "s1", Title: "Oignons", Category: "Légumes",
		Price: 400, City: "Dakar", Status: "active",
	})

	require.NoError(t, repo.SoftDelete(ctx, listing.ID))

	_, err := repo.GetByID(ctx, listing.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, total, err := repo.List(ctx, nil, "", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestMemoryListingRepositorySearchByTitle(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()

	seedListing(t, repo, &entity.Listing{
		SellerID: "s1", Title: "Mangues Kent bio", Category: "Fruits",
		Price: 900, City: "Dakar", Status: "active",
	})
	seedListing(t, repo, &entity.Listing{
		SellerID: "s2", Title: "Tomates cerises", Category: "Légumes",
		Price: 600, City: "Dakar", Status: "active",
	})

	listings, total, err := repo.SearchByTitle(ctx, "mangues", nil, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Mangues Kent bio", listings[0].Title)

	// category text is searchable too
	_, total, err = repo.SearchByTitle(ctx, "légumes", nil, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestMemoryListingRepositoryIncrementViews(t *testing.T) {
	repo := NewMemoryListingRepository()
	ctx := context.Background()

	listing := seedListing(t, repo, &entity.Listing{
		SellerID: "s1", Title: "Arachides", Category: "Céréales",
		Price: 700, City: "Kaolack", Status: "active",
	})

	require.NoError(t, repo.IncrementViews(ctx, listing.ID))
	require.NoError(t, repo.IncrementViews(ctx, listing.ID))

	got, err := repo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)
}
