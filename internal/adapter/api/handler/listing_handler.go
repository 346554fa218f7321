package handler

import (
	"github.com/labstack/echo/v4"

	"sunumarche/internal/domain/service"
	"sunumarche/internal/usecase"
	"sunumarche/pkg/response"
	"sunumarche/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type listingImageRequest struct {
	URL          string `json:"url" validate:"required,url"`
	DisplayOrder int    `json:"display_order"`
}

type createListingRequest struct {
	Title       string                    `json:"title" validate:"required"`
	Description string                    `json:"description"`
	Category    string                    `json:"category" validate:"required"`
	Price       float64                   `json:"price" validate:"required,gt=0"`
	Unit        string                    `json:"unit" validate:"required"`
	Quantity    float64                   `json:"quantity"`
	Images      []listingImageRequest     `json:"images"`
	City        string                    `json:"city"`
	Region      string                    `json:"region"`
	Country     string                    `json:"country"`
	Geo         *service.RawGeocodeResult `json:"geo,omitempty"`
}

func (r createListingRequest) toInput() usecase.CreateListingInput {
	images := make([]usecase.ListingImageInput, len(r.Images))
	for i, img := range r.Images {
		images[i] = usecase.ListingImageInput{
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		}
	}

	return usecase.CreateListingInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		Unit:        r.Unit,
		Quantity:    r.Quantity,
		Images:      images,
		City:        r.City,
		Region:      r.Region,
		Country:     r.Country,
		Geo:         r.Geo,
	}
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListListings(c.Request().Context(), usecase.ListListingsInput{
		Category: c.QueryParam("category"),
		City:     c.QueryParam("city"),
		Region:   c.QueryParam("region"),
		Country:  c.QueryParam("country"),
		Sort:     c.QueryParam("sort"),
	}, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) SearchListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.SearchListings(c.Request().Context(), c.QueryParam("q"), usecase.ListListingsInput{
		Category: c.QueryParam("category"),
		City:     c.QueryParam("city"),
	}, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	sellerID := c.Get("uid").(string)

	listings, total, err := h.listingUseCase.ListMyListings(c.Request().Context(), sellerID, c.QueryParam("status"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), sellerID, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), c.Param("id"), sellerID, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), c.Param("id"), sellerID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"id": c.Param("id"), "status": "deleted"})
}
