package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"sunumarche/internal/domain/service"
	"sunumarche/internal/usecase"
	"sunumarche/pkg/errors"
	"sunumarche/pkg/response"
)

type TrendHandler struct {
	trendUseCase *usecase.TrendUseCase
}

func NewTrendHandler(trendUseCase *usecase.TrendUseCase) *TrendHandler {
	return &TrendHandler{
		trendUseCase: trendUseCase,
	}
}

type submitPriceRequest struct {
	Category string                    `json:"category" validate:"required"`
	City     string                    `json:"city"`
	Region   string                    `json:"region"`
	Country  string                    `json:"country"`
	Price    float64                   `json:"price" validate:"required"`
	Unit     string                    `json:"unit" validate:"required"`
	Geo      *service.RawGeocodeResult `json:"geo,omitempty"`
}

func (h *TrendHandler) SubmitPrice(c echo.Context) error {
	var req submitPriceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	submission, err := h.trendUseCase.SubmitPrice(c.Request().Context(), userID, usecase.SubmitPriceInput{
		Category: req.Category,
		City:     req.City,
		Region:   req.Region,
		Country:  req.Country,
		Price:    req.Price,
		Unit:     req.Unit,
		Geo:      req.Geo,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, submission)
}

func (h *TrendHandler) GetTrends(c echo.Context) error {
	days := 30
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return response.Error(c, errors.Validation("days must be a number"))
		}
		days = parsed
	}

	limit := 5
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return response.Error(c, errors.Validation("limit must be a number"))
		}
		limit = parsed
	}

	result, err := h.trendUseCase.GetTrends(c.Request().Context(), usecase.GetTrendsInput{
		Country: c.QueryParam("country"),
		Region:  c.QueryParam("region"),
		City:    c.QueryParam("city"),
		Days:    days,
		Limit:   limit,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
