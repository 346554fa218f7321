package handler

import (
	"github.com/labstack/echo/v4"

	"sunumarche/internal/domain/service"
	"sunumarche/internal/usecase"
	"sunumarche/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	FullName  string                    `json:"full_name"`
	Phone     string                    `json:"phone"`
	Bio       string                    `json:"bio"`
	AvatarURL string                    `json:"avatar_url" validate:"omitempty,url"`
	City      string                    `json:"city"`
	Region    string                    `json:"region"`
	Country   string                    `json:"country"`
	Geo       *service.RawGeocodeResult `json:"geo,omitempty"`
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		FullName:  req.FullName,
		Phone:     req.Phone,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		City:      req.City,
		Region:    req.Region,
		Country:   req.Country,
		Geo:       req.Geo,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
