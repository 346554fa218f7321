package usecase

import (
	"context"
	"time"

	"sunumarche/internal/domain/entity"
	"sunumarche/internal/domain/repository"
	"sunumarche/internal/domain/service"
	"sunumarche/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

type UpdateProfileInput struct {
	FullName  string
	Phone     string
	Bio       string
	AvatarURL string
	City      string
	Region    string
	Country   string
	// Geo, when present and no explicit city was given, resolves the home
	// location from the device's reverse-geocode payload.
	Geo *service.RawGeocodeResult
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	city, region, country := input.City, input.Region, input.Country
	if city == "" && input.Geo != nil {
		loc := service.ResolveLocation(*input.Geo)
		city, region, country = loc.City, loc.Region, loc.Country
	}
	if city != "" {
		user.City = city
		user.Region = region
		user.Country = country
	}

	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
