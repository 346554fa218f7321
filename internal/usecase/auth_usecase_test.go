package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepo "sunumarche/internal/adapter/repository"
	"sunumarche/pkg/errors"
)

// stubAuthProvider issues deterministic uids and tokens keyed by email.
type stubAuthProvider struct {
	created map[string]string // email -> uid
}

func newStubAuthProvider() *stubAuthProvider {
	return &stubAuthProvider{created: make(map[string]string)}
}

func (s *stubAuthProvider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	uid := "uid-" + email
	s.created[email] = uid
	return uid, nil
}

func (s *stubAuthProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	var uid string
	if _, err := fmt.Sscanf(token, "token-%s", &uid); err != nil {
		return "", fmt.Errorf("malformed token %q", token)
	}
	return uid, nil
}

func (s *stubAuthProvider) SignInWithEmailPassword(email, password string) (string, error) {
	uid, ok := s.created[email]
	if !ok {
		return "", fmt.Errorf("unknown email")
	}
	return "token-" + uid, nil
}

func (s *stubAuthProvider) SignInWithEmailPasswordWithRefresh(email, password string) (string, string, error) {
	token, err := s.SignInWithEmailPassword(email, password)
	if err != nil {
		return "", "", err
	}
	return token, "refresh-" + token, nil
}

func (s *stubAuthProvider) RefreshIdToken(refreshToken string) (string, string, error) {
	var token string
	if _, err := fmt.Sscanf(refreshToken, "refresh-%s", &token); err != nil {
		return "", "", fmt.Errorf("malformed refresh token")
	}
	return token, refreshToken, nil
}

func (s *stubAuthProvider) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	uc := NewAuthUseCase(adapterrepo.NewMemoryUserRepository(), newStubAuthProvider())
	ctx := context.Background()

	result, err := uc.Register(ctx, RegisterInput{
		Email:    "fatou@example.com",
		Password: "secret123",
		FullName: "Fatou Diop",
		Role:     "farmer",
	})
	require.NoError(t, err)
	assert.Equal(t, "farmer", result.User.Role)
	assert.Equal(t, "active", result.User.Status)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)

	logged, err := uc.Login(ctx, "fatou@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, logged.User.ID)
}

func TestRegisterDefaultsToBuyer(t *testing.T) {
	uc := NewAuthUseCase(adapterrepo.NewMemoryUserRepository(), newStubAuthProvider())

	result, err := uc.Register(context.Background(), RegisterInput{
		Email:    "moussa@example.com",
		Password: "secret123",
		FullName: "Moussa Ndiaye",
	})
	require.NoError(t, err)
	assert.Equal(t, "buyer", result.User.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc := NewAuthUseCase(adapterrepo.NewMemoryUserRepository(), newStubAuthProvider())
	ctx := context.Background()

	input := RegisterInput{Email: "fatou@example.com", Password: "secret123", FullName: "Fatou"}
	_, err := uc.Register(ctx, input)
	require.NoError(t, err)

	_, err = uc.Register(ctx, input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	uc := NewAuthUseCase(adapterrepo.NewMemoryUserRepository(), newStubAuthProvider())

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "x@example.com",
		Password: "secret123",
		FullName: "X",
		Role:     "admin",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestRefresh(t *testing.T) {
	uc := NewAuthUseCase(adapterrepo.NewMemoryUserRepository(), newStubAuthProvider())
	ctx := context.Background()

	registered, err := uc.Register(ctx, RegisterInput{
		Email:    "fatou@example.com",
		Password: "secret123",
		FullName: "Fatou",
	})
	require.NoError(t, err)

	refreshed, err := uc.Refresh(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)

	_, err = uc.Refresh(ctx, "garbage")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}
