package services_test

import (
	"digest-lab/auth"
	"digest-lab/errors"
	"digest-lab/mocks"
	"digest-lab/repositories"
	"digest-lab/services"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const tokenDuration = time.Hour

func TestAuthService_Register(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIUserRepository(ctrl)

	service := services.NewAuthService(mockRepo, tokenDuration)

	// Given: a brand new realm, created digest-enabled with the first account
	mockRepo.EXPECT().GetRealm("acme").Return(repositories.Realm{}, errors.ErrRealmNotFound)
	mockRepo.EXPECT().CreateRealm(repositories.Realm{Name: "acme", DigestEnabled: true}).Return(nil)

	mockRepo.EXPECT().
		CreateUser(gomock.Any()).
		DoAndReturn(func(user repositories.User) (string, error) {
			req.Equal("alice@example.com", user.Email)
			req.True(user.DigestEnabled, "new accounts start with digests enabled")
			req.NotEqual("Str0ng&Secure!Pass", user.PasswordHash, "plain password must never be stored")
			return "user-id-1", nil
		})

	// When: registering with a valid payload
	token, err := service.Register(auth.RegisterRequest{
		Email:    "alice@example.com",
		FullName: "Alice",
		Realm:    "acme",
		Password: "Str0ng&Secure!Pass",
	})

	// Then: a session token is issued for the new user
	req.NoError(err)
	claims, err := auth.ValidateToken(string(token))
	req.NoError(err)
	req.Equal("user-id-1", claims.UserID)
	req.Equal([]string{"user"}, claims.Roles)
}

func TestAuthService_Register_ExistingRealm(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIUserRepository(ctrl)

	service := services.NewAuthService(mockRepo, tokenDuration)

	// The realm already exists: it must not be recreated (a recreate would
	// reset a realm-wide digest opt-out).
	mockRepo.EXPECT().GetRealm("acme").
		Return(repositories.Realm{Name: "acme", DigestEnabled: false}, nil)
	mockRepo.EXPECT().CreateRealm(gomock.Any()).Times(0)
	mockRepo.EXPECT().CreateUser(gomock.Any()).Return("user-id-2", nil)

	_, err := service.Register(auth.RegisterRequest{
		Email:    "bob@example.com",
		FullName: "Bob",
		Realm:    "acme",
		Password: "Str0ng&Secure!Pass",
	})
	req.NoError(err)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIUserRepository(ctrl)

	service := services.NewAuthService(mockRepo, tokenDuration)

	// The repository must never be reached when validation fails.
	mockRepo.EXPECT().CreateUser(gomock.Any()).Times(0)

	_, err := service.Register(auth.RegisterRequest{
		Email:    "alice@example.com",
		FullName: "Alice",
		Realm:    "acme",
		Password: "weakpassword",
	})
	req.ErrorIs(err, errors.ErrInvalidPassword)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIUserRepository(ctrl)

	service := services.NewAuthService(mockRepo, tokenDuration)

	mockRepo.EXPECT().GetRealm("acme").
		Return(repositories.Realm{Name: "acme", DigestEnabled: true}, nil)
	mockRepo.EXPECT().
		CreateUser(gomock.Any()).
		Return("", errors.ErrUserAlreadyExists)

	_, err := service.Register(auth.RegisterRequest{
		Email:    "taken@example.com",
		FullName: "Alice",
		Realm:    "acme",
		Password: "Str0ng&Secure!Pass",
	})
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIUserRepository(ctrl)

	service := services.NewAuthService(mockRepo, tokenDuration)

	// Given: a stored user with a real Argon2id hash
	hash, err := auth.HashPassword("Str0ng&Secure!Pass")
	req.NoError(err)

	mockRepo.EXPECT().
		GetUserByEmail("alice@example.com").
		Return(repositories.User{
			ID:           "user-id-1",
			Email:        "alice@example.com",
			PasswordHash: hash,
			Roles:        []string{"user", "admin"},
		}, nil)

	// When: logging in with the right password
	token, err := service.Login("alice@example.com", "Str0ng&Secure!Pass")

	// Then: the token carries the stored identity and roles
	req.NoError(err)
	claims, err := auth.ValidateToken(string(token))
	req.NoError(err)
	req.Equal("user-id-1", claims.UserID)
	req.Equal([]string{"user", "admin"}, claims.Roles)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIUserRepository(ctrl)

	service := services.NewAuthService(mockRepo, tokenDuration)

	hash, err := auth.HashPassword("Str0ng&Secure!Pass")
	req.NoError(err)

	mockRepo.EXPECT().
		GetUserByEmail("alice@example.com").
		Return(repositories.User{ID: "user-id-1", PasswordHash: hash}, nil)

	_, err = service.Login("alice@example.com", "not-the-password")
	req.ErrorIs(err, errors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIUserRepository(ctrl)

	service := services.NewAuthService(mockRepo, tokenDuration)

	mockRepo.EXPECT().
		GetUserByEmail("ghost@example.com").
		Return(repositories.User{}, errors.ErrUserNotFound)

	// The caller must not be able to tell a missing user from a bad password.
	_, err := service.Login("ghost@example.com", "whatever")
	req.ErrorIs(err, errors.ErrInvalidCredentials)
}
