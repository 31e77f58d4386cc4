//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"digest-lab/auth"
	"digest-lab/errors"
	"digest-lab/repositories"
	goerrors "errors"
	"fmt"
	"time"
)

type IAuthService interface {
	Login(email, password string) (Token, error)
	Register(req auth.RegisterRequest) (Token, error)
}

type AuthService struct {
	userRepository    repositories.IUserRepository
	authTokenDuration time.Duration
}

type Token string

func NewAuthService(repo repositories.IUserRepository, authTokenDuration time.Duration) IAuthService {
	return &AuthService{userRepository: repo, authTokenDuration: authTokenDuration}
}

func (s *AuthService) Register(req auth.RegisterRequest) (Token, error) {
	// 1. Validate business rules (email format, password complexity)
	// We check this before any expensive cryptographic operation.
	if err := auth.ValidateRegister(req); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	// 2. Hash the password using Argon2id
	// Done in the service layer to keep the repository unaware of plain passwords.
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Ensure the realm exists. The first account of an organization
	// creates it, digest-enabled, so the sweep can resolve its settings.
	if _, err := s.userRepository.GetRealm(req.Realm); err != nil {
		if !goerrors.Is(err, errors.ErrRealmNotFound) {
			return "", err
		}
		if err := s.userRepository.CreateRealm(repositories.Realm{
			Name:          req.Realm,
			DigestEnabled: true,
		}); err != nil {
			return "", err
		}
	}

	// 4. Persist the user with the generated hash.
	// Digest emails are opt-out, so new accounts start enabled.
	userID, err := s.userRepository.CreateUser(repositories.User{
		Email:         req.Email,
		FullName:      req.FullName,
		Realm:         req.Realm,
		PasswordHash:  hashedPassword,
		DigestEnabled: true,
	})
	if err != nil {
		return "", err // Will propagate ErrUserAlreadyExists if email is taken
	}

	// 5. Generate the initial session token
	token, err := auth.GenerateToken(userID, []string{"user"}, s.authTokenDuration)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}

	return Token(token), nil
}

func (s *AuthService) Login(email, password string) (Token, error) {
	// 1. Retrieve user by email from storage
	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		// Generic error to prevent user enumeration attacks
		return "", errors.ErrInvalidCredentials
	}

	// 2. Compare the provided password with the stored hash
	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	// 3. Issue the JWT token
	token, err := auth.GenerateToken(user.ID, user.Roles, s.authTokenDuration)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}

	return Token(token), nil
}
