package services

import (
	"context"
	"errors"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/app/models/dto"
	"github.com/hackmap/hackmap/internal/app/repositories"
	"github.com/hackmap/hackmap/internal/pkg/apperrors"
	"github.com/hackmap/hackmap/internal/pkg/auth"
	"github.com/hackmap/hackmap/internal/pkg/logger"
)

// authUserStore is the slice of UserRepository the auth service needs.
type authUserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// tokenIssuer signs tokens for authenticated users.
type tokenIssuer interface {
	GenerateToken(user *models.User) (string, error)
}

// AuthService handles signup and login
type AuthService struct {
	users  authUserStore
	tokens tokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(users authUserStore, tokens tokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Signup registers a new user and signs them in. Duplicate email and
// username are decided by the database's unique constraints, so two
// concurrent signups with the same email cannot both succeed.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("All fields are required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmailTaken):
			return nil, &apperrors.CustomError{Err: apperrors.ErrEmailAlreadyExists, Message: "Email already exists"}
		case errors.Is(err, repositories.ErrUsernameTaken):
			return nil, &apperrors.CustomError{Err: apperrors.ErrUsernameAlreadyExists, Message: "Username already exists"}
		}
		return nil, err
	}
	user.ID = id

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Int64("userId", id).Msg("Failed to generate token")
		return nil, err
	}

	return &dto.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same error so the response does not leak which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, &apperrors.CustomError{Err: apperrors.ErrInvalidCredentials, Message: "Invalid credentials"}
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, &apperrors.CustomError{Err: apperrors.ErrInvalidCredentials, Message: "Invalid credentials"}
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to generate token")
		return nil, err
	}

	return &dto.AuthResponse{Token: token, User: user}, nil
}
