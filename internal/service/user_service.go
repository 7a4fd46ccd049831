package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/quizcraft/quizcraft-backend/internal/model"
	"github.com/quizcraft/quizcraft-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrWrongPassword means the current password given for a password change
// did not match.
var ErrWrongPassword = errors.New("current password does not match")

// UserService handles registration, login and profile management.
type UserService struct {
	users   *repository.UserRepository
	auth    *AuthService
	uploads *UploadService
	log     zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users *repository.UserRepository, auth *AuthService, uploads *UploadService, log zerolog.Logger) *UserService {
	return &UserService{
		users:   users,
		auth:    auth,
		uploads: uploads,
		log:     log.With().Str("component", "user_service").Logger(),
	}
}

// Register creates a new account and returns it with a signed token.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, string, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Age:          req.Age,
		Role:         model.Role(req.Role),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, token, nil
}

// Login authenticates by email and password and returns the user with a
// signed token.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := s.auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, "", err
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetProfile returns the user for the given ID.
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies the non-empty fields of req to the user. A password
// change requires the current password. avatarURL, when non-empty, replaces
// the stored avatar and the old file is removed from disk.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest, avatarURL string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Username = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Age > 0 {
		user.Age = req.Age
	}

	if req.NewPassword != "" {
		if err := s.auth.CheckPassword(user.PasswordHash, req.CurrentPassword); err != nil {
			return nil, ErrWrongPassword
		}
		hash, err := s.auth.HashPassword(req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	var oldAvatar string
	if avatarURL != "" {
		if user.AvatarURL != nil {
			oldAvatar = *user.AvatarURL
		}
		user.AvatarURL = &avatarURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if oldAvatar != "" {
		if err := s.uploads.RemoveAvatar(oldAvatar); err != nil {
			s.log.Warn().Err(err).Str("avatar", oldAvatar).Msg("failed to remove old avatar")
		}
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("profile updated")
	return user, nil
}
