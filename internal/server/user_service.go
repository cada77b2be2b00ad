package server

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Caoophuongg/quickcv/internal/config"
	"github.com/Caoophuongg/quickcv/internal/db"
	"github.com/Caoophuongg/quickcv/internal/storage"
	"github.com/Caoophuongg/quickcv/internal/types"
	"github.com/Caoophuongg/quickcv/internal/validation"
)

// UserService provides business logic for account operations
type UserService struct {
	users          UserStore
	passwordConfig *config.PasswordConfig
	uploads        *storage.Store
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(users UserStore, passwordConfig *config.PasswordConfig, uploads *storage.Store) *UserService {
	return &UserService{
		users:          users,
		passwordConfig: passwordConfig,
		uploads:        uploads,
	}
}

// Register creates a new account with password authentication
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := validation.Password(req.Password); err != nil {
		return nil, err
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, req.Email, passwordHash, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns the profile
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	auth, err := s.users.GetUserAuthByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Security: always return the same generic error whether the account is
	// missing or the password is wrong
	if auth == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, auth.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return &auth.User, nil
}

// GetProfile returns the profile of the given user
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return user, nil
}

// UpdateProfile updates the caller's name fields
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.User, error) {
	user, err := s.users.UpdateUserProfile(ctx, userID, validation.OptionalString(req.FirstName), validation.OptionalString(req.LastName))
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return user, nil
}

// UpdateAvatar stores a new avatar image and records its public URL. The
// previous avatar file, if any, is removed after the swap.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (*types.User, error) {
	if err := validation.ImagePayload(contentType, int64(len(data)), validation.MaxAvatarBytes); err != nil {
		return nil, err
	}

	current, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if current == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}

	url, err := s.uploads.Save("avatar", contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	user, err := s.users.UpdateUserAvatar(ctx, userID, url)
	if err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}

	if current.AvatarURL != "" {
		if err := s.uploads.Delete(current.AvatarURL); err != nil {
			// The new avatar is already live; an orphaned file is not worth
			// failing the request over.
			log.Printf("Failed to remove previous avatar %s: %v", current.AvatarURL, err)
		}
	}

	return user, nil
}

// ChangePassword verifies the current password and replaces it
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req *types.ChangePasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	currentHash, err := s.users.GetUserPasswordHash(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get password hash: %w", err)
	}
	if currentHash == "" {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(req.CurrentPassword, currentHash) {
		return &ErrPasswordMismatch{}
	}

	if err := validation.Password(req.NewPassword); err != nil {
		return err
	}

	newHash, err := s.passwordConfig.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.users.UpdateUserPassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
