package user

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"petcare/models"
	"petcare/services/storage"
	"petcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// Register creates a new USER account and returns an auth token.
func (s *DefaultUserService) Register(input RegisterInput) (*AuthResponse, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, utils.Validationf("username, email, password are required")
	}

	if existing, err := s.Repo.GetByUsername(input.Username); err == nil && existing != nil {
		return nil, utils.Validationf("username %q is already taken", input.Username)
	}
	if existing, err := s.Repo.GetByEmail(input.Email); err == nil && existing != nil {
		return nil, utils.Validationf("email %q is already registered", input.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	utils.GetLogger().Info("User registered", zap.String("userID", user.ID))
	return s.authResponse(user)
}

// Authenticate verifies credentials and issues a token.
func (s *DefaultUserService) Authenticate(username, password string) (*AuthResponse, error) {
	if username == "" || password == "" {
		return nil, utils.Validationf("username and password are required")
	}

	user, err := s.Repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.ErrUnauthenticated
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ErrUnauthenticated
	}
	return s.authResponse(user)
}

func (s *DefaultUserService) authResponse(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{
		ID:       user.ID,
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		ImageURL: user.ImageURL,
	}, nil
}

// GetUserByID retrieves a user by its unique ID.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}

// UpdateProfile applies a partial update to the caller's own profile,
// uploading a new profile image to the blob store when one is supplied.
func (s *DefaultUserService) UpdateProfile(actor models.Actor, input UpdateProfileInput) (*models.User, error) {
	fields := map[string]any{}
	if input.Username != "" {
		fields["username"] = input.Username
	}
	if input.Email != "" {
		fields["email"] = input.Email
	}

	if len(input.Image) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		name := fmt.Sprintf("%s-%d", actor.ID, time.Now().UnixMilli())
		url, err := s.Storage.Upload(ctx, storage.FolderProfiles, name, bytes.NewReader(input.Image), input.ImageTyp)
		if err != nil {
			return nil, fmt.Errorf("upload profile image: %w", err)
		}
		fields["imageUrl"] = url
	}

	if len(fields) == 0 {
		return nil, utils.Validationf("no updatable fields provided")
	}
	if err := s.Repo.UpdateFields(actor.ID, fields); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(actor.ID)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *DefaultUserService) ChangePassword(actor models.Actor, currentPassword, newPassword string) error {
	if newPassword == "" {
		return utils.Validationf("new password is required")
	}

	user, err := s.Repo.GetByID(actor.ID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password mismatch: %w", utils.ErrForbidden)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Repo.UpdateFields(actor.ID, map[string]any{"passwordHash": string(hashed)})
}

// GetAllUsers returns every account. Admin only.
func (s *DefaultUserService) GetAllUsers(actor models.Actor) ([]models.User, error) {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.Repo.GetAll()
}

// ChangeRole sets a user's role. Admin only.
func (s *DefaultUserService) ChangeRole(actor models.Actor, userID, role string) (*models.User, error) {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	if !models.ValidRole(role) {
		return nil, utils.Validationf("valid role is required (USER, SERVICE, ADMIN)")
	}
	if err := s.Repo.UpdateFields(userID, map[string]any{"role": role}); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(userID)
}

// DeleteUser removes an account. Admin only. Bookings referencing the user
// are left in place; they resolve without an owner afterwards.
func (s *DefaultUserService) DeleteUser(actor models.Actor, userID string) error {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.Repo.Delete(userID); err != nil {
		return err
	}
	utils.GetLogger().Info("User deleted", zap.String("userID", userID))
	return nil
}
