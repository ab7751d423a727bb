package user

import (
	userRepo "petcare/database/repository/user"
	"petcare/models"
	"petcare/services/storage"
)

// RegisterInput is the payload for account registration.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileInput carries the mutable profile fields; empty fields are
// left untouched.
type UpdateProfileInput struct {
	Username string
	Email    string
	Image    []byte
	ImageTyp string
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// UserService owns account lifecycle and authentication.
type UserService interface {
	Register(input RegisterInput) (*AuthResponse, error)
	Authenticate(username, password string) (*AuthResponse, error)
	GetUserByID(id string) (*models.User, error)
	UpdateProfile(actor models.Actor, input UpdateProfileInput) (*models.User, error)
	ChangePassword(actor models.Actor, currentPassword, newPassword string) error

	// Admin operations.
	GetAllUsers(actor models.Actor) ([]models.User, error)
	ChangeRole(actor models.Actor, userID, role string) (*models.User, error)
	DeleteUser(actor models.Actor, userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo    userRepo.UserRepository
	Storage storage.StorageService
}
