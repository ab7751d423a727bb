package userRepo

import "petcare/models"

// UserRepository abstracts persistence for user accounts.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateFields(id string, fields map[string]any) error
	Delete(id string) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll() ([]models.User, error)
	Count() (int64, error)
}
