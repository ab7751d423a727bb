package models

import "time"

// User roles.
const (
	RoleUser    = "USER"
	RoleService = "SERVICE"
	RoleAdmin   = "ADMIN"
)

// User represents a platform account (customer, service staff or admin).
type User struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	ImageURL     string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the projection safe to return to other callers.
type PublicUser struct {
	ID       string `bson:"id" json:"id"`
	Username string `bson:"username" json:"username"`
	ImageURL string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// Public strips credential fields from a user record.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, ImageURL: u.ImageURL}
}

// Actor is the caller identity supplied by the identity provider: the
// authenticated user's id and role.
type Actor struct {
	ID   string
	Role string
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleService, RoleAdmin:
		return true
	}
	return false
}
