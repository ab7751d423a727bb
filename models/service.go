package models

import "time"

// Service represents a bookable pet-care service offering.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description" json:"description"`
	Price           float64   `bson:"price" json:"price"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Category        string    `bson:"category" json:"category"`
	ImageURL        string    `bson:"imageUrl" json:"imageUrl"`
	IsActive        bool      `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ServiceSummary is the projection embedded in admin booking/payment views.
type ServiceSummary struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

// Summary returns the lightweight projection of the service.
func (s *Service) Summary() ServiceSummary {
	return ServiceSummary{ID: s.ID, Name: s.Name, Price: s.Price}
}
