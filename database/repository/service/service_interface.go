package serviceRepo

import "petcare/models"

// ServiceRepository abstracts persistence for the service catalog.
type ServiceRepository interface {
	Create(svc *models.Service) error
	Update(svc *models.Service) error
	Delete(id string) error
	GetByID(id string) (*models.Service, error)
	// GetAll returns every service; activeOnly restricts to isActive=true
	// (the listing non-admin callers see).
	GetAll(activeOnly bool) ([]models.Service, error)
}
