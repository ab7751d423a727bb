// Package catalog manages the pet-care service offerings customers book.
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"time"

	serviceRepo "petcare/database/repository/service"
	"petcare/models"
	"petcare/services/storage"
	"petcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceInput carries the catalog fields for create/update operations.
type ServiceInput struct {
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	Category        string
	IsActive        *bool
	Image           []byte
	ImageTyp        string
}

// CatalogService owns the service catalog.
type CatalogService interface {
	// List returns active services; admins additionally see inactive ones.
	List(actor models.Actor) ([]models.Service, error)
	GetByID(id string) (*models.Service, error)
	Create(actor models.Actor, input ServiceInput) (*models.Service, error)
	Update(actor models.Actor, id string, input ServiceInput) (*models.Service, error)
	Delete(actor models.Actor, id string) error
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo    serviceRepo.ServiceRepository
	Storage storage.StorageService
}

// List returns the catalog; non-admin callers only see active services.
func (s *DefaultCatalogService) List(actor models.Actor) ([]models.Service, error) {
	activeOnly := actor.Role != models.RoleAdmin
	return s.Repo.GetAll(activeOnly)
}

// GetByID retrieves a single service.
func (s *DefaultCatalogService) GetByID(id string) (*models.Service, error) {
	return s.Repo.GetByID(id)
}

// Create adds a new service to the catalog. Admin only.
func (s *DefaultCatalogService) Create(actor models.Actor, input ServiceInput) (*models.Service, error) {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Name == "" || input.Description == "" || input.Category == "" {
		return nil, utils.Validationf("name, description, price, duration, category are required")
	}
	if input.Price <= 0 || input.DurationMinutes <= 0 {
		return nil, utils.Validationf("price and duration must be positive")
	}
	if len(input.Image) == 0 {
		return nil, utils.Validationf("image file is required")
	}

	svc := &models.Service{
		ID:              uuid.New().String(),
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		Category:        input.Category,
		IsActive:        true,
	}
	url, err := s.uploadImage(svc.ID, input.Image, input.ImageTyp)
	if err != nil {
		return nil, err
	}
	svc.ImageURL = url

	if err := s.Repo.Create(svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	utils.GetLogger().Info("Service created", zap.String("serviceID", svc.ID))
	return svc, nil
}

// Update modifies an existing catalog entry. Admin only.
func (s *DefaultCatalogService) Update(actor models.Actor, id string, input ServiceInput) (*models.Service, error) {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return nil, err
	}

	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		svc.Name = input.Name
	}
	if input.Description != "" {
		svc.Description = input.Description
	}
	if input.Price > 0 {
		svc.Price = input.Price
	}
	if input.DurationMinutes > 0 {
		svc.DurationMinutes = input.DurationMinutes
	}
	if input.Category != "" {
		svc.Category = input.Category
	}
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}
	if len(input.Image) > 0 {
		url, err := s.uploadImage(svc.ID, input.Image, input.ImageTyp)
		if err != nil {
			return nil, err
		}
		svc.ImageURL = url
	}

	if err := s.Repo.Update(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Delete removes a catalog entry. Admin only.
func (s *DefaultCatalogService) Delete(actor models.Actor, id string) error {
	if err := utils.RequireRole(actor.Role, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	utils.GetLogger().Info("Service deleted", zap.String("serviceID", id))
	return nil
}

func (s *DefaultCatalogService) uploadImage(serviceID string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := fmt.Sprintf("%s-%d", serviceID, time.Now().UnixMilli())
	url, err := s.Storage.Upload(ctx, storage.FolderServices, name, bytes.NewReader(data), contentType)
	if err != nil {
		return "", fmt.Errorf("upload service image: %w", err)
	}
	return url, nil
}
