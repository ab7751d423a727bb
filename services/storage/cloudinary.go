package storage

import (
	"context"
	"fmt"
	"io"

	"petcare/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements StorageService using Cloudinary.
type CloudinaryStorageService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorageService initializes a Cloudinary-backed storage
// service from the application configuration.
func NewCloudinaryStorageService() (*CloudinaryStorageService, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld}, nil
}

// Upload stores the file under folder/name and returns its public URL.
func (s *CloudinaryStorageService) Upload(ctx context.Context, folder, name string, data io.Reader, contentType string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		Folder:   folder,
		PublicID: name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", folder, name, err)
	}
	return resp.SecureURL, nil
}

// Delete removes an uploaded file by its public ID.
func (s *CloudinaryStorageService) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", publicID, err)
	}
	return nil
}
