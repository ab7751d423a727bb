package storage

import (
	"context"
	"io"
)

// Logical folders for uploaded files.
const (
	FolderProfiles = "profiles"
	FolderServices = "services"
	FolderSlips    = "payment-slips"
)

// StorageService defines the interface for blob store operations. Uploads
// return a public URL; Delete removes by the path returned at upload time.
type StorageService interface {
	Upload(ctx context.Context, folder, name string, data io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
