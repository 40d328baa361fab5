// Package storage uploads accommodation images to Cloudinary. The upload is
// a black box to the rest of the console; listings only keep the returned URL.
package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"stayadmin/config"
)

const uploadFolder = "accommodations"

// StorageService uploads listing images and returns their public URL.
type StorageService interface {
	UploadImage(ctx context.Context, localFilePath string) (string, error)
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage builds the storage service from the app configuration.
func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("storage: cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

// UploadImage pushes the file into the accommodations folder and returns the
// secure URL to store on the listing.
func (s *CloudinaryStorage) UploadImage(ctx context.Context, localFilePath string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{Folder: uploadFolder})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage: upload returned no URL")
	}
	return result.SecureURL, nil
}
