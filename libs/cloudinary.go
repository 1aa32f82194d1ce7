package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"food-delivery/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	log "github.com/sirupsen/logrus"
)

var (
	ErrCloudinaryNotConfigured = errors.New("cloudinary credentials not configured")
	ErrFileTooLarge            = errors.New("file too large")
	ErrInvalidImageType        = errors.New("invalid file type. Only jpg, jpeg, png, gif, webp allowed")
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService prefers the separate credentials and falls back to
// CLOUDINARY_URL.
func NewCloudinaryService(c *config.Config) (*CloudinaryService, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != "":
		cld, err = cloudinary.NewFromParams(c.CloudinaryCloudName, c.CloudinaryAPIKey, c.CloudinaryAPISecret)
	case c.CloudinaryURL != "":
		cld, err = cloudinary.NewFromURL(c.CloudinaryURL)
	default:
		return nil, ErrCloudinaryNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

// ValidateImageFile checks the size limit and the file extension.
func ValidateImageFile(file *multipart.FileHeader, maxSize int64) error {
	if maxSize > 0 && file.Size > maxSize {
		return fmt.Errorf("%w (max %dMB)", ErrFileTooLarge, maxSize/(1024*1024))
	}
	if !allowedImageExts[strings.ToLower(filepath.Ext(file.Filename))] {
		return ErrInvalidImageType
	}
	return nil
}

func publicIDFor(filename, folder string, at time.Time) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return fmt.Sprintf("%s/%d_%s", folder, at.Unix(), strings.ReplaceAll(base, " ", "_"))
}

func (s *CloudinaryService) UploadImage(ctx context.Context, file io.Reader, filename, folder string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicIDFor(filename, folder, time.Now()),
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if resp == nil {
		return "", errors.New("cloudinary response is nil")
	}

	if resp.SecureURL == "" {
		if resp.URL != "" {
			return resp.URL, nil
		}
		return "", errors.New("cloudinary returned no URL")
	}

	log.WithFields(log.Fields{"public_id": resp.PublicID, "folder": folder}).Info("Image uploaded")
	return resp.SecureURL, nil
}

func (s *CloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	if result.Result != "ok" {
		return fmt.Errorf("cloudinary deletion failed: %s", result.Result)
	}
	return nil
}
