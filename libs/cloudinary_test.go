package libs

import (
	"mime/multipart"
	"testing"
	"time"

	"food-delivery/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImageFile(t *testing.T) {
	const maxSize = 5 * 1024 * 1024

	assert.NoError(t, ValidateImageFile(&multipart.FileHeader{Filename: "photo.JPG", Size: 1024}, maxSize))
	assert.NoError(t, ValidateImageFile(&multipart.FileHeader{Filename: "menu.webp", Size: maxSize}, maxSize))

	err := ValidateImageFile(&multipart.FileHeader{Filename: "photo.png", Size: maxSize + 1}, maxSize)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Contains(t, err.Error(), "max 5MB")

	assert.ErrorIs(t, ValidateImageFile(&multipart.FileHeader{Filename: "script.exe", Size: 10}, maxSize), ErrInvalidImageType)
	assert.ErrorIs(t, ValidateImageFile(&multipart.FileHeader{Filename: "noext", Size: 10}, maxSize), ErrInvalidImageType)
}

func TestPublicIDFor(t *testing.T) {
	at := time.Unix(1700000000, 0)
	assert.Equal(t, "restaurants/10/menu/1700000000_spicy_rice_cake", publicIDFor("spicy rice cake.png", "restaurants/10/menu", at))
}

func TestNewCloudinaryServiceRequiresCredentials(t *testing.T) {
	_, err := NewCloudinaryService(&config.Config{})
	assert.ErrorIs(t, err, ErrCloudinaryNotConfigured)

	svc, err := NewCloudinaryService(&config.Config{
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
	})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
