package filestorage

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// ErrUnsupportedImage is returned when an uploaded file does not carry one
// of the accepted image extensions.
var ErrUnsupportedImage = errors.New("unsupported image format")

// allowedImageExtensions lists the extensions accepted for post images.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file and returns the accessible path where it was stored
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}

// ValidateImageExtension checks that the uploaded filename carries an
// accepted image extension.
func ValidateImageExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return ErrUnsupportedImage
	}
	return nil
}
