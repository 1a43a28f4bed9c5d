package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yatube/yatube/internal/pkg/logger"
)

// LocalStorage saves uploaded files under a directory on the local
// filesystem and hands out the public paths they are served from.
type LocalStorage struct {
	basePath string
	baseURL  string // prepended to returned paths when set
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory when it does not exist yet.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFileWithPath stores an uploaded file under subPath and returns the
// path clients use to fetch it. A nil fileHeader is a no-op.
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dir := ls.basePath
	if subPath != "" {
		dir = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	// Stored names are random so uploads never collide or overwrite
	name := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("savedAs", name).Msg("File saved")
	return ls.accessiblePath(subPath, name), nil
}

// SaveFile saves an uploaded file directly under the storage root.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return ls.SaveFileWithPath(fileHeader, "")
}

// accessiblePath builds the public path for a stored file.
func (ls *LocalStorage) accessiblePath(subPath, name string) string {
	parts := []string{name}
	if subPath != "" {
		parts = []string{subPath, name}
	}
	if ls.baseURL != "" {
		return strings.TrimRight(ls.baseURL, "/") + "/" + strings.Join(parts, "/")
	}
	return filepath.Join(append([]string{"media"}, parts...)...)
}

// relativePath maps a stored file path or URL (e.g. /media/posts/name.jpg)
// back to the path relative to the storage root. Returns "" for paths that
// escape the root.
func (ls *LocalStorage) relativePath(filePath string) string {
	p := filePath
	if ls.baseURL != "" {
		p = strings.TrimPrefix(p, strings.TrimRight(ls.baseURL, "/")+"/")
	}
	p = strings.TrimPrefix(p, "media/")
	p = strings.TrimPrefix(p, "/")

	if p == "" || p == "." || strings.Contains(p, "..") {
		return ""
	}

	return filepath.FromSlash(p)
}

// DeleteFile removes a stored file given the path recorded in the
// database. Deleting a file that is already gone is not an error.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	relPath := ls.relativePath(filePath)
	if relPath == "" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	physicalPath := filepath.Join(ls.basePath, relPath)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// GetFullPath returns the filesystem path behind a stored file URL, or ""
// when the URL does not map into the storage root.
func (ls *LocalStorage) GetFullPath(fileURL string) string {
	relPath := ls.relativePath(fileURL)
	if relPath == "" {
		return ""
	}

	return filepath.Join(ls.basePath, relPath)
}
