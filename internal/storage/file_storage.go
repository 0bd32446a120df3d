package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Security errors
var (
	ErrPathTraversal = errors.New("path traversal detected")
	ErrFileNotFound  = errors.New("file not found")
	ErrFileTooLarge  = errors.New("file exceeds size limit")
	ErrNotImage      = errors.New("file extension is not an allowed image type")
)

// RecipeImageDir is the directory, relative to the media root, holding recipe images
const RecipeImageDir = "uploads/recipe"

// MaxFileSize is the maximum allowed image size (5 MB)
const MaxFileSize = 5 * 1024 * 1024

// ImageExtensions contains the file extensions accepted for recipe images
var ImageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
}

// ContentTypes maps image extensions to the content type they are served with
var ContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// FileStorage defines the interface for recipe image storage
type FileStorage interface {
	Save(filename string, content io.Reader) (string, error)
	Get(filePath string) (io.ReadCloser, error)
	Delete(filePath string) error
}

// localStorage implements FileStorage using local filesystem
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance rooted at basePath
func NewLocalStorage(basePath string) (FileStorage, error) {
	if err := os.MkdirAll(filepath.Join(basePath, filepath.FromSlash(RecipeImageDir)), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &localStorage{basePath: basePath}, nil
}

// Extension returns the text after the last dot of filename, or the whole
// name when it has no dot.
func Extension(filename string) string {
	parts := strings.Split(filename, ".")
	return parts[len(parts)-1]
}

// RecipeImagePath generates a fresh relative path for a recipe image:
// uploads/recipe/<uuid>.<ext>, keeping the extension of the given file name.
func RecipeImagePath(filename string) string {
	return path.Join(RecipeImageDir, fmt.Sprintf("%s.%s", uuid.New().String(), Extension(filename)))
}

// ContentType returns the content type for a stored image path
func ContentType(filePath string) string {
	if ct, ok := ContentTypes[strings.ToLower(Extension(filePath))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// validatePath ensures path is within basePath (prevents traversal)
func (s *localStorage) validatePath(filePath string) (string, error) {
	cleanPath := filepath.Clean(filePath)

	if filepath.IsAbs(cleanPath) || strings.Contains(cleanPath, ":") {
		return "", ErrPathTraversal
	}

	if strings.Contains(cleanPath, "..") {
		return "", ErrPathTraversal
	}

	fullPath := filepath.Join(s.basePath, cleanPath)

	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}

	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) &&
		absPath != absBase {
		return "", ErrPathTraversal
	}

	return absPath, nil
}

// ValidateFile checks the image extension and size
func ValidateFile(filename string, size int64) error {
	if !ImageExtensions[strings.ToLower(Extension(filename))] {
		return ErrNotImage
	}

	if size > MaxFileSize {
		return ErrFileTooLarge
	}

	return nil
}

// Save stores an image under a generated recipe image path and returns that
// path. At most MaxFileSize bytes are accepted.
func (s *localStorage) Save(filename string, content io.Reader) (string, error) {
	if err := ValidateFile(filename, 0); err != nil {
		return "", err
	}

	relPath := RecipeImagePath(filename)
	fullPath, err := s.validatePath(relPath)
	if err != nil {
		return "", err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	n, err := io.Copy(file, io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if n > MaxFileSize {
		os.Remove(fullPath)
		return "", ErrFileTooLarge
	}

	return relPath, nil
}

// Get retrieves a file by its path
func (s *localStorage) Get(filePath string) (io.ReadCloser, error) {
	fullPath, err := s.validatePath(filePath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a file by its path
func (s *localStorage) Delete(filePath string) error {
	fullPath, err := s.validatePath(filePath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			// already gone
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
