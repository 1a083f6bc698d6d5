// internal/adapters/storage/local.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// LocalStorage keeps objects on the local filesystem. It is used in
// development and tests when no bucket is configured.
type LocalStorage struct {
	basePath string
	baseURL  string
	logger   *slog.Logger
}

var _ ports.ObjectStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a new local storage client rooted at basePath
func NewLocalStorage(basePath, baseURL string, logger *slog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger.With(slog.String("storage", "local")),
	}, nil
}

// Upload writes the object and returns its URL under baseURL
func (l *LocalStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	path, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	tmp := f.Name()

	n, err := io.Copy(f, data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	l.logger.InfoContext(ctx, "file stored",
		slog.String("key", key),
		slog.Int64("bytes", n))

	return l.baseURL + "/" + filepath.ToSlash(key), nil
}

// Delete removes the object; a missing object is not an error
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	l.logger.InfoContext(ctx, "file deleted", slog.String("key", key))
	return nil
}

// Root returns the directory objects are stored under
func (l *LocalStorage) Root() string {
	return l.basePath
}

// resolve maps a key to a path and refuses keys that escape the root
func (l *LocalStorage) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(l.basePath, clean), nil
}
