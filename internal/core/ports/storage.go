// internal/core/ports/storage.go
package ports

import (
	"context"
	"io"
)

// ObjectStorage stores binary objects such as item photos
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ImageProcessor normalizes uploaded images before storage
type ImageProcessor interface {
	Process(r io.Reader) ([]byte, error)
}
