// internal/adapters/storage/s3_test.go
package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/warehouse-be/internal/adapters/storage"
	"github.com/ammerola/warehouse-be/internal/pkg/config"
	"github.com/ammerola/warehouse-be/test/helpers"
)

// fakeS3 answers the handful of path style calls the adapter makes
type fakeS3 struct {
	mu       sync.Mutex
	exists   bool
	calls    []string
	objects  map[string]string
	ctypes   map[string]string
	failHead bool
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)

	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	switch {
	case r.Method == http.MethodHead && key == "":
		if f.failHead {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if !f.exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
	case r.Method == http.MethodPut && key == "":
		f.exists = true
		w.Header().Set("Location", "/"+bucket)
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = string(body)
		f.ctypes[key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"abc"`)
	case r.Method == http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newFakeS3(t *testing.T, exists bool) (*fakeS3, config.AWSConfig) {
	t.Helper()
	fake := &fakeS3{exists: exists, objects: map[string]string{}, ctypes: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	return fake, config.AWSConfig{
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		S3Bucket:        "warehouse-photos",
		S3Endpoint:      srv.URL,
		UsePathStyle:    true,
		S3PublicURL:     "https://cdn.example.com/photos/",
	}
}

func TestS3Storage_CreatesMissingBucket(t *testing.T) {
	fake, cfg := newFakeS3(t, false)

	_, err := storage.NewS3Storage(context.Background(), cfg, helpers.TestLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"HEAD /warehouse-photos", "PUT /warehouse-photos"}, fake.calls)
}

func TestS3Storage_UnreachableBucket(t *testing.T) {
	fake, cfg := newFakeS3(t, true)
	fake.failHead = true

	_, err := storage.NewS3Storage(context.Background(), cfg, helpers.TestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach bucket")
	assert.Len(t, fake.calls, 1, "no create attempt on access errors")
}

func TestS3Storage_UploadAndDelete(t *testing.T) {
	ctx := context.Background()
	fake, cfg := newFakeS3(t, true)

	s, err := storage.NewS3Storage(ctx, cfg, helpers.TestLogger())
	require.NoError(t, err)
	require.NoError(t, s.Ping(ctx))

	url, err := s.Upload(ctx, "items/INV-001/front view.jpg", strings.NewReader("jpeg-bytes"), "")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/photos/items/INV-001/front%20view.jpg", url)
	assert.Contains(t, fake.objects["items/INV-001/front view.jpg"], "jpeg-bytes")
	assert.Equal(t, "image/jpeg", fake.ctypes["items/INV-001/front view.jpg"])

	require.NoError(t, s.Delete(ctx, "items/INV-001/front view.jpg"))
	assert.NotContains(t, fake.objects, "items/INV-001/front view.jpg")
}
