// internal/adapters/imaging/processor.go
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"net/http"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/ammerola/warehouse-be/internal/core/ports"
)

const (
	// DefaultMaxDimension is the longest side of a stored photo
	DefaultMaxDimension = 1024
	// JPEGQuality is the re-encoding quality
	JPEGQuality = 85
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Processor downscales uploaded photos and re-encodes them as JPEG
type Processor struct {
	maxDimension int
	maxBytes     int64
}

var _ ports.ImageProcessor = (*Processor)(nil)

// NewProcessor creates an image processor. maxBytes of 0 disables the size
// limit.
func NewProcessor(maxDimension int, maxBytes int64) *Processor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Processor{maxDimension: maxDimension, maxBytes: maxBytes}
}

// Process sniffs the format from the bytes, downscales so neither side
// exceeds the maximum and returns JPEG data
func (p *Processor) Process(r io.Reader) ([]byte, error) {
	if p.maxBytes > 0 {
		r = io.LimitReader(r, p.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if p.maxBytes > 0 && int64(len(data)) > p.maxBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", p.maxBytes)
	}

	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = Downscale(img, p.maxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// Downscale resizes img with Catmull-Rom so neither side exceeds maxDim,
// preserving the aspect ratio. Smaller images are returned unchanged.
func Downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}
	newW = max(newW, 1)
	newH = max(newH, 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
