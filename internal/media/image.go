// Package media re-encodes uploaded images into bounded-size JPEG buffers
// before they hit the database.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"

	"github.com/disintegration/imaging"
)

const (
	// MaxUploadBytes caps the raw upload before any decode is attempted.
	MaxUploadBytes = 5 << 20

	maxWidth    = 800
	jpegQuality = 80
)

// ErrUnsupportedImage means the bytes could not be decoded as an image.
var ErrUnsupportedImage = errors.New("unsupported or corrupt image")

// transformSlots bounds concurrent transforms; decoding and resizing are
// CPU-bound and would otherwise fan out with request concurrency.
var transformSlots = make(chan struct{}, runtime.GOMAXPROCS(0))

// Process decodes raw upload bytes, resizes to at most maxWidth (never
// upscaling) and re-encodes as JPEG at the fixed quality.
func Process(raw []byte) ([]byte, error) {
	transformSlots <- struct{}{}
	defer func() { <-transformSlots }()

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
