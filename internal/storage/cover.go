package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// MaxCoverBytes bounds the uploaded cover before decoding.
	MaxCoverBytes = 5 << 20
	// CoverMaxWidth is the width covers are downscaled to.
	CoverMaxWidth = 1280

	CoverContentType = "image/jpeg"
)

// ErrNotImage is returned for covers that are not a decodable image.
var ErrNotImage = errors.New("cover is not a supported image")

// ErrCoverTooLarge is returned when the upload exceeds MaxCoverBytes.
var ErrCoverTooLarge = errors.New("cover exceeds maximum size")

// NormalizeCover sniffs src, decodes it, downscales it to CoverMaxWidth and
// re-encodes it as JPEG.
func NormalizeCover(src io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(src, MaxCoverBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading cover: %w", err)
	}
	if len(raw) > MaxCoverBytes {
		return nil, ErrCoverTooLarge
	}

	mt := mimetype.Detect(raw)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if img.Bounds().Dx() > CoverMaxWidth {
		img = imaging.Resize(img, CoverMaxWidth, 0, imaging.Lanczos)
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encoding cover: %w", err)
	}
	return out.Bytes(), nil
}

// NewCoverKey returns a fresh object key for a normalized cover.
func NewCoverKey() string {
	return "covers/" + uuid.NewString() + ".jpg"
}
