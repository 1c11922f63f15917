// Package capture acquires photos for the wizard from files, terminal
// drops and camera devices.
package capture

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/stylist"
)

// MaxImageSize bounds how much of a file is read into memory.
const MaxImageSize = 20 << 20

var (
	// ErrNotImage means the file is not an image. Callers ignore it silently.
	ErrNotImage = errors.New("not an image")
	// ErrTooLarge means the file exceeds MaxImageSize.
	ErrTooLarge = errors.New("image too large")
)

// IsImagePath reports whether path has an extension commonly used for
// images. It is a cheap pre-filter for pickers; LoadFile sniffs content.
func IsImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp":
		return true
	}
	return false
}

// LoadFile reads one image file into a CapturedImage.
func LoadFile(path string, source stylist.Source) (*stylist.CapturedImage, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, ErrNotImage)
	}
	if info.Size() > MaxImageSize {
		return nil, fmt.Errorf("%s is %d bytes: %w", path, info.Size(), ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	img, err := Encode(data, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	img.Name = filepath.Base(path)
	logger.Debug("loaded %s image %s (%dx%d, %d bytes)", img.MIME, img.Name, img.Width, img.Height, img.Size)
	return img, nil
}

// Encode sniffs data and wraps it as a data URL.
func Encode(data []byte, source stylist.Source) (*stylist.CapturedImage, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}

	img := &stylist.CapturedImage{
		MIME:    mime,
		DataURL: DataURL(mime, data),
		Source:  source,
		Size:    len(data),
	}
	// Dimensions are best effort; formats without a registered decoder
	// (webp, bmp) keep zero.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width, img.Height = cfg.Width, cfg.Height
	}
	return img, nil
}

// DataURL encodes data as an RFC 2397 base64 data URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
