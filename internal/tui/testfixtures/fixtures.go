package testfixtures

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/stylist"
)

// Fixed test values for consistent assertions
var (
	FixedTime = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
)

// ExamplePreferences is the scenario used throughout the tests:
// female / classic / work / mid.
var ExamplePreferences = stylist.Preferences{
	Gender:   "female",
	Style:    "classic",
	Occasion: "work",
	Budget:   "mid",
}

// FastTask returns a progress config that finishes in milliseconds.
func FastTask() stylist.TaskConfig {
	return stylist.TaskConfig{
		Interval: time.Millisecond,
		Step:     14.3,
		Settle:   time.Millisecond,
	}
}

// Catalog returns the embedded catalog.
func Catalog() *catalog.Catalog {
	return catalog.Default()
}

// TestImage returns a small in-memory image.
func TestImage(source stylist.Source) *stylist.CapturedImage {
	return &stylist.CapturedImage{
		Name:    "selfie.png",
		MIME:    "image/png",
		DataURL: "data:image/png;base64,iVBORw0KGgo=",
		Source:  source,
		Width:   4,
		Height:  3,
		Size:    8,
	}
}

// PNG encodes a width×height image.
func PNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 0x8d, G: 0x55, B: 0x24, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

// WritePNG writes a 4×3 PNG named name into dir and returns its path.
func WritePNG(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, PNG(t, 4, 3), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// WriteText writes a non-image file and returns its path.
func WriteText(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
