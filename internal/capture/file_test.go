package capture

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 0x8D, G: 0x55, B: 0x24, A: 0xFF})
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func writeJPEG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
	return path
}

func TestLoadFile_PNG(t *testing.T) {
	t.Parallel()

	path := writePNG(t, t.TempDir(), "selfie.png", 12, 8)
	img, err := LoadFile(path, stylist.SourceFile)
	require.NoError(t, err)

	assert.Equal(t, "selfie.png", img.Name)
	assert.Equal(t, "image/png", img.MIME)
	assert.Equal(t, stylist.SourceFile, img.Source)
	assert.Equal(t, 12, img.Width)
	assert.Equal(t, 8, img.Height)
	assert.True(t, strings.HasPrefix(img.DataURL, "data:image/png;base64,"))
	assert.False(t, img.Empty())
}

func TestLoadFile_JPEGWithoutExtension(t *testing.T) {
	t.Parallel()

	path := writeJPEG(t, t.TempDir(), "photo", 4, 4)
	img, err := LoadFile(path, stylist.SourceDrop)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIME)
	assert.Equal(t, stylist.SourceDrop, img.Source)
}

func TestLoadFile_NotImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("just some text, not pixels"), 0644))

	img, err := LoadFile(path, stylist.SourceFile)
	require.ErrorIs(t, err, ErrNotImage)
	assert.Nil(t, img)

	_, err = LoadFile(dir, stylist.SourceFile)
	require.ErrorIs(t, err, ErrNotImage)

	_, err = LoadFile(filepath.Join(dir, "missing.png"), stylist.SourceFile)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsImagePath(t *testing.T) {
	t.Parallel()

	assert.True(t, IsImagePath("a/b/C.JPG"))
	assert.True(t, IsImagePath("x.webp"))
	assert.False(t, IsImagePath("notes.txt"))
	assert.False(t, IsImagePath("noext"))
}

func TestNotImageLeavesWizardUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0644))

	w := stylist.NewWizard()
	require.NoError(t, w.Start())

	img, err := LoadFile(path, stylist.SourceFile)
	require.ErrorIs(t, err, ErrNotImage)
	if err == nil {
		_ = w.SetImage(img)
	}
	assert.Equal(t, stylist.PhaseUpload, w.Phase())
	assert.Nil(t, w.Image())
}
