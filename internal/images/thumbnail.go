// Package images stores profile pictures as small thumbnails.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// ThumbnailSize is the bound, in pixels, of both sides of a stored picture.
const ThumbnailSize = 125

// MaxSourceSide is the largest width or height accepted for an upload. The
// header is checked before any pixel buffer is allocated.
const MaxSourceSide = 8000

// ErrDecode marks an upload that is not a decodable JPEG or PNG.
var ErrDecode = errors.New("images: cannot decode picture")

type Saver struct {
	Dir string
}

func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("images: create %s: %w", dir, err)
	}
	return &Saver{Dir: dir}, nil
}

// Save decodes src, shrinks it to fit ThumbnailSize×ThumbnailSize and writes
// it under a fresh random name that keeps the extension of originalName.
// It returns the stored file name.
func (s *Saver) Save(src io.Reader, originalName string) (string, error) {
	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(src, &header))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width > MaxSourceSide || cfg.Height > MaxSourceSide {
		return "", fmt.Errorf("%w: %dx%d exceeds %d pixels per side", ErrDecode, cfg.Width, cfg.Height, MaxSourceSide)
	}

	img, format, err := image.Decode(io.MultiReader(&header, src))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext

	f, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("images: create file: %w", err)
	}

	thumb := Thumbnail(img, ThumbnailSize, ThumbnailSize)
	if err := encode(f, thumb, ext, format); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("images: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("images: write: %w", err)
	}
	return name, nil
}

// Remove deletes a stored picture. A missing file is not an error.
func (s *Saver) Remove(name string) error {
	err := os.Remove(filepath.Join(s.Dir, filepath.Base(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Thumbnail scales img down to fit within maxW×maxH, keeping its aspect
// ratio. Images already inside the bound are returned unchanged.
func Thumbnail(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	// pick the tighter axis; integer math avoids overshooting the bound
	nw, nh := maxW, h*maxW/w
	if nh > maxH {
		nw, nh = w*maxH/h, maxH
	}
	nw, nh = max(nw, 1), max(nh, 1)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func encode(w io.Writer, img image.Image, ext, format string) error {
	switch {
	case ext == ".png", ext == "" && format == "png":
		return png.Encode(w, img)
	default:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	}
}
