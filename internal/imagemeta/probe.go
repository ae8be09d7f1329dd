// Package imagemeta looks up pixel dimensions of image files.
package imagemeta

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	// Registered decoders cover the formats the editor accepts for stills.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

var (
	// ErrImageNotFound marks a missing image file.
	ErrImageNotFound = errors.New("image not found")
	// ErrImageDecode marks an unreadable or unsupported image file.
	ErrImageDecode = errors.New("image decode failed")
)

// Dimensions is an image's size in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// Probe reads just enough of the file to determine its pixel dimensions.
func Probe(path string) (Dimensions, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Dimensions{}, fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
		return Dimensions{}, fmt.Errorf("open image %s: %w", path, err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
