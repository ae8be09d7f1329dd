// Package transform computes image placement within a video canvas.
package transform

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions marks non-positive image dimensions.
var ErrInvalidDimensions = errors.New("invalid image dimensions")

// Placement is the uniform scale and vertical offset that fit an image
// within the canvas. Zoom is a percentage where 100 means original size.
type Placement struct {
	Zoom float64
	Y    float64
}

// Fit scales an image so it fits inside the canvas minus a side margin on
// each axis and a fixed-height bottom strip (captions, voice waveform). The
// aspect ratio is preserved: the smaller of the two axis-limited scale
// factors wins. The image is shifted up by half the bottom margin so it
// clears the strip.
func Fit(imageWidth, imageHeight, canvasWidth, canvasHeight, bottomMargin, sideMargin int) (Placement, error) {
	if imageWidth <= 0 || imageHeight <= 0 {
		return Placement{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, imageWidth, imageHeight)
	}

	widthZoom := float64(canvasWidth-sideMargin) / float64(imageWidth)
	heightZoom := float64(canvasHeight-sideMargin-bottomMargin) / float64(imageHeight)
	zoom := 100 * min(widthZoom, heightZoom)

	scaledWidth := zoom * float64(imageWidth) / 100
	scaledHeight := zoom * float64(imageHeight) / 100
	if scaledHeight >= float64(canvasHeight-bottomMargin) || scaledWidth >= float64(canvasWidth) {
		return Placement{}, fmt.Errorf("%w: image %dx%d does not fit canvas %dx%d with margins %d/%d",
			ErrInvalidDimensions, imageWidth, imageHeight, canvasWidth, canvasHeight, bottomMargin, sideMargin)
	}

	return Placement{
		Zoom: zoom,
		Y:    -float64(bottomMargin) / 2,
	}, nil
}
