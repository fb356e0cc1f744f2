package processor

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var (
	transparentBackground = color.NRGBA{}
	opaqueBackground      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// resizeImage resamples img to exactly width x height with Lanczos and
// composites the result over a fresh canvas of the target codec's background.
func (p *ImageProcessor) resizeImage(img image.Image, width, height int, transparent bool) *image.NRGBA {
	background := opaqueBackground
	if transparent {
		background = transparentBackground
	}

	canvas := imaging.New(width, height, background)
	resized := imaging.Resize(img, width, height, imaging.Lanczos)
	return imaging.Overlay(canvas, resized, image.Pt(0, 0), 1.0)
}
