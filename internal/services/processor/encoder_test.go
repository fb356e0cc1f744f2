package processor

import (
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPNGCompressionLevel(t *testing.T) {
	cases := map[int]int{
		100: 0,
		90:  1,
		80:  2,
		50:  5,
		1:   9,
	}
	for quality, level := range cases {
		assert.Equal(t, level, pngCompressionLevel(quality), "quality %d", quality)
	}
}

func TestPNGEncoderLevel(t *testing.T) {
	assert.Equal(t, png.NoCompression, pngEncoderLevel(0))
	assert.Equal(t, png.BestSpeed, pngEncoderLevel(2))
	assert.Equal(t, png.DefaultCompression, pngEncoderLevel(5))
	assert.Equal(t, png.BestCompression, pngEncoderLevel(9))
}

func TestGIFPaletteReservesTransparency(t *testing.T) {
	_, _, _, a := gifPalette[0].RGBA()
	assert.Zero(t, a)
	assert.LessOrEqual(t, len(gifPalette), 256)
}
