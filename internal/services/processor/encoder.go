package processor

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/chai2010/webp"
)

// gifPalette reserves index 0 for full transparency.
var gifPalette = append(color.Palette{color.RGBA{}}, palette.WebSafe...)

func encodeJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// pngCompressionLevel inverts quality onto zlib's 0-9 scale: quality 100 is
// level 0 (largest file), quality 1 is level 9.
func pngCompressionLevel(quality int) int {
	return int(math.Round(9 - float64(quality)/100*9))
}

func pngEncoderLevel(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

func encodePNG(w io.Writer, img image.Image, quality int) error {
	enc := &png.Encoder{CompressionLevel: pngEncoderLevel(pngCompressionLevel(quality))}
	return enc.Encode(w, img)
}

// encodeGIF ignores quality.
func encodeGIF(w io.Writer, img image.Image, _ int) error {
	bounds := img.Bounds()
	paletted := image.NewPaletted(bounds, gifPalette)
	draw.Draw(paletted, bounds, img, bounds.Min, draw.Src)
	return gif.Encode(w, paletted, &gif.Options{NumColors: len(gifPalette)})
}

func encodeWebP(w io.Writer, img image.Image, quality int) error {
	return webp.Encode(w, img, &webp.Options{Lossless: false, Quality: float32(quality)})
}
