package processor

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/phambaophuc/resize-studio/internal/models"
	"golang.org/x/image/webp"
)

// Codec binds one raster format to its decoder, encoder and quality semantics.
type Codec struct {
	Format    models.OutputFormat
	MIMEType  string
	Extension string
	// Transparent codecs get a fully transparent canvas; the others are
	// flattened onto opaque white.
	Transparent bool

	decode       func(io.Reader) (image.Image, error)
	decodeConfig func(io.Reader) (image.Config, error)
	encode       func(w io.Writer, img image.Image, quality int) error
}

var codecs = map[models.OutputFormat]Codec{
	models.FormatJPEG: {
		Format:       models.FormatJPEG,
		MIMEType:     "image/jpeg",
		Extension:    "jpg",
		decode:       jpeg.Decode,
		decodeConfig: jpeg.DecodeConfig,
		encode:       encodeJPEG,
	},
	models.FormatPNG: {
		Format:       models.FormatPNG,
		MIMEType:     "image/png",
		Extension:    "png",
		Transparent:  true,
		decode:       png.Decode,
		decodeConfig: png.DecodeConfig,
		encode:       encodePNG,
	},
	models.FormatGIF: {
		Format:       models.FormatGIF,
		MIMEType:     "image/gif",
		Extension:    "gif",
		Transparent:  true,
		decode:       gif.Decode,
		decodeConfig: gif.DecodeConfig,
		encode:       encodeGIF,
	},
	models.FormatWebP: {
		Format:       models.FormatWebP,
		MIMEType:     "image/webp",
		Extension:    "webp",
		decode:       webp.Decode,
		decodeConfig: webp.DecodeConfig,
		encode:       encodeWebP,
	},
}

// CodecFor returns the codec of a concrete output format. FormatOriginal has
// no codec of its own.
func CodecFor(format models.OutputFormat) (Codec, bool) {
	c, ok := codecs[format]
	return c, ok
}

func codecForMIME(mimeType string) (Codec, bool) {
	for _, c := range codecs {
		if c.MIMEType == mimeType {
			return c, true
		}
	}
	return Codec{}, false
}

// DecodeConfig reads only the header of an encoded image.
func (c Codec) DecodeConfig(r io.Reader) (image.Config, error) {
	return c.decodeConfig(r)
}
