package processor

import (
	"fmt"
	"strings"

	"github.com/phambaophuc/resize-studio/internal/models"
	"github.com/phambaophuc/resize-studio/pkg/utils"
)

const (
	MinQuality = 1
	MaxQuality = 100
)

// Limits bound the pixel buffers a single request may allocate.
type Limits struct {
	// MaxDimension caps the target width and height.
	MaxDimension int
	// MaxPixels caps width*height of both the source and the target.
	MaxPixels int64
}

const (
	DefaultMaxDimension       = 10000
	DefaultMaxPixels    int64 = 50_000_000
)

func DefaultLimits() Limits {
	return Limits{MaxDimension: DefaultMaxDimension, MaxPixels: DefaultMaxPixels}
}

func (l Limits) withDefaults() Limits {
	if l.MaxDimension <= 0 {
		l.MaxDimension = DefaultMaxDimension
	}
	if l.MaxPixels <= 0 {
		l.MaxPixels = DefaultMaxPixels
	}
	return l
}

// ValidateRequest checks the numeric parameters of a resize request.
func ValidateRequest(req *models.ResizeRequest, limits Limits) error {
	if req.Width <= 0 || req.Height <= 0 {
		return models.NewResizeError(models.ErrInvalidDimensions, "Invalid dimensions",
			fmt.Errorf("width %d, height %d", req.Width, req.Height))
	}
	// Dimensions are bounded before they are multiplied.
	if req.Width > limits.MaxDimension || req.Height > limits.MaxDimension ||
		int64(req.Width)*int64(req.Height) > limits.MaxPixels {
		return models.NewResizeError(models.ErrInvalidDimensions, "Invalid dimensions",
			fmt.Errorf("target %dx%d exceeds %d px per side or %d px total",
				req.Width, req.Height, limits.MaxDimension, limits.MaxPixels))
	}
	if req.Quality < MinQuality || req.Quality > MaxQuality {
		return models.NewResizeError(models.ErrInvalidQuality, "Invalid quality value",
			fmt.Errorf("quality %d outside [%d,%d]", req.Quality, MinQuality, MaxQuality))
	}
	if req.Format != models.FormatOriginal {
		if _, ok := CodecFor(req.Format); !ok {
			return models.NewResizeError(models.ErrUnsupportedFormat, "Unsupported output format",
				fmt.Errorf("format %q", req.Format))
		}
	}
	return nil
}

// validateSource rejects sources whose decoded buffer would exceed the pixel
// budget. Header sizes are untrusted.
func validateSource(width, height int, limits Limits) error {
	if width <= 0 || height <= 0 {
		return models.NewResizeError(models.ErrUnsupportedFormat, "Uploaded file is not a valid image",
			fmt.Errorf("source %dx%d", width, height))
	}
	if int64(width)*int64(height) > limits.MaxPixels {
		return models.NewResizeError(models.ErrInvalidDimensions, "Uploaded image dimensions are too large",
			fmt.Errorf("source %dx%d exceeds %d px", width, height, limits.MaxPixels))
	}
	return nil
}

// DetectImage sniffs the container format of data. The declared MIME type of
// an upload is never trusted.
func DetectImage(data []byte) (Codec, error) {
	mimeType := utils.DetectImageType(data)

	if !strings.HasPrefix(mimeType, "image/") {
		return Codec{}, models.NewResizeError(models.ErrUnsupportedFormat, "Uploaded file is not a valid image",
			fmt.Errorf("detected %s", mimeType))
	}

	codec, ok := codecForMIME(mimeType)
	if !ok {
		return Codec{}, models.NewResizeError(models.ErrUnsupportedFormat, "Unsupported image format",
			fmt.Errorf("detected %s", mimeType))
	}
	return codec, nil
}
