package processor

import (
	"bytes"
	"fmt"

	"github.com/phambaophuc/resize-studio/internal/models"
)

type ImageProcessor struct {
	limits Limits
}

func NewImageProcessor() *ImageProcessor {
	return NewImageProcessorWithLimits(DefaultLimits())
}

// NewImageProcessorWithLimits uses the default for any non-positive limit.
func NewImageProcessorWithLimits(limits Limits) *ImageProcessor {
	return &ImageProcessor{limits: limits.withDefaults()}
}

// ProcessImage decodes data, resizes it to the requested dimensions and
// encodes it in the requested format. All failures are *models.ResizeError.
func (p *ImageProcessor) ProcessImage(data []byte, req *models.ResizeRequest) (*models.EncodedImage, error) {
	if err := ValidateRequest(req, p.limits); err != nil {
		return nil, err
	}

	source, err := DetectImage(data)
	if err != nil {
		return nil, err
	}

	cfg, err := source.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, models.NewResizeError(models.ErrUnsupportedFormat, "Uploaded file is not a valid image",
			fmt.Errorf("failed to read %s header: %w", source.MIMEType, err))
	}
	if err := validateSource(cfg.Width, cfg.Height, p.limits); err != nil {
		return nil, err
	}

	img, err := source.decode(bytes.NewReader(data))
	if err != nil {
		return nil, models.NewResizeError(models.ErrUnsupportedFormat, "Uploaded file is not a valid image",
			fmt.Errorf("failed to decode %s: %w", source.MIMEType, err))
	}

	target := source
	if req.Format != models.FormatOriginal {
		target, _ = CodecFor(req.Format)
	}

	resized := p.resizeImage(img, req.Width, req.Height, target.Transparent)

	buffer := &bytes.Buffer{}
	if err := target.encode(buffer, resized, req.Quality); err != nil {
		return nil, models.NewResizeError(models.ErrEncode, "Failed to encode resized image",
			fmt.Errorf("failed to encode %s: %w", target.MIMEType, err))
	}

	return &models.EncodedImage{
		Data:      buffer.Bytes(),
		MIMEType:  target.MIMEType,
		Extension: target.Extension,
		Width:     req.Width,
		Height:    req.Height,
	}, nil
}

// GetImageInfo returns the native dimensions and MIME type of an encoded image
// without decoding its pixels.
func (p *ImageProcessor) GetImageInfo(data []byte) (int, int, string, error) {
	codec, err := DetectImage(data)
	if err != nil {
		return 0, 0, "", err
	}

	cfg, err := codec.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", models.NewResizeError(models.ErrUnsupportedFormat, "Uploaded file is not a valid image", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, "", models.NewResizeError(models.ErrUnsupportedFormat, "Uploaded file is not a valid image",
			fmt.Errorf("empty image %dx%d", cfg.Width, cfg.Height))
	}

	return cfg.Width, cfg.Height, codec.MIMEType, nil
}
