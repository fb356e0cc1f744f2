package models

import (
	"fmt"
	"strings"
)

// OutputFormat is the requested encoding of the resized image.
type OutputFormat string

const (
	FormatOriginal OutputFormat = "original"
	FormatJPEG     OutputFormat = "jpeg"
	FormatPNG      OutputFormat = "png"
	FormatGIF      OutputFormat = "gif"
	FormatWebP     OutputFormat = "webp"
)

// OutputFormats lists every accepted value of the format field.
var OutputFormats = []OutputFormat{FormatOriginal, FormatJPEG, FormatPNG, FormatGIF, FormatWebP}

// ParseOutputFormat maps a form value onto an OutputFormat. An empty value
// means FormatOriginal.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FormatOriginal):
		return FormatOriginal, nil
	case string(FormatJPEG), "jpg":
		return FormatJPEG, nil
	case string(FormatPNG):
		return FormatPNG, nil
	case string(FormatGIF):
		return FormatGIF, nil
	case string(FormatWebP):
		return FormatWebP, nil
	}
	return "", fmt.Errorf("unknown output format %q", value)
}

type ResizeRequest struct {
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Quality int          `json:"quality"`
	Format  OutputFormat `json:"format"`
}

// EncodedImage is the in-memory output of the processor.
type EncodedImage struct {
	Data      []byte
	MIMEType  string
	Extension string
	Width     int
	Height    int
}

// ResizeResult describes a persisted resized image.
type ResizeResult struct {
	StoragePath     string
	Width           int
	Height          int
	ByteSize        int64
	FormatExtension string
}

// ResizeResponse is the success body of POST /resize.
type ResizeResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileSize int64  `json:"fileSize"`
	Format   string `json:"format"`
}

func NewResizeResponse(result *ResizeResult) ResizeResponse {
	return ResizeResponse{
		Success:  true,
		ImageURL: result.StoragePath,
		Width:    result.Width,
		Height:   result.Height,
		FileSize: result.ByteSize,
		Format:   result.FormatExtension,
	}
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
