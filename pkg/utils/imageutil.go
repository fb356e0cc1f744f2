package utils

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// IDGenerator yields unique identifiers for stored artifacts.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// IDGeneratorFunc adapts a plain function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string {
	return f()
}

// IsValidImageType checks if content type is a supported image type
func IsValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	}

	ct := strings.ToLower(contentType)
	for _, validType := range validTypes {
		if strings.HasPrefix(ct, validType) {
			return true
		}
	}
	return false
}

// DetectImageType sniffs data and returns its MIME type without parameters.
// A subtype of a supported image type, e.g. APNG, reports the supported parent.
func DetectImageType(data []byte) string {
	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		if IsValidImageType(m.String()) {
			return baseMIME(m.String())
		}
	}
	return baseMIME(detected.String())
}

func baseMIME(mimeType string) string {
	if idx := strings.IndexByte(mimeType, ';'); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// GenerateFilename generates the stored name of a resized image
func GenerateFilename(id, ext string) string {
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("resized_%s.%s", id, ext)
}

// FormatFileSize renders a byte count with binary units, e.g. "1.5 MiB".
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(size))
}
