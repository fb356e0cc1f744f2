package client

import (
	"fmt"

	"github.com/phambaophuc/resize-studio/internal/models"
	"github.com/phambaophuc/resize-studio/pkg/utils"
)

// Result is a successful resize ready for display.
type Result struct {
	ImageURL         string
	Width            int
	Height           int
	FileSize         int64
	Format           string
	OriginalSize     int64
	ReductionPercent float64
}

func newResult(api *API, resp *models.ResizeResponse, originalSize int64) *Result {
	return &Result{
		ImageURL:         api.absoluteURL(resp.ImageURL),
		Width:            resp.Width,
		Height:           resp.Height,
		FileSize:         resp.FileSize,
		Format:           resp.Format,
		OriginalSize:     originalSize,
		ReductionPercent: reductionPercent(originalSize, resp.FileSize),
	}
}

// reductionPercent is negative when the output grew.
func reductionPercent(original, resized int64) float64 {
	if original <= 0 {
		return 0
	}
	return float64(original-resized) / float64(original) * 100
}

func (r *Result) SizeLabel() string {
	return utils.FormatFileSize(r.FileSize)
}

func (r *Result) DimensionsLabel() string {
	return dimensionsLabel(r.Width, r.Height)
}

func (r *Result) ReductionLabel() string {
	return fmt.Sprintf("%.1f%% smaller", r.ReductionPercent)
}

// DownloadName is the file name offered when saving the result.
func (r *Result) DownloadName() string {
	return "resized-image." + r.Format
}

func dimensionsLabel(w, h int) string {
	return fmt.Sprintf("%d × %d", w, h)
}
