package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/resize-studio/internal/models"
	"github.com/phambaophuc/resize-studio/internal/services/processor"
	"go.uber.org/zap"
)

// === REQUEST PARSING ===

func (h *ImageHandler) parseResizeParams(c *gin.Context) (*models.ResizeRequest, error) {
	width, err := h.parsePositiveInt(c.PostForm("width"), "width")
	if err != nil {
		return nil, err
	}

	height, err := h.parsePositiveInt(c.PostForm("height"), "height")
	if err != nil {
		return nil, err
	}

	quality, err := h.parseQuality(c.PostForm("quality"))
	if err != nil {
		return nil, err
	}

	format, err := models.ParseOutputFormat(c.PostForm("format"))
	if err != nil {
		return nil, models.NewResizeError(models.ErrUnsupportedFormat, "Unsupported output format", err)
	}

	return &models.ResizeRequest{
		Width:   width,
		Height:  height,
		Quality: quality,
		Format:  format,
	}, nil
}

func (h *ImageHandler) parsePositiveInt(value, fieldName string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, models.NewResizeError(models.ErrInvalidDimensions, "Invalid dimensions",
			fmt.Errorf("%s is required", fieldName))
	}

	num, err := strconv.Atoi(value)
	if err != nil {
		return 0, models.NewResizeError(models.ErrInvalidDimensions, "Invalid dimensions",
			fmt.Errorf("invalid %s: must be a number", fieldName))
	}

	if num <= 0 {
		return 0, models.NewResizeError(models.ErrInvalidDimensions, "Invalid dimensions",
			fmt.Errorf("%s must be a positive integer", fieldName))
	}

	return num, nil
}

func (h *ImageHandler) parseQuality(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return h.config.Resize.DefaultQuality, nil
	}

	quality, err := strconv.Atoi(value)
	if err != nil || quality < processor.MinQuality || quality > processor.MaxQuality {
		return 0, models.NewResizeError(models.ErrInvalidQuality, "Invalid quality value",
			fmt.Errorf("quality %q", value))
	}

	return quality, nil
}

// === FILE OPERATIONS ===

func (h *ImageHandler) readUpload(c *gin.Context, paramKey string) ([]byte, *multipart.FileHeader, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.config.Resize.MaxFileSize+formOverhead)

	file, header, err := c.Request.FormFile(paramKey)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, models.NewResizeError(models.ErrUpload, "Uploaded file is too large", err)
		}
		return nil, nil, models.NewResizeError(models.ErrUpload, "No image uploaded or upload error", err)
	}
	defer file.Close()

	if header.Size > h.config.Resize.MaxFileSize {
		return nil, nil, models.NewResizeError(models.ErrUpload, "Uploaded file is too large",
			fmt.Errorf("%d bytes", header.Size))
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, models.NewResizeError(models.ErrUpload, "No image uploaded or upload error", err)
	}
	if len(data) == 0 {
		return nil, nil, models.NewResizeError(models.ErrUpload, "No image uploaded or upload error",
			errors.New("empty upload"))
	}

	return data, header, nil
}

// === STORAGE OPERATIONS ===

func (h *ImageHandler) store(c *gin.Context, encoded *models.EncodedImage) (*models.ResizeResult, error) {
	url, err := h.storage.Put(c.Request.Context(), encoded.Data, encoded.Extension, encoded.MIMEType)
	if err != nil {
		return nil, models.NewResizeError(models.ErrEncode, "Failed to save resized image", err)
	}

	return &models.ResizeResult{
		StoragePath:     url,
		Width:           encoded.Width,
		Height:          encoded.Height,
		ByteSize:        int64(len(encoded.Data)),
		FormatExtension: encoded.Extension,
	}, nil
}

// === RESPONSE HANDLING ===

func (h *ImageHandler) respondError(c *gin.Context, err error) {
	rerr := models.AsResizeError(err)

	fields := []zap.Field{
		zap.String("code", string(rerr.Code)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(rerr.Err),
	}
	if rerr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error(rerr.Message, fields...)
	} else {
		h.logger.Warn(rerr.Message, fields...)
	}

	c.JSON(rerr.StatusCode(), models.ErrorResponse{
		Success: false,
		Error:   rerr.Message,
	})
}

// === UTILITY METHODS ===

func (h *ImageHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}
