package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/resize-studio/internal/config"
	"github.com/phambaophuc/resize-studio/internal/models"
	"github.com/phambaophuc/resize-studio/internal/services/processor"
	"github.com/phambaophuc/resize-studio/internal/services/storage"
	"go.uber.org/zap"
)

const (
	imageParamKey = "image"
	// formOverhead is the slack allowed on top of MaxFileSize for the
	// multipart envelope and the other form fields.
	formOverhead = 1 << 20
)

type ImageHandler struct {
	processor *processor.ImageProcessor
	storage   storage.Store
	logger    *zap.Logger
	config    *config.Config
}

func NewImageHandler(
	processor *processor.ImageProcessor,
	storage storage.Store,
	logger *zap.Logger,
	config *config.Config,
) *ImageHandler {
	return &ImageHandler{
		processor: processor,
		storage:   storage,
		logger:    logger,
		config:    config,
	}
}

// === MAIN API ENDPOINTS ===

// ResizeImage handles POST /resize: one upload in, one stored image out.
func (h *ImageHandler) ResizeImage(c *gin.Context) {
	data, header, err := h.readUpload(c, imageParamKey)
	if err != nil {
		h.respondError(c, err)
		return
	}

	req, err := h.parseResizeParams(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	encoded, err := h.processor.ProcessImage(data, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.store(c, encoded)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Image resized",
		zap.String("filename", header.Filename),
		zap.Int("original_size", len(data)),
		zap.String("path", result.StoragePath),
		zap.Int64("size", result.ByteSize),
		zap.Int("width", result.Width),
		zap.Int("height", result.Height),
	)

	c.JSON(http.StatusOK, models.NewResizeResponse(result))
}

// Preflight answers OPTIONS /resize with an empty 200.
func (h *ImageHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// HealthCheck
func (h *ImageHandler) HealthCheck(c *gin.Context) {
	storageStatus := h.storage.HealthCheck(c.Request.Context())
	overall := h.calculateOverallHealth(storageStatus)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  storageStatus,
		},
	})
}
