package middleware

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/resize-studio/internal/models"
)

// ValidateContentType rejects uploads that are not multipart/form-data before
// the body is read.
func ValidateContentType() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		mediaType, _, err := mime.ParseMediaType(ctx.GetHeader("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   "No image uploaded or upload error",
			})
			return
		}

		ctx.Next()
	}
}
