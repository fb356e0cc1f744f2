package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders adds security headers. Resized images are embedded by a
// front end on another origin, so resources stay cross-origin readable.
func SecurityHeaders() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("X-Frame-Options", "DENY")
		ctx.Header("X-Content-Type-Options", "nosniff")
		ctx.Header("Referrer-Policy", "no-referrer")
		ctx.Header("Cross-Origin-Resource-Policy", "cross-origin")
		ctx.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		ctx.Next()
	}
}
