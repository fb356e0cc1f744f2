package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/resize-studio/internal/config"
	"github.com/phambaophuc/resize-studio/internal/http/handlers"
	"github.com/phambaophuc/resize-studio/internal/http/middleware"
	"go.uber.org/zap"
)

// FileServer is implemented by stores whose files are served by this process.
type FileServer interface {
	FileSystem() http.FileSystem
	PublicPrefix() string
}

type Router struct {
	imageHandler *handlers.ImageHandler
	files        FileServer
	logger       *zap.Logger
	config       *config.Config
}

// NewRouter wires the API. files may be nil when artifacts live elsewhere.
func NewRouter(
	imageHandler *handlers.ImageHandler,
	files FileServer,
	logger *zap.Logger,
	config *config.Config,
) *Router {
	return &Router{
		imageHandler: imageHandler,
		files:        files,
		logger:       logger,
		config:       config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS(r.config.Server.AllowedOrigin))
	router.Use(middleware.SecurityHeaders())

	router.POST("/resize", middleware.ValidateContentType(), r.imageHandler.ResizeImage)
	router.OPTIONS("/resize", r.imageHandler.Preflight)
	router.GET("/health", r.imageHandler.HealthCheck)

	if r.files != nil {
		router.StaticFS("/"+r.files.PublicPrefix(), filesOnly{r.files.FileSystem()})
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Image resizing is running",
		})
	})

	return router
}

// filesOnly hides directory listings of the upload directory.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}

	return file, nil
}
