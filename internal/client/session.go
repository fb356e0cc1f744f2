package client

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/phambaophuc/resize-studio/internal/models"
	"github.com/phambaophuc/resize-studio/internal/services/processor"
	"github.com/phambaophuc/resize-studio/pkg/utils"
	"go.uber.org/zap"
)

// MaxFileSize is the largest file a session accepts.
const MaxFileSize = 10 << 20

const defaultQuality = 80

var (
	ErrNoFile       = errors.New("no file selected")
	ErrNotImage     = errors.New("file is not an image")
	ErrFileTooLarge = errors.New("file exceeds the size limit")
	ErrNotReady     = errors.New("no image loaded")
	ErrBusy         = errors.New("a resize is already in progress")
)

// File is a local file picked by the user.
type File struct {
	Name string
	Data []byte
}

func (f File) Size() int64 {
	return int64(len(f.Data))
}

// Notifier surfaces session state to the user.
type Notifier interface {
	Alert(msg string)
	Busy(on bool)
}

// Preview describes the active selection.
type Preview struct {
	Name       string
	Size       string
	Dimensions string
	MIMEType   string
}

// Session holds the state of one select, configure and submit cycle.
type Session struct {
	api       *API
	notifier  Notifier
	processor *processor.ImageProcessor
	logger    *zap.Logger

	mu             sync.Mutex
	file           *File
	mimeType       string
	originalWidth  int
	originalHeight int
	aspectRatio    float64
	linked         bool
	width          int
	height         int
	quality        int
	format         models.OutputFormat
	busy           bool
}

func NewSession(api *API, notifier Notifier, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		api:       api,
		notifier:  notifier,
		processor: processor.NewImageProcessor(),
		logger:    logger,
		linked:    true,
		quality:   defaultQuality,
		format:    models.FormatOriginal,
	}
}

// Acquire makes f the active selection. A rejected file leaves the
// previous selection in place.
func (s *Session) Acquire(f File) error {
	mtype := utils.DetectImageType(f.Data)
	if !strings.HasPrefix(mtype, "image/") {
		s.notifier.Alert("Please select an image file")
		return ErrNotImage
	}

	if f.Size() > MaxFileSize {
		s.notifier.Alert(fmt.Sprintf("Please select an image smaller than %s", utils.FormatFileSize(MaxFileSize)))
		return ErrFileTooLarge
	}

	if !utils.IsValidImageType(mtype) {
		s.notifier.Alert("Unsupported image format")
		return fmt.Errorf("%w: %s", ErrNotImage, mtype)
	}

	width, height, detected, err := s.processor.GetImageInfo(f.Data)
	if err != nil {
		s.notifier.Alert("Could not read image dimensions")
		return fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	if width <= 0 || height <= 0 {
		s.notifier.Alert("Could not read image dimensions")
		return fmt.Errorf("%w: %s is %dx%d", ErrNotImage, f.Name, width, height)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.file = &f
	s.mimeType = detected
	s.originalWidth = width
	s.originalHeight = height
	s.aspectRatio = float64(width) / float64(height)
	s.width = width
	s.height = height

	s.logger.Debug("Image selected",
		zap.String("name", f.Name),
		zap.Int64("size", f.Size()),
		zap.Int("width", width),
		zap.Int("height", height))

	return nil
}

// AcquireDropped takes the first of a set of dropped files.
func (s *Session) AcquireDropped(files []File) error {
	if len(files) == 0 {
		return ErrNoFile
	}
	return s.Acquire(files[0])
}

// Preview reports the active selection, or false when none is loaded.
func (s *Session) Preview() (Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return Preview{}, false
	}
	return Preview{
		Name:       s.file.Name,
		Size:       utils.FormatFileSize(s.file.Size()),
		Dimensions: dimensionsLabel(s.originalWidth, s.originalHeight),
		MIMEType:   s.mimeType,
	}, true
}

func (s *Session) SetLinked(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.linked = on
}

// SetWidth updates the target width and, when linked, the height.
func (s *Session) SetWidth(w int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.width = w
	if s.linked && s.aspectRatio > 0 && w > 0 {
		s.height = int(math.Round(float64(w) / s.aspectRatio))
	}
}

// SetHeight updates the target height and, when linked, the width.
func (s *Session) SetHeight(h int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.height = h
	if s.linked && s.aspectRatio > 0 && h > 0 {
		s.width = int(math.Round(float64(h) * s.aspectRatio))
	}
}

func (s *Session) SetQuality(q int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quality = q
}

func (s *Session) SetFormat(f models.OutputFormat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.format = f
}

// Dimensions returns the current target width and height.
func (s *Session) Dimensions() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// CanSubmit is true once an image is loaded and no submit is running.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file != nil && !s.busy
}

// Submit sends the selection to the resize service. Only one submit runs at a
// time; busy state is always restored before returning.
func (s *Session) Submit(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if s.file == nil {
		s.mu.Unlock()
		return nil, ErrNotReady
	}
	s.busy = true
	file := *s.file
	params := Params{
		Width:   s.width,
		Height:  s.height,
		Quality: s.quality,
		Format:  s.format,
	}
	s.mu.Unlock()

	s.notifier.Busy(true)
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
		s.notifier.Busy(false)
	}()

	resp, err := s.api.Resize(ctx, file, params)
	if err != nil {
		s.logger.Warn("Resize failed", zap.String("name", file.Name), zap.Error(err))
		s.notifier.Alert("An error occurred while resizing the image: " + alertMessage(err))
		return nil, err
	}

	return newResult(s.api, resp, file.Size()), nil
}

func alertMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
