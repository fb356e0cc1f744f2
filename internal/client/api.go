package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/phambaophuc/resize-studio/internal/models"
	"go.uber.org/zap"
)

const defaultTimeout = 60 * time.Second

// APIError is a failure reported by the resize service or the transport.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// resizeReply decodes both envelopes of POST /resize.
type resizeReply struct {
	models.ResizeResponse
	Error string `json:"error"`
}

// Params are the target settings sent with an upload.
type Params struct {
	Width   int
	Height  int
	Quality int
	Format  models.OutputFormat
}

// API talks to a resize service rooted at BaseURL.
type API struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewAPI(baseURL string, httpClient *http.Client, logger *zap.Logger) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (a *API) BaseURL() string {
	return a.baseURL
}

// Resize uploads file with params and returns the successful reply.
func (a *API) Resize(ctx context.Context, file File, params Params) (*models.ResizeResponse, error) {
	body, contentType, err := buildForm(file, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/resize", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	var result resizeReply
	if err := json.Unmarshal(raw, &result); err != nil {
		a.logger.Debug("Non-JSON reply from resize service",
			zap.Int("status", resp.StatusCode),
			zap.Int("bytes", len(raw)))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: statusMessage(resp.StatusCode)}
	}

	if !result.Success || resp.StatusCode != http.StatusOK {
		msg := result.Error
		if msg == "" {
			msg = statusMessage(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return &result.ResizeResponse, nil
}

// Download writes the served resized image to w.
func (a *API) Download(ctx context.Context, result *Result, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, result.ImageURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &APIError{StatusCode: resp.StatusCode, Message: statusMessage(resp.StatusCode)}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to download %s: %w", result.ImageURL, err)
	}
	return n, nil
}

// absoluteURL resolves an imageUrl from the service against the base URL.
func (a *API) absoluteURL(imageURL string) string {
	if u, err := url.Parse(imageURL); err == nil && u.IsAbs() {
		return imageURL
	}
	return a.baseURL + "/" + strings.TrimLeft(imageURL, "/")
}

func buildForm(file File, params Params) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fw, err := mw.CreateFormFile("image", file.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := fw.Write(file.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write form file: %w", err)
	}

	format := params.Format
	if format == "" {
		format = models.FormatOriginal
	}
	fields := [][2]string{
		{"width", strconv.Itoa(params.Width)},
		{"height", strconv.Itoa(params.Height)},
		{"quality", strconv.Itoa(params.Quality)},
		{"format", string(format)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f[0], err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}
	return body, mw.FormDataContentType(), nil
}

func statusMessage(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Unexpected response from server"
}
