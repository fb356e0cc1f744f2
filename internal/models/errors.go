package models

import (
	"errors"
	"net/http"
)

type ErrorCode string

const (
	ErrUpload            ErrorCode = "UploadError"
	ErrInvalidDimensions ErrorCode = "InvalidDimensions"
	ErrInvalidQuality    ErrorCode = "InvalidQuality"
	ErrUnsupportedFormat ErrorCode = "UnsupportedFormat"
	ErrEncode            ErrorCode = "EncodeError"
)

// ResizeError is a terminal failure of one resize request. Message is safe to
// show to the caller; Err keeps the underlying cause for logs.
type ResizeError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func NewResizeError(code ErrorCode, message string, err error) *ResizeError {
	return &ResizeError{Code: code, Message: message, Err: err}
}

func (e *ResizeError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *ResizeError) Unwrap() error {
	return e.Err
}

func (e *ResizeError) StatusCode() int {
	if e.Code == ErrEncode {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// AsResizeError extracts a ResizeError from err, classifying anything else as
// an EncodeError.
func AsResizeError(err error) *ResizeError {
	var rerr *ResizeError
	if errors.As(err, &rerr) {
		return rerr
	}
	return NewResizeError(ErrEncode, "Failed to process image", err)
}
