package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputFormat(t *testing.T) {
	cases := map[string]OutputFormat{
		"":         FormatOriginal,
		"original": FormatOriginal,
		"JPEG":     FormatJPEG,
		"jpg":      FormatJPEG,
		"png":      FormatPNG,
		" gif ":    FormatGIF,
		"webp":     FormatWebP,
	}
	for in, want := range cases {
		got, err := ParseOutputFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOutputFormat("bmp")
	assert.Error(t, err)
}

func TestResizeErrorStatus(t *testing.T) {
	for _, code := range []ErrorCode{ErrUpload, ErrInvalidDimensions, ErrInvalidQuality, ErrUnsupportedFormat} {
		assert.Equal(t, http.StatusBadRequest, NewResizeError(code, "x", nil).StatusCode())
	}
	assert.Equal(t, http.StatusInternalServerError, NewResizeError(ErrEncode, "x", nil).StatusCode())
}

func TestAsResizeError(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := fmt.Errorf("save: %w", NewResizeError(ErrInvalidQuality, "Invalid quality value", cause))

	rerr := AsResizeError(wrapped)
	assert.Equal(t, ErrInvalidQuality, rerr.Code)
	assert.ErrorIs(t, rerr, cause)

	plain := AsResizeError(cause)
	assert.Equal(t, ErrEncode, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.StatusCode())
}

func TestResizeResponseFields(t *testing.T) {
	raw, err := json.Marshal(NewResizeResponse(&ResizeResult{
		StoragePath:     "uploads/resized_a.jpg",
		Width:           800,
		Height:          600,
		ByteSize:        1234,
		FormatExtension: "jpg",
	}))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, 6)
	assert.JSONEq(t, `{"success":true,"imageUrl":"uploads/resized_a.jpg","width":800,"height":600,"fileSize":1234,"format":"jpg"}`, string(raw))
}
