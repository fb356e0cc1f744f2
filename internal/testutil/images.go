// Package testutil builds encoded image fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

const pngSignature = "\x89PNG\r\n\x1a\n"

// pngSignatureAndIHDR is the signature plus the length-prefixed IHDR chunk.
const pngSignatureAndIHDR = 8 + 4 + 4 + 13 + 4

// PNG encodes an opaque w x h image.
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// APNG is PNG with an acTL chunk right after IHDR, which marks it animated.
// Decoders that ignore animation read the default image.
func APNG(t testing.TB, w, h int) []byte {
	t.Helper()
	data := PNG(t, w, h)

	actl := make([]byte, 8)
	binary.BigEndian.PutUint32(actl[0:4], 1) // frames
	binary.BigEndian.PutUint32(actl[4:8], 0) // plays

	out := append([]byte{}, data[:pngSignatureAndIHDR]...)
	out = append(out, Chunk("acTL", actl)...)
	return append(out, data[pngSignatureAndIHDR:]...)
}

// PNGHeader is a PNG that declares w x h pixels but carries no pixel data.
func PNGHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA

	out := []byte(pngSignature)
	out = append(out, Chunk("IHDR", ihdr)...)
	return append(out, Chunk("IEND", nil)...)
}

// Chunk encodes one PNG chunk with its CRC.
func Chunk(kind string, data []byte) []byte {
	out := make([]byte, 4, 12+len(data))
	binary.BigEndian.PutUint32(out, uint32(len(data)))
	out = append(out, kind...)
	out = append(out, data...)

	crc := crc32.NewIEEE()
	crc.Write([]byte(kind))
	crc.Write(data)
	return binary.BigEndian.AppendUint32(out, crc.Sum32())
}
