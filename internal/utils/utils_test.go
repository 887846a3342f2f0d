package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	mime, data, err := DecodeDataURL("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, "hello", string(data))
}

func TestDecodeDataURLInvalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"https://example.com/x.png",
		"data:image/png,aGVsbG8=",
		"data:;base64,aGVsbG8=",
		"data:image/png;base64",
		"data:image/png;base64,***",
	} {
		_, _, err := DecodeDataURL(raw)
		assert.True(t, errors.Is(err, ErrInvalidDataURL), raw)
	}
}

func TestImageMimeType(t *testing.T) {
	heic := append([]byte("\x00\x00\x00\x18ftypheic\x00\x00\x00\x00mif1heic"), make([]byte, 16)...)

	tests := []struct {
		name     string
		filename string
		declared string
		data     []byte
		want     string
		ok       bool
	}{
		{name: "png sniffed", filename: "x.bin", data: []byte("\x89PNG\r\n\x1a\n0000"), want: "image/png", ok: true},
		{name: "jpeg under wrong name", filename: "x.png", declared: "image/png", data: []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), want: "image/jpeg", ok: true},
		{name: "gif", data: []byte("GIF89a\x01\x00\x01\x00"), want: "image/gif", ok: true},
		{name: "text declared as png", filename: "x.png", declared: "image/png", data: []byte("hello world")},
		{name: "svg declared as svg", declared: "image/svg+xml", data: []byte(`<svg onload="alert(1)"></svg>`)},
		{name: "svg declared as png", filename: "x.png", declared: "image/png", data: []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"/>`)},
		{name: "empty", filename: "x.webp", declared: "image/webp"},
		{name: "heic by declaration", declared: "image/heic", data: heic, want: "image/heic", ok: true},
		{name: "heic by extension", filename: "IMG_0001.HEIC", declared: "application/octet-stream", data: heic, want: "image/heic", ok: true},
		{name: "binary claiming heic", declared: "image/heic", data: []byte("\x00\x01\x02\x03\x04\x05\x06\x07\x08\x09\x0a\x0b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, ok := ImageMimeType(tt.filename, tt.declared, tt.data)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, mime)
		})
	}
}

func TestExtensionForMime(t *testing.T) {
	assert.Equal(t, ".png", ExtensionForMime("image/png"))
	assert.Equal(t, ".jpg", ExtensionForMime("image/jpeg"))
	assert.Equal(t, ".heic", ExtensionForMime("image/heic"))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "my_dream_1_.png", SafeFilename("../../my dream (1).png"))
	assert.Equal(t, "image", SafeFilename("///"))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "The Hollow Crown", FirstLine("\n## **The Hollow Crown**\n\nOnce..."))
	assert.Equal(t, "", FirstLine("  \n \n"))
}
