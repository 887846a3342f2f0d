package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDataURL = errors.New("data URL invalide")

// DecodeDataURL décode une URL "data:<mime>;base64,<data>" telle que renvoyée par le front
func DecodeDataURL(raw string) (mimeType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(raw), "data:")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	mimeType, ok = strings.CutSuffix(meta, ";base64")
	if !ok || mimeType == "" {
		return "", nil, ErrInvalidDataURL
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return mimeType, data, nil
}
