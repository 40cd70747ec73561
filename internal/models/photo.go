package models

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrNotDataURL indicates a photo payload that is not a base64 data URL.
var ErrNotDataURL = errors.New("photo must be a base64 data URL")

// DecodePhotoDataURL decodes a "data:image/...;base64,<payload>" string into
// raw bytes and a content type. The content type falls back to image/jpeg
// when the data URL does not carry a usable one.
func DecodePhotoDataURL(s string) (data []byte, contentType string, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, "", ErrNotDataURL
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, "", ErrNotDataURL
	}

	contentType = strings.TrimSuffix(meta, ";base64")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/jpeg"
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrNotDataURL
	}
	return data, contentType, nil
}
