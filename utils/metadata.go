package utils

import (
	"bytes"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"
)

// ImageMeta is the subset of image metadata the thumbnail worker records on
// a media row.
type ImageMeta struct {
	Width   *int   `json:"width,omitempty"`
	Height  *int   `json:"height,omitempty"`
	TakenAt *int64 `json:"taken_at,omitempty"`
}

// ExtractImageMeta reads pixel dimensions from the image header and, when an
// EXIF block is present, the original capture time. Missing or broken EXIF
// data is not an error; those fields just stay nil.
func ExtractImageMeta(data []byte) ImageMeta {
	var meta ImageMeta

	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		w, h := cfg.Width, cfg.Height
		meta.Width = &w
		meta.Height = &h
	}

	exifData, err := exif.Decode(bytes.NewReader(data))
	if err != nil || exifData == nil {
		return meta
	}
	if t, err := exifData.DateTime(); err == nil {
		unix := t.Unix()
		meta.TakenAt = &unix
	}
	return meta
}
