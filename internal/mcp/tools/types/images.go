package types

import (
	"fmt"
	"strings"
)

var (
	ImageQualities = []string{"low", "high"}
	ImageFormats   = []string{"png", "webp", "jpg"}
)

// ImageOptions selects the asset variant appended to TCGdex image base URLs.
type ImageOptions struct {
	Quality string
	Format  string
}

func DefaultImageOptions() ImageOptions {
	return ImageOptions{Quality: "low", Format: "png"}
}

// Normalize lower-cases both fields and rejects unsupported values.
func (o ImageOptions) Normalize() (ImageOptions, error) {
	o.Quality = strings.ToLower(strings.TrimSpace(o.Quality))
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	if !contains(ImageQualities, o.Quality) {
		return o, fmt.Errorf("image_quality must be one of %s", strings.Join(ImageQualities, ", "))
	}
	if !contains(ImageFormats, o.Format) {
		return o, fmt.Errorf("image_format must be one of %s", strings.Join(ImageFormats, ", "))
	}
	return o, nil
}

// URL appends "/{quality}.{format}" to base. An empty base stays empty.
func (o ImageOptions) URL(base string) string {
	if base == "" {
		return ""
	}
	return base + "/" + o.Quality + "." + o.Format
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
