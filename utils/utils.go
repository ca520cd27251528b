package utils

import (
	"fmt"
	"image/color"
	"strings"
)

// HexToRGBA converts a color expressed in hexadecimal format to RGBA.
// Both the long (#rrggbb) and the short (#rgb) forms are accepted,
// with or without the leading hash.
func HexToRGBA(hex string) (color.NRGBA, error) {
	var (
		rgba color.NRGBA
		err  error
	)
	rgba.A = 0xff

	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	switch len(hex) {
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &rgba.R, &rgba.G, &rgba.B)
	case 3:
		_, err = fmt.Sscanf(hex, "%1x%1x%1x", &rgba.R, &rgba.G, &rgba.B)
		// Double the hex digits.
		rgba.R *= 17
		rgba.G *= 17
		rgba.B *= 17
	default:
		err = fmt.Errorf("invalid length, must be 6 or 3")
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return rgba, nil
}

// Contains returns true if a value is available in the collection.
func Contains[K comparable](slice []K, value K) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}
