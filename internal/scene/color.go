package scene

import (
	"fmt"
	"image/color"
	"strings"
)

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" into an RGBA color.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var c color.RGBA
	c.A = 0xFF

	switch len(h) {
	case 3:
		_, err := fmt.Sscanf(h, "%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return c, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		c.R *= 17
		c.G *= 17
		c.B *= 17
	case 6:
		_, err := fmt.Sscanf(h, "%02x%02x%02x", &c.R, &c.G, &c.B)
		if err != nil {
			return c, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
	case 8:
		_, err := fmt.Sscanf(h, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
		if err != nil {
			return c, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
	default:
		return c, fmt.Errorf("invalid hex color %q: expected 3, 6 or 8 digits", s)
	}

	return c, nil
}

// HexOr parses a hex color, falling back to def on empty or malformed input.
// Brand props are never a reason to fail a render.
func HexOr(s string, def color.RGBA) color.RGBA {
	if strings.TrimSpace(s) == "" {
		return def
	}
	c, err := ParseHexColor(s)
	if err != nil {
		return def
	}
	return c
}
