package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/presenceos/video-engine/internal/scene"
)

// fontCache holds the parsed fonts and one face per (weight, pixel size).
// Face instances keep internal state during glyph rasterization, which is
// why the cache lives inside a per-worker Rasterizer.
type fontCache struct {
	regular *sfnt.Font
	medium  *sfnt.Font
	bold    *sfnt.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	weight scene.Weight
	size   int // px
}

// newFontCache parses the built-in Go fonts, or a single custom font file
// used for every weight when the brand ships its own.
func newFontCache(custom string) (*fontCache, error) {
	c := &fontCache{faces: make(map[faceKey]font.Face)}

	if custom != "" {
		data, err := os.ReadFile(custom)
		if err != nil {
			return nil, fmt.Errorf("reading font %s: %w", custom, err)
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing font %s: %w", custom, err)
		}
		c.regular, c.medium, c.bold = f, f, f
		return c, nil
	}

	var err error
	if c.regular, err = opentype.Parse(goregular.TTF); err != nil {
		return nil, err
	}
	if c.medium, err = opentype.Parse(gomedium.TTF); err != nil {
		return nil, err
	}
	if c.bold, err = opentype.Parse(gobold.TTF); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *fontCache) face(weight scene.Weight, sizePx float64) (font.Face, error) {
	key := faceKey{weight: weight, size: int(sizePx + 0.5)}
	if key.size < 1 {
		key.size = 1
	}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}

	src := c.regular
	switch weight {
	case scene.WeightMedium:
		src = c.medium
	case scene.WeightBold:
		src = c.bold
	}

	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(key.size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	c.faces[key] = face
	return face, nil
}

func (r *Rasterizer) drawText(dst *image.RGBA, l scene.Text) error {
	if l.Content == "" || l.Opacity <= 0 {
		return nil
	}

	size := l.Size
	if l.Scale > 0 {
		size *= l.Scale
	}
	if size < 1 {
		return nil
	}

	face, err := r.fonts.face(l.Weight, size)
	if err != nil {
		return err
	}

	lines := []string{l.Content}
	if l.MaxW > 0 {
		lines = wrapText(face, l.Content, int(l.MaxW))
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineH := metrics.Height.Ceil()

	y := int(l.Pos.Y+l.OffsetY+0.5) + ascent

	for _, line := range lines {
		width := font.MeasureString(face, line).Ceil()

		x := int(l.Pos.X + 0.5)
		switch l.Align {
		case scene.AlignCenter:
			x -= width / 2
		case scene.AlignRight:
			x -= width
		}

		if l.Shadow {
			shadow := &font.Drawer{
				Dst:  dst,
				Src:  image.NewUniform(color.NRGBA{A: uint8(180 * l.Opacity)}),
				Face: face,
				Dot:  fixed.P(x+2, y+2),
			}
			shadow.DrawString(line)
		}

		drawer := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(textColor(l.Color, l.Opacity)),
			Face: face,
			Dot:  fixed.P(x, y),
		}
		drawer.DrawString(line)

		y += lineH
	}

	return nil
}

// textColor scales the straight alpha of a color by the layer opacity.
func textColor(c color.RGBA, opacity float64) color.NRGBA {
	if opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A)*opacity + 0.5)}
}

// wrapText greedily packs words into lines no wider than maxW. A single word
// wider than the limit gets its own line rather than being broken.
func wrapText(face font.Face, text string, maxW int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if font.MeasureString(face, candidate).Ceil() > maxW {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	lines = append(lines, current)

	return lines
}
