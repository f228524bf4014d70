package element

import (
	"image/color"
	"strings"

	"github.com/presenceos/video-engine/internal/scene"
	"github.com/presenceos/video-engine/internal/timeline"
)

// Style names one of the four text animation curves.
type Style string

const (
	StyleFade       Style = "fade"
	StyleSlide      Style = "slide"
	StyleTypewriter Style = "typewriter"
	StyleScale      Style = "scale"
)

// Spring tunings for the physics-driven styles.
var (
	slideSpring = timeline.Spring{Stiffness: 80, Damping: 12}
	scaleSpring = timeline.Spring{Stiffness: 100, Damping: 10}
)

// fadeFrames is the length of the linear fade ramp.
const fadeFrames = 15

// slideDistance is the vertical travel of the slide style in pixels.
const slideDistance = 40.0

// TextProps fully determines a text node's appearance at any frame.
type TextProps struct {
	Text   string
	Style  Style
	Delay  int // frames before the animation starts
	Size   float64
	Color  color.RGBA
	Weight scene.Weight
	Align  scene.Align
	Pos    scene.Point
	Shadow bool
}

// AnimatedText computes the text layer for one frame. The visual state is a
// pure function of the sequence-local frame: opacity, offset and scale follow
// the selected style applied to adjusted = max(0, frame - delay).
func AnimatedText(frame int, cfg timeline.VideoConfig, p TextProps) scene.Text {
	adjusted := frame - p.Delay
	if adjusted < 0 {
		adjusted = 0
	}

	node := scene.Text{
		Content: p.Text,
		Size:    p.Size,
		Weight:  p.Weight,
		Color:   p.Color,
		Opacity: 1,
		Align:   p.Align,
		Pos:     p.Pos,
		Scale:   1,
		Shadow:  p.Shadow,
	}

	switch p.Style {
	case StyleSlide:
		progress := slideSpring.Value(cfg.Seconds(adjusted))
		node.Opacity = timeline.Clamp01(progress)
		node.OffsetY = slideDistance * (1 - progress)

	case StyleTypewriter:
		node.Content = typewriterText(p.Text, frame, adjusted)

	case StyleScale:
		progress := scaleSpring.Value(cfg.Seconds(adjusted))
		node.Opacity = timeline.Clamp01(progress)
		node.Scale = 0.5 + 0.5*progress

	default: // fade
		node.Opacity = timeline.Interpolate(float64(adjusted), 0, fadeFrames, 0, 1, timeline.ClampBoth)
	}

	return node
}

// typewriterText reveals characters at half a character per frame and appends
// a cursor that blinks on a 20-frame cycle of the raw frame counter.
func typewriterText(text string, frame, adjusted int) string {
	runes := []rune(text)
	length := len(runes)

	shown := int(timeline.Interpolate(float64(adjusted), 0, float64(length*2), 0, float64(length), timeline.ClampBoth))
	if shown > length {
		shown = length
	}

	var b strings.Builder
	b.WriteString(string(runes[:shown]))
	if frame%20 > 10 {
		b.WriteString("|")
	}
	return b.String()
}
