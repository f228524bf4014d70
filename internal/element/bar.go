package element

import (
	"image/color"

	"github.com/presenceos/video-engine/internal/scene"
	"github.com/presenceos/video-engine/internal/timeline"
)

// BarPosition anchors the progress bar at a frame edge.
type BarPosition string

const (
	BarTop    BarPosition = "top"
	BarBottom BarPosition = "bottom"
)

// BarProps describes the clip-wide progress bar.
type BarProps struct {
	Position   BarPosition
	Color      color.RGBA
	TrackColor color.RGBA
	Height     float64 // pixels; 0 picks a default
}

const defaultBarHeight = 6.0

// ProgressBar computes the full-width progress layer for one frame. The fill
// tracks the clip-global frame regardless of which sequence is visible, so it
// is monotonically non-decreasing across the whole clip.
func ProgressBar(frame int, cfg timeline.VideoConfig, p BarProps) scene.Bar {
	height := p.Height
	if height <= 0 {
		height = defaultBarHeight
	}

	y := 0.0
	if p.Position == BarBottom {
		y = float64(cfg.Height) - height
	}

	frac := timeline.Interpolate(float64(frame), 0, float64(cfg.DurationInFrames), 0, 1, timeline.ClampRight)

	return scene.Bar{
		Rect:       scene.Rect{X: 0, Y: y, W: float64(cfg.Width), H: height},
		Frac:       frac,
		Color:      p.Color,
		TrackColor: p.TrackColor,
		Opacity:    1,
	}
}
