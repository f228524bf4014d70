package element

import (
	"image/color"

	"github.com/presenceos/video-engine/internal/scene"
	"github.com/presenceos/video-engine/internal/timeline"
)

// ZoomDirection selects the Ken Burns drift of a background.
type ZoomDirection string

const (
	ZoomIn   ZoomDirection = "in"
	ZoomOut  ZoomDirection = "out"
	ZoomNone ZoomDirection = "none"
)

// Ken Burns endpoints: a slow 15% push across the whole clip.
const (
	zoomRest = 1.0
	zoomPeak = 1.15
)

// MediaType discriminates still and moving sources. There is no polymorphic
// dispatch and no fallback: a video source is sampled per frame, anything
// else is decoded as a still.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// MediaProps describes a full-bleed background with an optional contrast wash.
type MediaProps struct {
	Src            string
	Type           MediaType
	Zoom           ZoomDirection
	Anchor         scene.Point // zoom anchor in normalized source coords; zero means center
	AutoFocus      bool        // anchor on the detected subject instead
	OverlayColor   color.RGBA
	OverlayOpacity float64
}

// BackgroundMedia computes the media and overlay layers for one frame. The
// zoom ramp spans the entire clip duration even when the element is mounted
// for a shorter window, so a background shown for one slide drifts only part
// of the way through the 15% travel. Callers pass the sequence-local frame.
func BackgroundMedia(frame int, cfg timeline.VideoConfig, p MediaProps) []scene.Layer {
	var layers []scene.Layer

	if p.Src != "" {
		img := scene.Image{
			Src:       p.Src,
			Scale:     BackgroundScale(frame, cfg, p.Zoom),
			Anchor:    p.Anchor,
			AutoFocus: p.AutoFocus,
			Opacity:   1,
		}
		if p.Type == MediaVideo {
			img.TimeSec = cfg.Seconds(frame)
		}
		layers = append(layers, img)
	}

	if p.OverlayOpacity > 0 {
		layers = append(layers, scene.Fill{
			Color:   p.OverlayColor,
			Opacity: p.OverlayOpacity,
		})
	}
	return layers
}

// BackgroundScale returns the Ken Burns scale factor at a clip-global frame.
func BackgroundScale(frame int, cfg timeline.VideoConfig, dir ZoomDirection) float64 {
	total := float64(cfg.DurationInFrames)

	switch dir {
	case ZoomIn:
		return timeline.Interpolate(float64(frame), 0, total, zoomRest, zoomPeak, timeline.ClampBoth)
	case ZoomOut:
		return timeline.Interpolate(float64(frame), 0, total, zoomPeak, zoomRest, timeline.ClampBoth)
	default:
		return zoomRest
	}
}

// AlternateZoom picks the zoom direction for the i-th item of a rotation,
// even indices pushing in and odd indices pulling out.
func AlternateZoom(i int) ZoomDirection {
	if i%2 == 0 {
		return ZoomIn
	}
	return ZoomOut
}
