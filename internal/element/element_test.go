package element

import (
	"image/color"
	"strings"
	"testing"

	"github.com/presenceos/video-engine/internal/scene"
	"github.com/presenceos/video-engine/internal/timeline"
)

var testCfg = timeline.VideoConfig{FPS: 30, DurationInFrames: 360, Width: 1080, Height: 1920}

func TestFadeOpacityRamp(t *testing.T) {
	props := TextProps{Text: "FLASH SALE", Style: StyleFade, Delay: 10, Size: 80}

	tests := []struct {
		frame    int
		expected float64
	}{
		{0, 0},             // before delay
		{10, 0},            // exactly at delay
		{17, 7.0 / 15.0},   // mid ramp
		{25, 1},            // delay + 15
		{300, 1},           // long after
	}

	for _, tt := range tests {
		node := AnimatedText(tt.frame, testCfg, props)
		if absf(node.Opacity-tt.expected) > 1e-9 {
			t.Errorf("Frame %d: opacity %v, expected %v", tt.frame, node.Opacity, tt.expected)
		}
	}
}

func TestSlideSpringMotion(t *testing.T) {
	props := TextProps{Text: "Headline", Style: StyleSlide, Delay: 30, Size: 80}

	// At the mount frame the node sits 40px low and invisible
	start := AnimatedText(30, testCfg, props)
	if start.Opacity != 0 {
		t.Errorf("Opacity at delay should be 0, got %v", start.Opacity)
	}
	if absf(start.OffsetY-40) > 1e-9 {
		t.Errorf("Offset at delay should be 40px, got %v", start.OffsetY)
	}

	// Three seconds in the spring has settled
	settled := AnimatedText(30+90, testCfg, props)
	if settled.Opacity < 0.99 {
		t.Errorf("Opacity should settle near 1, got %v", settled.Opacity)
	}
	if absf(settled.OffsetY) > 0.5 {
		t.Errorf("Offset should settle near 0, got %v", settled.OffsetY)
	}

	// Opacity never leaves [0, 1] even though the spring overshoots
	for f := 30; f < 150; f++ {
		node := AnimatedText(f, testCfg, props)
		if node.Opacity < 0 || node.Opacity > 1 {
			t.Fatalf("Opacity out of range at frame %d: %v", f, node.Opacity)
		}
	}
}

func TestTypewriterCharCount(t *testing.T) {
	text := "FLASH30"
	length := len(text)
	delay := 4
	props := TextProps{Text: text, Style: StyleTypewriter, Delay: delay, Size: 64}

	for f := 0; f < 60; f++ {
		node := AnimatedText(f, testCfg, props)

		shown := []rune(node.Content)
		if f%20 > 10 {
			if len(shown) == 0 || shown[len(shown)-1] != '|' {
				t.Fatalf("Frame %d: cursor expected, content %q", f, node.Content)
			}
			shown = shown[:len(shown)-1]
		} else if len(shown) > 0 && shown[len(shown)-1] == '|' {
			t.Fatalf("Frame %d: cursor should be hidden, content %q", f, node.Content)
		}

		adjusted := f - delay
		if adjusted < 0 {
			adjusted = 0
		}
		want := adjusted / 2
		if want > length {
			want = length
		}

		if len(shown) != want {
			t.Errorf("Frame %d: %d chars shown, expected %d", f, len(shown), want)
		}

		if !strings.HasPrefix(text, string(shown)) {
			t.Errorf("Frame %d: %q is not a prefix of %q", f, string(shown), text)
		}
	}
}

func TestScalePop(t *testing.T) {
	props := TextProps{Text: "ORDER NOW", Style: StyleScale, Delay: 0, Size: 72}

	start := AnimatedText(0, testCfg, props)
	if absf(start.Scale-0.5) > 1e-9 {
		t.Errorf("Scale at frame 0 should be 0.5, got %v", start.Scale)
	}
	if start.Opacity != 0 {
		t.Errorf("Opacity at frame 0 should be 0, got %v", start.Opacity)
	}

	settled := AnimatedText(120, testCfg, props)
	if absf(settled.Scale-1.0) > 0.01 {
		t.Errorf("Scale should settle at 1.0, got %v", settled.Scale)
	}

	// The underdamped pop overshoots its resting size
	peak := 0.0
	for f := 0; f < 60; f++ {
		if s := AnimatedText(f, testCfg, props).Scale; s > peak {
			peak = s
		}
	}
	if peak <= 1.0 {
		t.Errorf("Scale pop should overshoot 1.0, peak %v", peak)
	}
}

func TestDelayPastClipEnd(t *testing.T) {
	// A delay longer than the clip just never reaches full visibility
	props := TextProps{Text: "late", Style: StyleFade, Delay: 1000, Size: 40}

	node := AnimatedText(testCfg.DurationInFrames-1, testCfg, props)
	if node.Opacity != 0 {
		t.Errorf("Element delayed past clip end should stay invisible, got opacity %v", node.Opacity)
	}
}

func TestBackgroundScaleEndpoints(t *testing.T) {
	d := testCfg.DurationInFrames

	if got := BackgroundScale(0, testCfg, ZoomIn); got != 1.0 {
		t.Errorf("Zoom in at frame 0: expected 1.0, got %v", got)
	}
	if got := BackgroundScale(d, testCfg, ZoomIn); absf(got-1.15) > 1e-9 {
		t.Errorf("Zoom in at frame %d: expected 1.15, got %v", d, got)
	}
	if got := BackgroundScale(0, testCfg, ZoomOut); absf(got-1.15) > 1e-9 {
		t.Errorf("Zoom out at frame 0: expected 1.15, got %v", got)
	}
	if got := BackgroundScale(d, testCfg, ZoomOut); got != 1.0 {
		t.Errorf("Zoom out at frame %d: expected 1.0, got %v", d, got)
	}
	if got := BackgroundScale(d/2, testCfg, ZoomNone); got != 1.0 {
		t.Errorf("Zoom none should stay 1.0, got %v", got)
	}
}

func TestBackgroundMediaLayers(t *testing.T) {
	props := MediaProps{
		Src:            "assets/interior.jpg",
		Type:           MediaImage,
		Zoom:           ZoomIn,
		OverlayColor:   color.RGBA{0, 0, 0, 255},
		OverlayOpacity: 0.4,
	}

	layers := BackgroundMedia(90, testCfg, props)
	if len(layers) != 2 {
		t.Fatalf("Expected media + overlay, got %d layers", len(layers))
	}

	img, ok := layers[0].(scene.Image)
	if !ok {
		t.Fatalf("First layer should be the media, got %T", layers[0])
	}
	// A zero anchor passes through; the rasterizer reads it as source center
	if img.Anchor.X != 0 || img.Anchor.Y != 0 {
		t.Errorf("Anchor should pass through unset, got %+v", img.Anchor)
	}
	if img.Scale <= 1.0 || img.Scale >= 1.15 {
		t.Errorf("Mid-clip zoom-in scale = %v, want strictly inside (1, 1.15)", img.Scale)
	}
	if img.TimeSec != 0 {
		t.Errorf("Still image should not carry a sample time, got %v", img.TimeSec)
	}

	overlay, ok := layers[1].(scene.Fill)
	if !ok {
		t.Fatalf("Second layer should be the overlay, got %T", layers[1])
	}
	if overlay.Opacity != 0.4 {
		t.Errorf("Overlay opacity %v, expected 0.4", overlay.Opacity)
	}

	// Video sources are sampled at the clip timestamp
	props.Type = MediaVideo
	video := BackgroundMedia(90, testCfg, props)[0].(scene.Image)
	if video.TimeSec != 3.0 {
		t.Errorf("Video sample time at frame 90 should be 3.0s, got %v", video.TimeSec)
	}
}

func TestAlternateZoom(t *testing.T) {
	if AlternateZoom(0) != ZoomIn || AlternateZoom(2) != ZoomIn {
		t.Error("Even indices should zoom in")
	}
	if AlternateZoom(1) != ZoomOut || AlternateZoom(3) != ZoomOut {
		t.Error("Odd indices should zoom out")
	}
}

func TestProgressBarMonotonic(t *testing.T) {
	props := BarProps{Position: BarBottom, Color: color.RGBA{255, 255, 255, 255}}

	prev := -1.0
	for f := 0; f < testCfg.DurationInFrames; f++ {
		bar := ProgressBar(f, testCfg, props)
		if bar.Frac < prev {
			t.Fatalf("Fill decreased at frame %d: %v < %v", f, bar.Frac, prev)
		}
		prev = bar.Frac
	}

	// Clamped right: past the end the bar stays full
	if got := ProgressBar(testCfg.DurationInFrames+100, testCfg, props).Frac; got != 1.0 {
		t.Errorf("Fill past clip end should stay 1.0, got %v", got)
	}

	// Bottom placement sits at the lower edge
	bar := ProgressBar(0, testCfg, props)
	if bar.Rect.Y != float64(testCfg.Height)-bar.Rect.H {
		t.Errorf("Bottom bar at y=%v with height %v in %dpx frame", bar.Rect.Y, bar.Rect.H, testCfg.Height)
	}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
