package template

import (
	"image/color"

	"github.com/presenceos/video-engine/internal/element"
	"github.com/presenceos/video-engine/internal/scene"
	"github.com/presenceos/video-engine/internal/timeline"
)

// TextPosition anchors a slide caption vertically.
type TextPosition int

const (
	PositionCenter TextPosition = iota
	PositionTop
	PositionBottom
)

// ParsePosition maps the job-file spelling to a TextPosition. Unknown values
// fall back to center.
func ParsePosition(s string) TextPosition {
	switch s {
	case "top":
		return PositionTop
	case "bottom":
		return PositionBottom
	default:
		return PositionCenter
	}
}

// StorySlide is one image-plus-caption beat of the story.
type StorySlide struct {
	Text     string
	Image    string
	Position TextPosition
}

// StoryProps parameterizes the daily story. OverlayOpacity darkens each
// slide image so captions stay readable over bright photos.
type StoryProps struct {
	Brand          Brand
	Slides         []StorySlide
	DateText       string
	OverlayColor   color.RGBA
	OverlayOpacity float64
	AutoFocus      bool
}

// DailyStory divides the clip evenly across the slides, story-app style:
// every slide gets an 8-frame fade-in over its zoomed image, and a row of
// segment bars across the top fills left to right as the clip advances.
// The header chrome stays mounted for the whole clip.
type DailyStory struct {
	p StoryProps
}

func NewDailyStory(p StoryProps) *DailyStory {
	return &DailyStory{p: p}
}

func (t *DailyStory) Name() string     { return NameDailyStory }
func (t *DailyStory) Describe() string { return Describe(NameDailyStory) }

// PerSlide returns the whole-frame length of one slide window.
func (t *DailyStory) PerSlide(cfg timeline.VideoConfig) int {
	n := len(t.p.Slides)
	if n < 1 {
		n = 1
	}
	return cfg.DurationInFrames / n
}

// SlideWindow returns the sequence window of slide i. The last slide absorbs
// the integer-division remainder so the clip never runs out of content, while
// the indicator math keeps the exact even split.
func (t *DailyStory) SlideWindow(i int, cfg timeline.VideoConfig) timeline.Sequence {
	perSlide := t.PerSlide(cfg)
	seq := timeline.Sequence{From: i * perSlide, DurationInFrames: perSlide}
	if i == len(t.p.Slides)-1 {
		seq.DurationInFrames = cfg.DurationInFrames - seq.From
	}
	return seq
}

func (t *DailyStory) Layers(frame int, cfg timeline.VideoConfig) []scene.Layer {
	w := float64(cfg.Width)
	h := float64(cfg.Height)

	var layers []scene.Layer
	layers = append(layers, scene.Fill{Color: t.p.Brand.Primary, Opacity: 1})

	for i, slide := range t.p.Slides {
		win := t.SlideWindow(i, cfg)
		if !win.Contains(frame) {
			continue
		}
		local := win.Local(frame)
		fade := timeline.Interpolate(float64(local), 0, 8, 0, 1, timeline.ClampBoth)

		if slide.Image != "" {
			media := element.BackgroundMedia(local, cfg, element.MediaProps{
				Src:            slide.Image,
				Type:           element.MediaImage,
				Zoom:           element.AlternateZoom(i),
				AutoFocus:      t.p.AutoFocus,
				OverlayColor:   t.p.OverlayColor,
				OverlayOpacity: t.p.OverlayOpacity,
			})
			for _, m := range media {
				switch v := m.(type) {
				case scene.Image:
					v.Opacity *= fade
					layers = append(layers, v)
				case scene.Fill:
					v.Opacity *= fade
					layers = append(layers, v)
				default:
					layers = append(layers, m)
				}
			}
		}

		if slide.Text != "" {
			txt := element.AnimatedText(local, cfg, element.TextProps{
				Text:   slide.Text,
				Style:  element.StyleFade,
				Size:   0.030 * h,
				Color:  t.p.Brand.Text,
				Weight: scene.WeightBold,
				Align:  scene.AlignCenter,
				Pos:    scene.Point{X: w / 2, Y: t.textY(slide.Position, h)},
				Shadow: true,
			})
			txt.MaxW = 0.84 * w
			txt.Opacity = fade
			layers = append(layers, txt)
		}
	}

	layers = append(layers, t.chrome(frame, cfg)...)
	return layers
}

func (t *DailyStory) textY(pos TextPosition, h float64) float64 {
	switch pos {
	case PositionTop:
		return 0.14 * h
	case PositionBottom:
		return 0.78 * h
	default:
		return 0.48 * h
	}
}

// chrome draws the always-on header: segment bars, brand name and date. The
// bar fill tracks the global frame so progress never resets between slides.
func (t *DailyStory) chrome(frame int, cfg timeline.VideoConfig) []scene.Layer {
	w := float64(cfg.Width)
	h := float64(cfg.Height)
	n := len(t.p.Slides)

	var layers []scene.Layer

	if n > 0 {
		perSlide := t.PerSlide(cfg)
		margin := 0.04 * w
		gap := 0.008 * w
		segW := (w - 2*margin - float64(n-1)*gap) / float64(n)
		for i := 0; i < n; i++ {
			from := float64(i * perSlide)
			fill := timeline.Interpolate(float64(frame), from, from+float64(perSlide), 0, 1, timeline.ClampBoth)
			layers = append(layers, scene.Bar{
				Rect:       scene.Rect{X: margin + float64(i)*(segW+gap), Y: 0.02 * h, W: segW, H: 4},
				Frac:       fill,
				Color:      t.p.Brand.Text,
				TrackColor: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x59},
				Opacity:    1,
			})
		}
	}

	if t.p.Brand.Name != "" {
		layers = append(layers, scene.Text{
			Content: t.p.Brand.Name,
			Size:    0.016 * h,
			Weight:  scene.WeightBold,
			Color:   t.p.Brand.Text,
			Opacity: 1,
			Align:   scene.AlignLeft,
			Pos:     scene.Point{X: 0.06 * w, Y: 0.045 * h},
			Scale:   1,
			Shadow:  true,
		})
	}
	if t.p.DateText != "" {
		layers = append(layers, scene.Text{
			Content: t.p.DateText,
			Size:    0.014 * h,
			Weight:  scene.WeightNormal,
			Color:   t.p.Brand.Text,
			Opacity: 0.85,
			Align:   scene.AlignLeft,
			Pos:     scene.Point{X: 0.06 * w, Y: 0.072 * h},
			Scale:   1,
		})
	}

	return layers
}
