package template

import (
	"github.com/presenceos/video-engine/internal/element"
	"github.com/presenceos/video-engine/internal/scene"
	"github.com/presenceos/video-engine/internal/timeline"
)

// Dish is one entry of the showcase rotation.
type Dish struct {
	Name        string
	Description string
	Price       string
	Image       string
}

// ShowcaseProps parameterizes the dish tour. An empty Dishes slice is legal:
// the clip degrades to intro and outro over the house background.
type ShowcaseProps struct {
	Brand      Brand
	Background element.MediaProps
	Tagline    string
	OutroCTA   string
	Dishes     []Dish
}

// Showcase walks through the menu: a 2-second branded intro, one window per
// dish with its photo as a full-bleed background and a caption card, and a
// 1-second closing CTA. The dish span is durationInFrames minus the fixed
// 3 seconds of intro and outro, split evenly with the floor remainder left
// to the house background.
type Showcase struct {
	p ShowcaseProps
}

func NewShowcase(p ShowcaseProps) *Showcase {
	return &Showcase{p: p}
}

func (t *Showcase) Name() string     { return NameShowcase }
func (t *Showcase) Describe() string { return Describe(NameShowcase) }

// DishWindow returns the sequence window of dish i under the given clip
// geometry. The divisor is guarded so a zero-length menu cannot divide by
// zero; callers iterating an empty Dishes slice simply never ask.
func (t *Showcase) DishWindow(i int, cfg timeline.VideoConfig) timeline.Sequence {
	perDish := t.PerDish(cfg)
	return timeline.Sequence{
		From:             2*cfg.FPS + i*perDish,
		DurationInFrames: perDish,
	}
}

// PerDish returns the whole-frame length of one dish window.
func (t *Showcase) PerDish(cfg timeline.VideoConfig) int {
	n := len(t.p.Dishes)
	if n < 1 {
		n = 1
	}
	return (cfg.DurationInFrames - 3*cfg.FPS) / n
}

func (t *Showcase) Layers(frame int, cfg timeline.VideoConfig) []scene.Layer {
	w := float64(cfg.Width)
	h := float64(cfg.Height)

	// House background runs under the whole clip so dish gaps and the
	// degenerate zero-dish case never show black
	layers := []scene.Layer{scene.Fill{Color: t.p.Brand.Primary, Opacity: 1}}
	layers = append(layers, element.BackgroundMedia(frame, cfg, t.p.Background)...)

	intro := timeline.Sequence{From: 0, DurationInFrames: 2 * cfg.FPS}
	if intro.Contains(frame) {
		local := intro.Local(frame)
		if t.p.Brand.Name != "" {
			layers = append(layers, element.AnimatedText(local, cfg, element.TextProps{
				Text:   t.p.Brand.Name,
				Style:  element.StyleSlide,
				Size:   0.055 * h,
				Color:  t.p.Brand.Text,
				Weight: scene.WeightBold,
				Align:  scene.AlignCenter,
				Pos:    scene.Point{X: w / 2, Y: 0.42 * h},
				Shadow: true,
			}))
		}
		if t.p.Tagline != "" {
			layers = append(layers, element.AnimatedText(local, cfg, element.TextProps{
				Text:   t.p.Tagline,
				Style:  element.StyleFade,
				Delay:  cfg.Frame(0.3),
				Size:   0.022 * h,
				Color:  t.p.Brand.Text,
				Weight: scene.WeightNormal,
				Align:  scene.AlignCenter,
				Pos:    scene.Point{X: w / 2, Y: 0.50 * h},
				Shadow: true,
			}))
		}
	}

	for i, dish := range t.p.Dishes {
		win := t.DishWindow(i, cfg)
		if !win.Contains(frame) {
			continue
		}
		local := win.Local(frame)

		layers = append(layers, element.BackgroundMedia(local, cfg, element.MediaProps{
			Src:            dish.Image,
			Type:           element.MediaImage,
			Zoom:           element.AlternateZoom(i),
			AutoFocus:      t.p.Background.AutoFocus,
			OverlayColor:   black,
			OverlayOpacity: 0.25,
		})...)

		layers = append(layers, t.captionCard(local, cfg, dish)...)
	}

	outro := timeline.Sequence{From: cfg.DurationInFrames - cfg.FPS, DurationInFrames: cfg.FPS}
	if outro.Contains(frame) {
		local := outro.Local(frame)
		if t.p.OutroCTA != "" {
			layers = append(layers, element.AnimatedText(local, cfg, element.TextProps{
				Text:   t.p.OutroCTA,
				Style:  element.StyleScale,
				Size:   0.04 * h,
				Color:  t.p.Brand.Text,
				Weight: scene.WeightBold,
				Align:  scene.AlignCenter,
				Pos:    scene.Point{X: w / 2, Y: 0.44 * h},
				Shadow: true,
			}))
		}
		if t.p.Brand.Name != "" {
			layers = append(layers, element.AnimatedText(local, cfg, element.TextProps{
				Text:   t.p.Brand.Name,
				Style:  element.StyleFade,
				Delay:  5,
				Size:   0.02 * h,
				Color:  t.p.Brand.Text,
				Weight: scene.WeightMedium,
				Align:  scene.AlignCenter,
				Pos:    scene.Point{X: w / 2, Y: 0.52 * h},
			}))
		}
	}

	return layers
}

// captionCard builds the dish caption: a dark card with name, price and
// description revealed on a short stagger from the dish window start.
func (t *Showcase) captionCard(local int, cfg timeline.VideoConfig, dish Dish) []scene.Layer {
	w := float64(cfg.Width)
	h := float64(cfg.Height)

	name := element.AnimatedText(local, cfg, element.TextProps{
		Text:   dish.Name,
		Style:  element.StyleSlide,
		Size:   0.03 * h,
		Color:  white,
		Weight: scene.WeightBold,
		Align:  scene.AlignLeft,
		Pos:    scene.Point{X: 0.10 * w, Y: 0.725 * h},
	})

	card := scene.Card{
		Rect:    scene.Rect{X: 0.06 * w, Y: 0.70 * h, W: 0.88 * w, H: 0.16 * h},
		Color:   t.p.Brand.Primary,
		Opacity: 0.88 * name.Opacity,
		Radius:  0.012 * h,
	}

	layers := []scene.Layer{card, name}

	if dish.Price != "" {
		layers = append(layers, element.AnimatedText(local, cfg, element.TextProps{
			Text:   dish.Price,
			Style:  element.StyleFade,
			Delay:  8,
			Size:   0.028 * h,
			Color:  t.p.Brand.Accent,
			Weight: scene.WeightBold,
			Align:  scene.AlignRight,
			Pos:    scene.Point{X: 0.90 * w, Y: 0.725 * h},
		}))
	}

	if dish.Description != "" {
		desc := element.AnimatedText(local, cfg, element.TextProps{
			Text:   dish.Description,
			Style:  element.StyleFade,
			Delay:  5,
			Size:   0.017 * h,
			Color:  white,
			Weight: scene.WeightNormal,
			Align:  scene.AlignLeft,
			Pos:    scene.Point{X: 0.10 * w, Y: 0.775 * h},
		})
		desc.MaxW = 0.80 * w
		layers = append(layers, desc)
	}

	return layers
}
