package template

import (
	"image/color"

	"github.com/presenceos/video-engine/internal/element"
	"github.com/presenceos/video-engine/internal/scene"
	"github.com/presenceos/video-engine/internal/timeline"
)

// PromoFlashProps parameterizes the flash-sale template. Empty text fields
// simply drop their element; nothing here is a hard requirement.
type PromoFlashProps struct {
	Brand       Brand
	Background  element.MediaProps
	Discount    string
	Headline    string
	Subheadline string
	Code        string
	CTA         string
	Expiry      string
	ShowQR      bool
}

// PromoFlash is a high-urgency promo: white flash intro, pulsing discount
// badge, staggered text reveals and a promo code typed out on screen. Every
// mounted element keeps the full clip duration, so reveals stack up rather
// than replace each other.
type PromoFlash struct {
	p PromoFlashProps
}

func NewPromoFlash(p PromoFlashProps) *PromoFlash {
	return &PromoFlash{p: p}
}

func (t *PromoFlash) Name() string     { return NamePromoFlash }
func (t *PromoFlash) Describe() string { return Describe(NamePromoFlash) }

func (t *PromoFlash) Layers(frame int, cfg timeline.VideoConfig) []scene.Layer {
	w := float64(cfg.Width)
	h := float64(cfg.Height)
	full := cfg.DurationInFrames

	layers := []scene.Layer{scene.Fill{Color: t.p.Brand.Primary, Opacity: 1}}
	layers = append(layers, element.BackgroundMedia(frame, cfg, t.p.Background)...)

	// Discount badge, mounted at 0.5s with a 3% pulse that damps out after 2s
	badge := timeline.Sequence{From: cfg.Frame(0.5), DurationInFrames: full}
	if badge.Contains(frame) && t.p.Discount != "" {
		pulse := timeline.Pulse(cfg.Seconds(badge.Local(frame)), 0.03, 2, 2)
		size := 0.045 * h * pulse
		rect := scaleRect(scene.Rect{X: w/2 - 0.23*w, Y: 0.115 * h, W: 0.46 * w, H: 0.085 * h}, pulse)
		layers = append(layers,
			scene.Card{Rect: rect, Color: t.p.Brand.Accent, Opacity: 1, Radius: rect.H / 2},
			scene.Text{
				Content: t.p.Discount,
				Size:    size,
				Weight:  scene.WeightBold,
				Color:   white,
				Opacity: 1,
				Align:   scene.AlignCenter,
				Pos:     scene.Point{X: w / 2, Y: rect.Y + rect.H/2 - size*0.55},
				Scale:   1,
			},
		)
	}

	headline := timeline.Sequence{From: cfg.Frame(1.0), DurationInFrames: full}
	if headline.Contains(frame) && t.p.Headline != "" {
		layers = append(layers, element.AnimatedText(headline.Local(frame), cfg, element.TextProps{
			Text:   t.p.Headline,
			Style:  element.StyleSlide,
			Size:   0.05 * h,
			Color:  t.p.Brand.Text,
			Weight: scene.WeightBold,
			Align:  scene.AlignCenter,
			Pos:    scene.Point{X: w / 2, Y: 0.40 * h},
			Shadow: true,
		}))
	}

	subheadline := timeline.Sequence{From: cfg.Frame(1.3), DurationInFrames: full}
	if subheadline.Contains(frame) && t.p.Subheadline != "" {
		layers = append(layers, element.AnimatedText(subheadline.Local(frame), cfg, element.TextProps{
			Text:   t.p.Subheadline,
			Style:  element.StyleFade,
			Size:   0.024 * h,
			Color:  t.p.Brand.Text,
			Weight: scene.WeightNormal,
			Align:  scene.AlignCenter,
			Pos:    scene.Point{X: w / 2, Y: 0.475 * h},
			Shadow: true,
		}))
	}

	code := timeline.Sequence{From: cfg.Frame(2.0), DurationInFrames: full}
	if code.Contains(frame) && t.p.Code != "" {
		layers = append(layers, element.AnimatedText(code.Local(frame), cfg, element.TextProps{
			Text:   t.p.Code,
			Style:  element.StyleTypewriter,
			Size:   0.042 * h,
			Color:  white,
			Weight: scene.WeightBold,
			Align:  scene.AlignCenter,
			Pos:    scene.Point{X: w / 2, Y: 0.55 * h},
			Shadow: true,
		}))
	}

	// CTA button: spring pop on mount, then a gentle pulse that never stops
	cta := timeline.Sequence{From: cfg.Frame(2.5), DurationInFrames: full}
	if cta.Contains(frame) && t.p.CTA != "" {
		local := cta.Local(frame)
		node := element.AnimatedText(local, cfg, element.TextProps{
			Text:   t.p.CTA,
			Style:  element.StyleScale,
			Size:   0.03 * h,
			Color:  white,
			Weight: scene.WeightBold,
			Align:  scene.AlignCenter,
		})
		scale := node.Scale * timeline.Pulse(cfg.Seconds(local), 0.03, 1.5, 0)
		btn := scaleRect(scene.Rect{X: w/2 - 0.25*w, Y: 0.645 * h, W: 0.50 * w, H: 0.075 * h}, scale)
		node.Scale = scale
		node.Pos = scene.Point{X: w / 2, Y: btn.Y + btn.H/2 - node.Size*scale*0.55}
		layers = append(layers,
			scene.Card{Rect: btn, Color: t.p.Brand.Accent, Opacity: node.Opacity, Radius: btn.H / 2},
			node,
		)
	}

	expiry := timeline.Sequence{From: cfg.Frame(3.0), DurationInFrames: full}
	if expiry.Contains(frame) && t.p.Expiry != "" {
		layers = append(layers, element.AnimatedText(expiry.Local(frame), cfg, element.TextProps{
			Text:   t.p.Expiry,
			Style:  element.StyleFade,
			Size:   0.017 * h,
			Color:  t.p.Brand.Text,
			Weight: scene.WeightNormal,
			Align:  scene.AlignCenter,
			Pos:    scene.Point{X: w / 2, Y: 0.78 * h},
		}))
	}

	if t.p.ShowQR && t.p.Code != "" {
		qr := timeline.Sequence{From: cfg.Frame(2.0), DurationInFrames: full}
		if qr.Contains(frame) {
			side := 0.13 * h
			opacity := timeline.Interpolate(float64(qr.Local(frame)), 0, 15, 0, 1, timeline.ClampBoth)
			layers = append(layers, scene.QR{
				Content: t.p.Code,
				Rect:    scene.Rect{X: w - side - 0.04*w, Y: h - side - 0.05*h, W: side, H: side},
				Opacity: opacity,
			})
		}
	}

	layers = append(layers, element.ProgressBar(frame, cfg, element.BarProps{
		Position:   element.BarBottom,
		Color:      t.p.Brand.Accent,
		TrackColor: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x55},
	}))

	// White flash over everything for the first 0.3s
	flash := timeline.Sequence{From: 0, DurationInFrames: cfg.Frame(0.3)}
	if flash.Contains(frame) {
		layers = append(layers, scene.Fill{
			Color:   white,
			Opacity: timeline.Interpolate(float64(frame), 0, float64(flash.DurationInFrames), 1, 0, timeline.ClampBoth),
		})
	}

	return layers
}
