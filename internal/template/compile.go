package template

import (
	"fmt"

	"github.com/presenceos/video-engine/internal/element"
	"github.com/presenceos/video-engine/internal/scene"
)

// compileBrand resolves the job brand kit against the default palette.
func compileBrand(job *Job) Brand {
	return Brand{
		Name:    job.Brand.Name,
		Primary: scene.HexOr(job.Brand.Primary, defaultPrimary),
		Accent:  scene.HexOr(job.Brand.Accent, defaultAccent),
		Text:    scene.HexOr(job.Brand.Text, defaultText),
	}
}

// compileBackground turns the job background section into media props.
func compileBackground(job *Job) element.MediaProps {
	bg := job.Background
	anchor, auto := parseFocus(bg.Focus)
	return element.MediaProps{
		Src:            bg.Src,
		Type:           parseMediaType(bg.Type),
		Zoom:           parseZoom(bg.Zoom),
		Anchor:         anchor,
		AutoFocus:      auto,
		OverlayColor:   scene.HexOr(bg.Overlay, black),
		OverlayOpacity: bg.OverlayOpacity,
	}
}

// parseFocus reads the focus mode: "auto" turns subject detection on and
// "x,y" pins a normalized anchor. Anything else keeps the source center.
func parseFocus(s string) (scene.Point, bool) {
	if s == "auto" {
		return scene.Point{}, true
	}
	var x, y float64
	if n, _ := fmt.Sscanf(s, "%f,%f", &x, &y); n == 2 {
		return scene.Point{X: x, Y: y}, false
	}
	return scene.Point{}, false
}

func parseMediaType(s string) element.MediaType {
	if s == "video" {
		return element.MediaVideo
	}
	return element.MediaImage
}

func parseZoom(s string) element.ZoomDirection {
	switch s {
	case "out":
		return element.ZoomOut
	case "none":
		return element.ZoomNone
	default:
		return element.ZoomIn
	}
}

func compilePromo(job *Job) PromoFlashProps {
	p := PromoFlashProps{
		Brand:      compileBrand(job),
		Background: compileBackground(job),
	}
	if s := job.Promo; s != nil {
		p.Discount = s.Discount
		p.Headline = s.Headline
		p.Subheadline = s.Subheadline
		p.Code = s.Code
		p.CTA = s.CTA
		p.Expiry = s.Expiry
		p.ShowQR = s.QR
	}
	return p
}

func compileShowcase(job *Job) ShowcaseProps {
	p := ShowcaseProps{
		Brand:      compileBrand(job),
		Background: compileBackground(job),
	}
	if s := job.Showcase; s != nil {
		p.Tagline = s.Tagline
		p.OutroCTA = s.OutroCTA
		for _, d := range s.Dishes {
			p.Dishes = append(p.Dishes, Dish{
				Name:        d.Name,
				Description: d.Description,
				Price:       d.Price,
				Image:       d.Image,
			})
		}
	}
	return p
}

func compileStory(job *Job) StoryProps {
	p := StoryProps{
		Brand:          compileBrand(job),
		OverlayColor:   scene.HexOr(job.Background.Overlay, black),
		OverlayOpacity: job.Background.OverlayOpacity,
		AutoFocus:      job.Background.Focus == "auto",
	}
	// Stories darken every slide a touch by default so white captions
	// survive bright photos
	if job.Background.Overlay == "" && job.Background.OverlayOpacity == 0 {
		p.OverlayOpacity = 0.30
	}
	if s := job.Story; s != nil {
		p.DateText = s.Date
		for _, sl := range s.Slides {
			p.Slides = append(p.Slides, StorySlide{
				Text:     sl.Text,
				Image:    sl.Image,
				Position: ParsePosition(sl.Position),
			})
		}
	}
	return p
}
