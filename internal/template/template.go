package template

import (
	"fmt"
	"image/color"

	"github.com/presenceos/video-engine/internal/scene"
	"github.com/presenceos/video-engine/internal/timeline"
)

// Template is a complete short-form marketing video: a pure function from the
// clip frame to the scene layers visible at that instant. Implementations
// hold only immutable props; evaluating a frame never mutates anything, so a
// template is safe to share across render workers.
type Template interface {
	Name() string
	Describe() string
	Layers(frame int, cfg timeline.VideoConfig) []scene.Layer
}

// Template names accepted in job documents.
const (
	NamePromoFlash = "promo_flash"
	NameShowcase   = "restaurant_showcase"
	NameDailyStory = "daily_story"
)

// Names lists the available templates in presentation order.
func Names() []string {
	return []string{NamePromoFlash, NameShowcase, NameDailyStory}
}

// Brand carries the identity shared by every template.
type Brand struct {
	Name    string
	Primary color.RGBA
	Accent  color.RGBA
	Text    color.RGBA
}

// Default palette, used when a job omits brand colors.
var (
	defaultPrimary = color.RGBA{R: 0x1A, G: 0x1A, B: 0x2E, A: 0xFF}
	defaultAccent  = color.RGBA{R: 0xE9, G: 0x45, B: 0x60, A: 0xFF}
	defaultText    = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	white          = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black          = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
)

// Build compiles a job document into a renderable template.
func Build(job *Job) (Template, error) {
	if job == nil {
		return nil, fmt.Errorf("nil job")
	}

	switch job.Template {
	case NamePromoFlash:
		return NewPromoFlash(compilePromo(job)), nil
	case NameShowcase:
		return NewShowcase(compileShowcase(job)), nil
	case NameDailyStory:
		return NewDailyStory(compileStory(job)), nil
	default:
		return nil, fmt.Errorf("unknown template: %s", job.Template)
	}
}

// Describe returns the one-line description for a template name.
func Describe(name string) string {
	switch name {
	case NamePromoFlash:
		return "high-energy flash sale promo with discount badge, promo code and CTA"
	case NameShowcase:
		return "branded intro, dish-by-dish tour with caption cards, closing CTA"
	case NameDailyStory:
		return "story-format slide rotation with segmented progress indicator"
	default:
		return ""
	}
}

// scaleRect grows or shrinks a rect about its center.
func scaleRect(r scene.Rect, s float64) scene.Rect {
	cx := r.X + r.W/2
	cy := r.Y + r.H/2
	w := r.W * s
	h := r.H * s
	return scene.Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}
