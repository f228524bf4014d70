package template

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Job is the YAML render job: which template to run, the brand kit, the
// clip geometry and the template-specific content section. Exactly one of
// Promo, Showcase or Story should be set, matching the Template field.
type Job struct {
	Version    string         `yaml:"version"`
	Template   string         `yaml:"template"`
	Output     OutputSpec     `yaml:"output"`
	Brand      BrandSpec      `yaml:"brand"`
	Background BackgroundSpec `yaml:"background,omitempty"`
	Audio      AudioSpec      `yaml:"audio,omitempty"`
	Promo      *PromoSpec     `yaml:"promo,omitempty"`
	Showcase   *ShowcaseSpec  `yaml:"showcase,omitempty"`
	Story      *StorySpec     `yaml:"story,omitempty"`
}

// OutputSpec controls clip geometry and encoding. Preset fills Width,
// Height and FPS when they are zero; Duration zero means the template
// default.
type OutputSpec struct {
	Path     string  `yaml:"path,omitempty"`
	Preset   string  `yaml:"preset,omitempty"`
	Width    int     `yaml:"width,omitempty"`
	Height   int     `yaml:"height,omitempty"`
	FPS      int     `yaml:"fps,omitempty"`
	Duration float64 `yaml:"duration,omitempty"` // Seconds
	Format   string  `yaml:"format,omitempty"`   // mp4, avi, gif, png
	Quality  int     `yaml:"quality,omitempty"`  // 0-100, encoder scale
	Encoder  string  `yaml:"encoder,omitempty"`  // auto, libx264, h264_videotoolbox, h264_nvenc
}

// BrandSpec is the brand kit. Colors are hex strings (#RRGGBB or #RGB).
type BrandSpec struct {
	Name    string `yaml:"name"`
	Primary string `yaml:"primary,omitempty"`
	Accent  string `yaml:"accent,omitempty"`
	Text    string `yaml:"text,omitempty"`
	Font    string `yaml:"font,omitempty"`
}

// BackgroundSpec names the base media of the clip.
type BackgroundSpec struct {
	Src            string  `yaml:"src"`
	Type           string  `yaml:"type,omitempty"`  // image or video
	Zoom           string  `yaml:"zoom,omitempty"`  // in, out, none
	Focus          string  `yaml:"focus,omitempty"` // auto, center, or "x,y" normalized
	Overlay        string  `yaml:"overlay,omitempty"`
	OverlayOpacity float64 `yaml:"overlay_opacity,omitempty"`
}

// AudioSpec names an optional soundtrack. Sync stretches the clip duration
// to the track length.
type AudioSpec struct {
	Src  string  `yaml:"src,omitempty"`
	Sync bool    `yaml:"sync,omitempty"`
	Fade float64 `yaml:"fade,omitempty"` // Fade-out tail in seconds
}

// PromoSpec is the promo_flash content section.
type PromoSpec struct {
	Discount    string `yaml:"discount"`
	Headline    string `yaml:"headline"`
	Subheadline string `yaml:"subheadline,omitempty"`
	Code        string `yaml:"code,omitempty"`
	CTA         string `yaml:"cta,omitempty"`
	Expiry      string `yaml:"expiry,omitempty"`
	QR          bool   `yaml:"qr,omitempty"`
}

// ShowcaseSpec is the restaurant_showcase content section.
type ShowcaseSpec struct {
	Tagline  string     `yaml:"tagline,omitempty"`
	OutroCTA string     `yaml:"outro_cta,omitempty"`
	Dishes   []DishSpec `yaml:"dishes"`
}

// DishSpec is one dish of the showcase rotation.
type DishSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Price       string `yaml:"price,omitempty"`
	Image       string `yaml:"image"`
}

// StorySpec is the daily_story content section.
type StorySpec struct {
	Date   string      `yaml:"date,omitempty"`
	Slides []SlideSpec `yaml:"slides"`
}

// SlideSpec is one beat of the story.
type SlideSpec struct {
	Text     string `yaml:"text,omitempty"`
	Image    string `yaml:"image"`
	Position string `yaml:"position,omitempty"` // top, center, bottom
}

// ReadJob reads a render job from a YAML file.
func ReadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parsing job file: %w", err)
	}

	return &job, nil
}

// WriteJob writes a render job to a YAML file.
func WriteJob(job *Job, path string) error {
	data, err := yaml.Marshal(job)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the job for errors that would only surface mid-render.
func (j *Job) Validate() error {
	name := strings.TrimSpace(j.Template)
	if name == "" {
		return fmt.Errorf("job has no template")
	}

	known := false
	for _, n := range Names() {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown template %q (have: %s)", name, strings.Join(Names(), ", "))
	}

	if j.Output.Width < 0 || j.Output.Height < 0 {
		return fmt.Errorf("output size %dx%d is negative", j.Output.Width, j.Output.Height)
	}
	if j.Output.FPS < 0 {
		return fmt.Errorf("output fps %d is negative", j.Output.FPS)
	}
	if j.Output.Duration < 0 {
		return fmt.Errorf("output duration %.2fs is negative", j.Output.Duration)
	}
	if j.Output.Quality < 0 || j.Output.Quality > 100 {
		return fmt.Errorf("quality %d out of range 0-100", j.Output.Quality)
	}

	switch name {
	case NamePromoFlash:
		if j.Promo == nil {
			return fmt.Errorf("template %s needs a promo section", name)
		}
	case NameShowcase:
		if j.Showcase == nil {
			return fmt.Errorf("template %s needs a showcase section", name)
		}
	case NameDailyStory:
		if j.Story == nil {
			return fmt.Errorf("template %s needs a story section", name)
		}
		for i, s := range j.Story.Slides {
			switch s.Position {
			case "", "top", "center", "bottom":
			default:
				return fmt.Errorf("slide %d: unknown position %q", i+1, s.Position)
			}
		}
	}

	return nil
}

// DefaultDuration returns the clip length in seconds used when the job does
// not set one. Rotating templates scale with their content count.
func (j *Job) DefaultDuration() float64 {
	switch j.Template {
	case NameShowcase:
		n := 0
		if j.Showcase != nil {
			n = len(j.Showcase.Dishes)
		}
		d := 3.0 + 2.5*float64(n)
		if d < 6 {
			d = 6
		}
		return d
	case NameDailyStory:
		n := 0
		if j.Story != nil {
			n = len(j.Story.Slides)
		}
		d := 3.0 * float64(n)
		if d < 3 {
			d = 3
		}
		return d
	default:
		return 12
	}
}

// ExampleJob returns a filled-in starter job for the named template,
// used by the init command to scaffold a file worth editing.
func ExampleJob(name string) *Job {
	job := &Job{
		Version:  "1",
		Template: name,
		Output: OutputSpec{
			Preset: "instagram_story",
			Format: "mp4",
		},
		Brand: BrandSpec{
			Name:    "Casa Verde",
			Primary: "#1A1A2E",
			Accent:  "#E94560",
			Text:    "#FFFFFF",
		},
	}

	switch name {
	case NameShowcase:
		job.Background = BackgroundSpec{Src: "assets/interior.jpg", Type: "image", Zoom: "in", Focus: "auto"}
		job.Showcase = &ShowcaseSpec{
			Tagline:  "Fresh from our kitchen",
			OutroCTA: "Book your table",
			Dishes: []DishSpec{
				{Name: "Burrata di Puglia", Description: "Creamy burrata, heirloom tomatoes, basil oil", Price: "$14", Image: "assets/burrata.jpg"},
				{Name: "Tagliatelle al Ragu", Description: "Slow braised beef, 36-hour ragu", Price: "$22", Image: "assets/tagliatelle.jpg"},
				{Name: "Tiramisu", Description: "Espresso-soaked, made this morning", Price: "$9", Image: "assets/tiramisu.jpg"},
			},
		}
	case NameDailyStory:
		job.Story = &StorySpec{
			Date: "Today",
			Slides: []SlideSpec{
				{Text: "Good morning!", Image: "assets/morning.jpg", Position: "top"},
				{Text: "Lunch special: truffle risotto", Image: "assets/risotto.jpg", Position: "center"},
				{Text: "See you tonight", Image: "assets/evening.jpg", Position: "bottom"},
			},
		}
	default:
		job.Background = BackgroundSpec{Src: "assets/hero.jpg", Type: "image", Zoom: "in", Overlay: "#000000", OverlayOpacity: 0.35}
		job.Promo = &PromoSpec{
			Discount:    "30% OFF",
			Headline:    "Weekend Flash Sale",
			Subheadline: "Everything on the menu",
			Code:        "FLASH30",
			CTA:         "Order now",
			Expiry:      "Ends Sunday midnight",
		}
	}

	return job
}
