package template

import (
	"path/filepath"
	"testing"
)

func TestJobWriteRead(t *testing.T) {
	job := ExampleJob(NamePromoFlash)
	path := filepath.Join(t.TempDir(), "job.yaml")

	if err := WriteJob(job, path); err != nil {
		t.Fatalf("WriteJob failed: %v", err)
	}

	read, err := ReadJob(path)
	if err != nil {
		t.Fatalf("ReadJob failed: %v", err)
	}

	if read.Template != job.Template {
		t.Errorf("Template mismatch: expected %s, got %s", job.Template, read.Template)
	}
	if read.Brand.Name != job.Brand.Name {
		t.Errorf("Brand mismatch: expected %s, got %s", job.Brand.Name, read.Brand.Name)
	}
	if read.Promo == nil {
		t.Fatalf("Promo section lost in round trip")
	}
	if read.Promo.Code != job.Promo.Code {
		t.Errorf("Code mismatch: expected %s, got %s", job.Promo.Code, read.Promo.Code)
	}
	if read.Output.Preset != "instagram_story" {
		t.Errorf("Preset mismatch: got %s", read.Output.Preset)
	}
}

func TestJobValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Job)
		wantErr bool
	}{
		{"valid example", func(j *Job) {}, false},
		{"empty template", func(j *Job) { j.Template = "" }, true},
		{"unknown template", func(j *Job) { j.Template = "super_bowl_ad" }, true},
		{"missing section", func(j *Job) { j.Promo = nil }, true},
		{"negative fps", func(j *Job) { j.Output.FPS = -1 }, true},
		{"negative duration", func(j *Job) { j.Output.Duration = -2 }, true},
		{"quality out of range", func(j *Job) { j.Output.Quality = 150 }, true},
	}

	for _, tt := range tests {
		job := ExampleJob(NamePromoFlash)
		tt.mutate(job)
		err := job.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr = %v", tt.name, err, tt.wantErr)
		}
	}

	story := ExampleJob(NameDailyStory)
	story.Story.Slides[0].Position = "sideways"
	if err := story.Validate(); err == nil {
		t.Errorf("Bad slide position should fail validation")
	}
}

func TestBuildAllTemplates(t *testing.T) {
	for _, name := range Names() {
		job := ExampleJob(name)
		if err := job.Validate(); err != nil {
			t.Fatalf("%s: example job invalid: %v", name, err)
		}

		tmpl, err := Build(job)
		if err != nil {
			t.Fatalf("%s: Build failed: %v", name, err)
		}
		if tmpl.Name() != name {
			t.Errorf("Built %s, got template %s", name, tmpl.Name())
		}
		if tmpl.Describe() == "" {
			t.Errorf("%s: empty description", name)
		}

		layers := tmpl.Layers(0, testCfg)
		if len(layers) == 0 {
			t.Errorf("%s: frame 0 renders nothing", name)
		}
	}
}

func TestBuildRejectsUnknown(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Errorf("Build(nil) should fail")
	}
	if _, err := Build(&Job{Template: "nope"}); err == nil {
		t.Errorf("Build with unknown template should fail")
	}
}

func TestDefaultDuration(t *testing.T) {
	promo := ExampleJob(NamePromoFlash)
	if got := promo.DefaultDuration(); got != 12 {
		t.Errorf("Promo default duration = %f, want 12", got)
	}

	showcase := ExampleJob(NameShowcase)
	if got := showcase.DefaultDuration(); got != 10.5 {
		t.Errorf("Showcase with 3 dishes = %f, want 10.5", got)
	}
	showcase.Showcase.Dishes = nil
	if got := showcase.DefaultDuration(); got != 6 {
		t.Errorf("Showcase floor = %f, want 6", got)
	}

	story := ExampleJob(NameDailyStory)
	if got := story.DefaultDuration(); got != 9 {
		t.Errorf("Story with 3 slides = %f, want 9", got)
	}
	story.Story.Slides = nil
	if got := story.DefaultDuration(); got != 3 {
		t.Errorf("Story floor = %f, want 3", got)
	}
}

func TestCompileDefaults(t *testing.T) {
	job := &Job{Template: NamePromoFlash, Promo: &PromoSpec{Discount: "10% OFF"}}

	props := compilePromo(job)
	if props.Brand.Primary != defaultPrimary {
		t.Errorf("Primary = %v, want palette default", props.Brand.Primary)
	}
	if props.Brand.Accent != defaultAccent {
		t.Errorf("Accent = %v, want palette default", props.Brand.Accent)
	}

	job.Brand.Accent = "#00FF00"
	props = compilePromo(job)
	if props.Brand.Accent.G != 0xFF || props.Brand.Accent.R != 0 {
		t.Errorf("Accent = %v, want pure green", props.Brand.Accent)
	}
}

func TestCompileStoryDarkensByDefault(t *testing.T) {
	job := &Job{
		Template: NameDailyStory,
		Story:    &StorySpec{Slides: []SlideSpec{{Text: "hi", Image: "a.jpg"}}},
	}
	props := compileStory(job)
	if props.OverlayOpacity != 0.30 {
		t.Errorf("Default overlay opacity = %f, want 0.30", props.OverlayOpacity)
	}

	job.Background.Overlay = "#102030"
	job.Background.OverlayOpacity = 0.1
	props = compileStory(job)
	if props.OverlayOpacity != 0.1 {
		t.Errorf("Explicit overlay opacity = %f, want 0.1", props.OverlayOpacity)
	}
}
