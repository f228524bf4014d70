package template

import (
	"testing"

	"github.com/presenceos/video-engine/internal/element"
	"github.com/presenceos/video-engine/internal/scene"
)

func testShowcaseProps() ShowcaseProps {
	return ShowcaseProps{
		Brand: Brand{Name: "Casa Verde", Primary: defaultPrimary, Accent: defaultAccent, Text: defaultText},
		Background: element.MediaProps{
			Src:  "interior.jpg",
			Type: element.MediaImage,
			Zoom: element.ZoomIn,
		},
		Tagline:  "Fresh from our kitchen",
		OutroCTA: "Book your table",
		Dishes: []Dish{
			{Name: "Burrata", Description: "Creamy burrata, heirloom tomatoes", Price: "$14", Image: "dish0.jpg"},
			{Name: "Tagliatelle", Description: "Slow braised beef ragu", Price: "$22", Image: "dish1.jpg"},
			{Name: "Tiramisu", Description: "Made this morning", Price: "$9", Image: "dish2.jpg"},
		},
	}
}

func findImage(layers []scene.Layer, src string) (scene.Image, bool) {
	for _, l := range layers {
		if img, ok := l.(scene.Image); ok && img.Src == src {
			return img, true
		}
	}
	return scene.Image{}, false
}

func TestShowcaseDishWindows(t *testing.T) {
	tmpl := NewShowcase(testShowcaseProps())

	// 360 frames at 30fps: 2s intro, 1s outro, (360-90)/3 = 90 per dish
	if got := tmpl.PerDish(testCfg); got != 90 {
		t.Fatalf("PerDish = %d, want 90", got)
	}

	wantFrom := []int{60, 150, 240}
	for i, want := range wantFrom {
		win := tmpl.DishWindow(i, testCfg)
		if win.From != want || win.DurationInFrames != 90 {
			t.Errorf("Dish %d window = [%d, %d), want [%d, %d)", i, win.From, win.From+win.DurationInFrames, want, want+90)
		}
	}
}

func TestShowcaseIntro(t *testing.T) {
	tmpl := NewShowcase(testShowcaseProps())

	layers := tmpl.Layers(30, testCfg)
	if _, found := findText(layers, "Casa Verde"); !found {
		t.Errorf("Frame 30: brand name missing from intro")
	}
	tagline, found := findText(layers, "Fresh from our kitchen")
	if !found {
		t.Fatalf("Frame 30: tagline missing from intro")
	}
	// Tagline fade starts at 0.3s and runs 15 frames, so it is settled by
	// frame 24 and holds through the intro
	if tagline.Opacity != 1.0 {
		t.Errorf("Frame 30: tagline opacity = %f, want 1", tagline.Opacity)
	}

	// Intro ends at 2s sharp
	if _, found := findText(tmpl.Layers(60, testCfg), "Casa Verde"); found {
		t.Errorf("Frame 60: intro text should be unmounted")
	}
}

func TestShowcaseDishLayers(t *testing.T) {
	props := testShowcaseProps()
	tmpl := NewShowcase(props)

	layers := tmpl.Layers(65, testCfg)
	img, found := findImage(layers, "dish0.jpg")
	if !found {
		t.Fatalf("Frame 65: dish 0 photo not mounted")
	}
	if _, found := findImage(layers, "dish1.jpg"); found {
		t.Errorf("Frame 65: dish 1 photo mounted outside its window")
	}
	if _, found := findText(layers, "Burrata"); !found {
		t.Errorf("Frame 65: dish 0 name missing")
	}
	if _, found := findText(layers, "$14"); !found {
		t.Errorf("Frame 65: dish 0 price missing")
	}

	// Zoom alternates: dish 0 pushes in from rest, dish 1 pulls out from peak
	img1, found := findImage(tmpl.Layers(155, testCfg), "dish1.jpg")
	if !found {
		t.Fatalf("Frame 155: dish 1 photo not mounted")
	}
	if img.Scale >= 1.075 {
		t.Errorf("Dish 0 early scale = %f, want near rest", img.Scale)
	}
	if img1.Scale <= 1.075 {
		t.Errorf("Dish 1 early scale = %f, want near peak", img1.Scale)
	}

	hasCard := false
	for _, l := range layers {
		if card, ok := l.(scene.Card); ok && card.Opacity > 0 {
			hasCard = true
		}
	}
	if !hasCard {
		t.Errorf("Frame 65: caption card missing")
	}
}

func TestShowcaseOutro(t *testing.T) {
	tmpl := NewShowcase(testShowcaseProps())

	layers := tmpl.Layers(340, testCfg)
	if _, found := findText(layers, "Book your table"); !found {
		t.Errorf("Frame 340: outro CTA missing")
	}
	if _, found := findImage(layers, "dish2.jpg"); found {
		t.Errorf("Frame 340: last dish photo should be unmounted in the outro")
	}
}

func TestShowcaseZeroDishes(t *testing.T) {
	props := testShowcaseProps()
	props.Dishes = nil
	tmpl := NewShowcase(props)

	// Every frame renders without content: intro, house background, outro
	for frame := 0; frame < testCfg.DurationInFrames; frame++ {
		layers := tmpl.Layers(frame, testCfg)
		if len(layers) == 0 {
			t.Fatalf("Frame %d: no layers at all", frame)
		}
	}

	if _, found := findText(tmpl.Layers(30, testCfg), "Casa Verde"); !found {
		t.Errorf("Frame 30: intro should still run with an empty menu")
	}
	if _, found := findText(tmpl.Layers(340, testCfg), "Book your table"); !found {
		t.Errorf("Frame 340: outro should still run with an empty menu")
	}
	if _, found := findImage(tmpl.Layers(200, testCfg), "interior.jpg"); !found {
		t.Errorf("Frame 200: house background should cover the dish span")
	}
}
