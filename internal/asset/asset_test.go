package asset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{A: 0xFF})
		}
	}
	// A bright square in the lower right gives the detector a subject
	for y := h / 2; y < h*3/4; y++ {
		for x := w / 2; x < w*3/4; x++ {
			img.Set(x, y, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding %s: %v", path, err)
	}
	return path
}

func TestSplitRef(t *testing.T) {
	tests := []struct {
		ref      string
		wantPath string
		wantPage int
	}{
		{"menu.pdf#3", "menu.pdf", 3},
		{"menu.pdf", "menu.pdf", 1},
		{"photo.jpg", "photo.jpg", 1},
		{"dir/menu.pdf#12", "dir/menu.pdf", 12},
		{"menu.pdf#0", "menu.pdf#0", 1},         // page numbers start at 1
		{"weird#name.jpg", "weird#name.jpg", 1}, // not a page suffix
	}

	for _, tt := range tests {
		path, page := SplitRef(tt.ref)
		if path != tt.wantPath || page != tt.wantPage {
			t.Errorf("SplitRef(%q) = (%q, %d), want (%q, %d)", tt.ref, path, page, tt.wantPath, tt.wantPage)
		}
	}
}

func TestRefKinds(t *testing.T) {
	videos := []string{"a.mp4", "b.MOV", "c.mkv", "d.webm", "clip.m4v"}
	for _, v := range videos {
		if !IsVideo(v) {
			t.Errorf("IsVideo(%q) = false", v)
		}
	}
	stills := []string{"a.jpg", "b.png", "c.webp", "d.gif"}
	for _, s := range stills {
		if IsVideo(s) || IsPDF(s) {
			t.Errorf("%q misclassified", s)
		}
	}
	if !IsPDF("menu.PDF") || !IsPDF("book.epub") {
		t.Errorf("document extensions misclassified")
	}
}

func TestStoreResolve(t *testing.T) {
	s, err := NewStore("/assets", 4)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if got := s.Resolve("dish.jpg"); got != filepath.Join("/assets", "dish.jpg") {
		t.Errorf("Resolve relative = %q", got)
	}
	if got := s.Resolve("/abs/dish.jpg"); got != "/abs/dish.jpg" {
		t.Errorf("Resolve absolute = %q", got)
	}
	if got := s.Resolve("menu.pdf#2"); got != filepath.Join("/assets", "menu.pdf") {
		t.Errorf("Resolve page ref = %q, want the bare file path", got)
	}
}

func TestStoreImageCaching(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "dish.png", 120, 120)

	s, err := NewStore(dir, 4)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	first, err := s.Image("dish.png")
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	if first.Bounds().Dx() != 120 {
		t.Errorf("Decoded width = %d, want 120", first.Bounds().Dx())
	}

	second, err := s.Image("dish.png")
	if err != nil {
		t.Fatalf("Second Image failed: %v", err)
	}
	if first != second {
		t.Errorf("Second lookup should hit the cache")
	}

	s.Purge()
	third, err := s.Image("dish.png")
	if err != nil {
		t.Fatalf("Image after purge failed: %v", err)
	}
	if third == first {
		t.Errorf("Purge should force a fresh decode")
	}
}

func TestStoreFocus(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "dish.png", 200, 200)

	s, err := NewStore(dir, 4)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	anchor, err := s.Focus("dish.png")
	if err != nil {
		t.Fatalf("Focus failed: %v", err)
	}

	// The bright square sits in the lower-right quadrant
	if anchor.X <= 100 || anchor.Y <= 100 {
		t.Errorf("Anchor = %v, want inside the lower-right subject", anchor)
	}

	again, err := s.Focus("dish.png")
	if err != nil {
		t.Fatalf("Second Focus failed: %v", err)
	}
	if again != anchor {
		t.Errorf("Cached anchor = %v, want %v", again, anchor)
	}
}

func TestStoreImageRejectsVideo(t *testing.T) {
	s, err := NewStore(t.TempDir(), 4)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if _, err := s.Image("clip.mp4"); err == nil {
		t.Errorf("Image should refuse video references")
	}
}

func TestStoreStat(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "here.png", 10, 10)

	s, err := NewStore(dir, 4)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := s.Stat("here.png"); err != nil {
		t.Errorf("Stat existing = %v", err)
	}
	if err := s.Stat("missing.png"); err == nil {
		t.Errorf("Stat missing should fail")
	}
}
