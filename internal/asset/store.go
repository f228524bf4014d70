package asset

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/presenceos/video-engine/internal/analyzer"
)

// Store resolves media references to decoded frames. A reference is a path
// relative to the store root, optionally with a page suffix for documents:
//
//	interior.jpg          still image (jpeg, png, gif, webp, bmp)
//	menu.pdf#3            page 3 of a PDF, rendered at the store DPI
//	intro.mp4             video, sampled per frame via VideoFrame
//
// Decoded frames and detected focus anchors live in bounded LRU caches, so
// a 900-frame render touches each asset once. All methods are safe for
// concurrent use by render workers.
type Store struct {
	root     string
	ffmpeg   string
	dpi      float64
	detector analyzer.Detector

	frames *lru.Cache[string, image.Image]
	focus  *lru.Cache[string, image.Point]
}

// Option tweaks a Store at construction time.
type Option func(*Store)

// WithFFmpeg sets the ffmpeg binary used for video frame grabs.
func WithFFmpeg(path string) Option {
	return func(s *Store) { s.ffmpeg = path }
}

// WithDPI sets the render resolution for document pages.
func WithDPI(dpi float64) Option {
	return func(s *Store) { s.dpi = dpi }
}

// WithDetector overrides the focus detection strategy.
func WithDetector(d analyzer.Detector) Option {
	return func(s *Store) { s.detector = d }
}

// NewStore creates a store rooted at dir. cacheSize bounds the number of
// decoded frames held in memory; 0 picks a default suitable for template
// renders (a handful of dish photos plus per-frame video grabs).
func NewStore(dir string, cacheSize int, opts ...Option) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = 48
	}

	frames, err := lru.New[string, image.Image](cacheSize)
	if err != nil {
		return nil, err
	}
	focus, err := lru.New[string, image.Point](cacheSize)
	if err != nil {
		return nil, err
	}

	s := &Store{
		root:     dir,
		ffmpeg:   "ffmpeg",
		dpi:      150,
		detector: analyzer.NewSaliencyDetector(),
		frames:   frames,
		focus:    focus,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Resolve joins a reference path with the store root. Absolute references
// pass through untouched.
func (s *Store) Resolve(ref string) string {
	path, _ := SplitRef(ref)
	if filepath.IsAbs(path) || s.root == "" {
		return path
	}
	return filepath.Join(s.root, path)
}

// Image returns the decoded frame for a still or document reference.
func (s *Store) Image(ref string) (image.Image, error) {
	if cached, ok := s.frames.Get(ref); ok {
		return cached, nil
	}

	path, page := SplitRef(ref)
	full := s.Resolve(ref)

	var img image.Image
	var err error
	switch {
	case IsPDF(path):
		img, err = renderPDFPage(full, page, s.dpi)
	case IsVideo(path):
		return nil, fmt.Errorf("%s is a video, use VideoFrame", ref)
	default:
		img, err = decodeStill(full)
	}
	if err != nil {
		return nil, err
	}

	s.frames.Add(ref, img)
	return img, nil
}

// VideoFrame grabs one frame of a video at the given time offset. Grabs are
// cached at 10ms granularity, so a still camera shot across consecutive
// frames reuses the same decode.
func (s *Store) VideoFrame(ref string, timeSec float64) (image.Image, error) {
	if timeSec < 0 {
		timeSec = 0
	}
	key := fmt.Sprintf("%s@%.2f", ref, timeSec)
	if cached, ok := s.frames.Get(key); ok {
		return cached, nil
	}

	img, err := extractVideoFrame(s.ffmpeg, s.Resolve(ref), timeSec)
	if err != nil {
		return nil, err
	}

	s.frames.Add(key, img)
	return img, nil
}

// Frame dispatches on the reference type: video references are sampled at
// timeSec, everything else ignores it.
func (s *Store) Frame(ref string, timeSec float64) (image.Image, error) {
	path, _ := SplitRef(ref)
	if IsVideo(path) {
		return s.VideoFrame(ref, timeSec)
	}
	return s.Image(ref)
}

// Focus returns the zoom anchor for a reference, detecting it on first use.
func (s *Store) Focus(ref string) (image.Point, error) {
	if cached, ok := s.focus.Get(ref); ok {
		return cached, nil
	}

	img, err := s.Frame(ref, 0)
	if err != nil {
		return image.Point{}, err
	}

	f, err := s.detector.Detect(img)
	if err != nil {
		return image.Point{}, err
	}

	s.focus.Add(ref, f.Point)
	return f.Point, nil
}

// Stat reports whether the referenced file exists on disk.
func (s *Store) Stat(ref string) error {
	path, _ := SplitRef(ref)
	if _, err := os.Stat(s.Resolve(path)); err != nil {
		return fmt.Errorf("asset %s: %w", ref, err)
	}
	return nil
}

// Purge drops every cached frame and anchor.
func (s *Store) Purge() {
	s.frames.Purge()
	s.focus.Purge()
}

// SplitRef separates a reference into its file path and page number. The
// page defaults to 1 when no suffix is present or the suffix is malformed.
func SplitRef(ref string) (string, int) {
	idx := strings.LastIndex(ref, "#")
	if idx < 0 {
		return ref, 1
	}
	page, err := strconv.Atoi(ref[idx+1:])
	if err != nil || page < 1 {
		return ref, 1
	}
	return ref[:idx], page
}

// IsPDF reports whether the path names a renderable document.
func IsPDF(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".epub", ".xps":
		return true
	}
	return false
}

// IsVideo reports whether the path names a video container.
func IsVideo(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".mkv", ".avi", ".webm", ".m4v":
		return true
	}
	return false
}

func decodeStill(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
