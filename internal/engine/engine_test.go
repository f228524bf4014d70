package engine

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/presenceos/video-engine/internal/asset"
	"github.com/presenceos/video-engine/internal/config"
	"github.com/presenceos/video-engine/internal/scene"
	"github.com/presenceos/video-engine/internal/template"
	"github.com/presenceos/video-engine/internal/timeline"
	"github.com/presenceos/video-engine/internal/video"
)

// indexTemplate paints each frame with its own index in the red channel so
// the encoder can see the write order.
type indexTemplate struct{}

func (indexTemplate) Name() string     { return "index_paint" }
func (indexTemplate) Describe() string { return "frame index in the red channel" }

func (indexTemplate) Layers(frame int, cfg timeline.VideoConfig) []scene.Layer {
	return []scene.Layer{
		scene.Fill{Color: color.RGBA{R: uint8(frame % 256), A: 0xFF}, Opacity: 1},
	}
}

// brokenTemplate references a missing asset on exactly one frame.
type brokenTemplate struct {
	failFrame int
}

func (b brokenTemplate) Name() string     { return "broken" }
func (b brokenTemplate) Describe() string { return "fails on one frame" }

func (b brokenTemplate) Layers(frame int, cfg timeline.VideoConfig) []scene.Layer {
	if frame == b.failFrame {
		return []scene.Layer{scene.Image{Src: "missing.png", Opacity: 1}}
	}
	return []scene.Layer{scene.Fill{Color: color.RGBA{A: 0xFF}, Opacity: 1}}
}

// captureEncoder records the red channel of every frame it is handed. It is
// deliberately lock-free: the pipeline promises a single writer goroutine,
// and -race will catch a violation.
type captureEncoder struct {
	opened bool
	closed bool
	failAt int // fail once this many frames were accepted, -1 never
	reds   []uint8
}

func newCaptureEncoder() *captureEncoder {
	return &captureEncoder{failAt: -1}
}

func (e *captureEncoder) Open(ctx context.Context, cfg config.Render) error {
	e.opened = true
	return nil
}

func (e *captureEncoder) WriteFrame(frame *image.RGBA) error {
	if e.failAt >= 0 && len(e.reds) == e.failAt {
		return errors.New("sink full")
	}
	e.reds = append(e.reds, frame.RGBAAt(0, 0).R)
	return nil
}

func (e *captureEncoder) Close() error {
	e.closed = true
	return nil
}

func testProject(t *testing.T, tpl template.Template, enc video.Encoder, frames, workers int) *Project {
	t.Helper()
	store, err := asset.NewStore(t.TempDir(), 4)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return &Project{
		Config: config.Render{
			Width:          64,
			Height:         48,
			FPS:            30,
			DurationFrames: frames,
			Workers:        workers,
		},
		Template: tpl,
		Store:    store,
		Encoder:  enc,
	}
}

func TestRunWritesFramesInOrder(t *testing.T) {
	enc := newCaptureEncoder()
	p := testProject(t, indexTemplate{}, enc, 97, 4)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !enc.opened || !enc.closed {
		t.Errorf("Encoder lifecycle: opened=%v closed=%v", enc.opened, enc.closed)
	}
	if len(enc.reds) != 97 {
		t.Fatalf("Wrote %d frames, want 97", len(enc.reds))
	}
	for i, r := range enc.reds {
		if r != uint8(i%256) {
			t.Fatalf("Frame %d carries index %d: frames written out of order", i, r)
		}
	}
}

func TestRunSingleWorker(t *testing.T) {
	enc := newCaptureEncoder()
	p := testProject(t, indexTemplate{}, enc, 12, 1)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(enc.reds) != 12 {
		t.Errorf("Wrote %d frames, want 12", len(enc.reds))
	}
}

func TestRunPropagatesRenderError(t *testing.T) {
	enc := newCaptureEncoder()
	p := testProject(t, brokenTemplate{failFrame: 40}, enc, 60, 4)

	err := p.Run(context.Background())
	if err == nil {
		t.Fatal("Run should fail when a layer references a missing asset")
	}
	if !strings.Contains(err.Error(), "frame 40") {
		t.Errorf("Error should name the failing frame, got: %v", err)
	}
	if !enc.closed {
		t.Errorf("Encoder must be closed even after a render error")
	}
}

func TestRunPropagatesWriteError(t *testing.T) {
	enc := newCaptureEncoder()
	enc.failAt = 10
	p := testProject(t, indexTemplate{}, enc, 60, 4)

	err := p.Run(context.Background())
	if err == nil {
		t.Fatal("Run should surface encoder write errors")
	}
	if !strings.Contains(err.Error(), "frame 10") {
		t.Errorf("Error should name the rejected frame, got: %v", err)
	}
}

func TestRunRejectsEmptyClip(t *testing.T) {
	enc := newCaptureEncoder()
	p := testProject(t, indexTemplate{}, enc, 0, 2)

	if err := p.Run(context.Background()); err == nil {
		t.Error("Zero-length clip should be rejected")
	}
	if enc.opened {
		t.Error("Encoder should not be opened for a rejected clip")
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	enc := newCaptureEncoder()
	p := testProject(t, indexTemplate{}, enc, 300, 4)

	if err := p.Run(ctx); err == nil {
		t.Error("Run should fail on a canceled context")
	}
}

func TestRenderFrame(t *testing.T) {
	p := testProject(t, indexTemplate{}, newCaptureEncoder(), 90, 0)

	img, err := p.RenderFrame(5)
	if err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if got := img.RGBAAt(0, 0).R; got != 5 {
		t.Errorf("Frame 5 red channel = %d, want 5", got)
	}
	b := img.Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("Frame bounds = %v, want 64x48", b)
	}

	if _, err := p.RenderFrame(90); err == nil {
		t.Error("Frame index past the clip end should fail")
	}
	if _, err := p.RenderFrame(-1); err == nil {
		t.Error("Negative frame index should fail")
	}
}

func TestFramePool(t *testing.T) {
	pool := NewFramePool(32, 16)

	frame := pool.Get()
	b := frame.Bounds()
	if b.Dx() != 32 || b.Dy() != 16 {
		t.Fatalf("Pool frame bounds = %v, want 32x16", b)
	}

	pool.Put(frame)
	pool.Put(nil) // must not panic

	again := pool.Get()
	if got := again.Bounds(); got.Dx() != 32 || got.Dy() != 16 {
		t.Errorf("Reused frame bounds = %v, want 32x16", got)
	}
}
