package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/presenceos/video-engine/internal/asset"
	"github.com/presenceos/video-engine/internal/config"
	"github.com/presenceos/video-engine/internal/render"
	"github.com/presenceos/video-engine/internal/system"
	"github.com/presenceos/video-engine/internal/template"
	"github.com/presenceos/video-engine/internal/timeline"
	"github.com/presenceos/video-engine/internal/video"
)

// Project binds one render together: the compiled template, the asset store
// behind it, the encoder sink and the clip geometry.
type Project struct {
	Config   config.Render
	Template template.Template
	Store    *asset.Store
	Encoder  video.Encoder
}

// renderedFrame carries one finished frame from a worker to the writer.
type renderedFrame struct {
	index int
	frame *image.RGBA
}

// VideoConfig returns the clip geometry the template is evaluated against.
func (p *Project) VideoConfig() timeline.VideoConfig {
	return timeline.VideoConfig{
		FPS:              p.Config.FPS,
		DurationInFrames: p.Config.DurationFrames,
		Width:            p.Config.Width,
		Height:           p.Config.Height,
	}
}

// Run renders every frame of the clip and streams them, strictly in order,
// into the encoder. Frame evaluation is pure, so rendering spreads over a
// worker pool; a single writer reorders results by index before encoding.
// In-flight frames are bounded by a slot semaphore, so memory scales with
// the worker count rather than the clip length.
func (p *Project) Run(ctx context.Context) error {
	cfg := p.VideoConfig()
	total := cfg.DurationInFrames
	if total <= 0 {
		return fmt.Errorf("nothing to render: clip is %d frames", total)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("bad frame geometry %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS <= 0 {
		return fmt.Errorf("bad frame rate %d", cfg.FPS)
	}

	workers := p.Config.Workers
	if workers <= 0 {
		workers = system.RecommendWorkers(cfg.Width, cfg.Height)
	}
	if workers > total {
		workers = total
	}

	fmt.Printf("[*] Template: %s | %dx%d @ %d fps | %d frames (%.1fs) | %d workers\n",
		p.Template.Name(), cfg.Width, cfg.Height, cfg.FPS, total, cfg.Duration(), workers)

	start := time.Now()

	if err := p.Encoder.Open(ctx, p.Config); err != nil {
		return fmt.Errorf("opening encoder: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewFramePool(cfg.Width, cfg.Height)

	// Slots bound rendered-but-unwritten frames: a worker takes one before
	// rendering, the writer gives it back after encoding.
	slots := make(chan struct{}, workers*2)
	indices := make(chan int)
	results := make(chan renderedFrame, workers)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(indices)
		for i := 0; i < total; i++ {
			select {
			case indices <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			// Font faces keep state across glyphs, so each worker owns a rasterizer
			rast, err := render.NewRasterizer(cfg, p.Store, p.rasterOptions()...)
			if err != nil {
				return err
			}

			for i := range indices {
				select {
				case slots <- struct{}{}:
				case <-gctx.Done():
					return gctx.Err()
				}

				buf := pool.Get()
				if err := rast.Draw(buf, p.Template.Layers(i, cfg)); err != nil {
					pool.Put(buf)
					return fmt.Errorf("frame %d: %w", i, err)
				}

				select {
				case results <- renderedFrame{index: i, frame: buf}:
				case <-gctx.Done():
					pool.Put(buf)
					return gctx.Err()
				}
			}
			return nil
		})
	}

	var renderWall time.Duration
	go func() {
		g.Wait()
		renderWall = time.Since(start)
		close(results)
	}()

	// Ordered writer: runs here so encoder errors can cancel the pool
	var writeErr error
	next := 0
	pending := make(map[int]*image.RGBA, workers*2)
	for res := range results {
		if writeErr != nil {
			pool.Put(res.frame)
			continue
		}

		pending[res.index] = res.frame
		for {
			buf, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)

			err := p.Encoder.WriteFrame(buf)
			pool.Put(buf)
			if err != nil {
				writeErr = fmt.Errorf("frame %d: %w", next, err)
				cancel()
				break
			}
			<-slots
			next++
			if next%cfg.FPS == 0 || next == total {
				fmt.Printf("[>] Ready: %d/%d\n", next, total)
			}
		}
	}

	renderErr := g.Wait()
	closeErr := p.Encoder.Close()
	totalWall := time.Since(start)

	switch {
	case writeErr != nil:
		return writeErr
	case renderErr != nil:
		return renderErr
	case closeErr != nil:
		return closeErr
	}
	if next != total {
		return fmt.Errorf("rendered %d of %d frames", next, total)
	}

	if p.Config.Stats {
		p.reportStats(total, totalWall, renderWall)
	}
	return nil
}

// RenderFrame rasterizes a single frame outside the pipeline, for previews.
func (p *Project) RenderFrame(frame int) (*image.RGBA, error) {
	cfg := p.VideoConfig()
	if frame < 0 || frame >= cfg.DurationInFrames {
		return nil, fmt.Errorf("frame %d outside [0, %d)", frame, cfg.DurationInFrames)
	}

	rast, err := render.NewRasterizer(cfg, p.Store, p.rasterOptions()...)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	if err := rast.Draw(img, p.Template.Layers(frame, cfg)); err != nil {
		return nil, fmt.Errorf("frame %d: %w", frame, err)
	}
	return img, nil
}

func (p *Project) rasterOptions() []render.Option {
	if p.Config.FontPath != "" {
		return []render.Option{render.WithFontFile(p.Config.FontPath)}
	}
	return nil
}

// reportStats prints the performance report and appends it to benchmark.log.
// Encoding overlaps rendering, so the encode column is wall time to the
// final container write, not isolated encoder CPU.
func (p *Project) reportStats(frames int, total, renderWall time.Duration) {
	fps := float64(frames) / total.Seconds()

	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Template: %s\n"+
			"Frames: %d\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding (wall): %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, p.Template.Name(), frames,
		total.Seconds(), renderWall.Seconds(), total.Seconds(), fps,
	)

	entry := fmt.Sprintf("[%s] Build: %s | Template: %s | Frames: %d | Total: %.2fs | Render: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion, p.Template.Name(), frames,
		total.Seconds(), renderWall.Seconds(), fps,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("[!] Could not write benchmark.log: %v\n", err)
		return
	}
	f.WriteString(entry)
	f.Close()
}
