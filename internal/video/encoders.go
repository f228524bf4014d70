package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/icza/mjpeg"

	"github.com/presenceos/video-engine/internal/config"
)

// MJPEGEncoder writes a Motion-JPEG AVI, the no-ffmpeg fallback container.
// Every frame is JPEG-compressed in process; audio is not supported and is
// dropped with a warning.
type MJPEGEncoder struct {
	Quality int // JPEG quality 1-100; 0 picks 90

	writer  mjpeg.AviWriter
	quality int
}

func (e *MJPEGEncoder) Open(_ context.Context, cfg config.Render) error {
	if cfg.AudioPath != "" {
		log.Printf("[!] Audio track ignored for AVI output (muxing needs ffmpeg)")
	}

	e.quality = e.Quality
	if e.quality <= 0 {
		e.quality = 90
	}
	if e.quality > 100 {
		e.quality = 100
	}

	w, err := mjpeg.New(cfg.OutputPath, int32(cfg.Width), int32(cfg.Height), int32(cfg.FPS))
	if err != nil {
		return fmt.Errorf("creating %s: %w", cfg.OutputPath, err)
	}
	e.writer = w
	return nil
}

func (e *MJPEGEncoder) WriteFrame(frame *image.RGBA) error {
	if e.writer == nil {
		return fmt.Errorf("encoder not open")
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: e.quality}); err != nil {
		return fmt.Errorf("jpeg frame: %w", err)
	}
	return e.writer.AddFrame(buf.Bytes())
}

func (e *MJPEGEncoder) Close() error {
	if e.writer == nil {
		return nil
	}
	err := e.writer.Close()
	e.writer = nil
	return err
}

// GIFEncoder buffers paletted frames and writes the animated GIF on Close.
// Floyd-Steinberg dithering against the Plan 9 palette keeps gradients
// acceptable within 256 colors.
type GIFEncoder struct {
	path   string
	width  int
	height int
	delay  int // centiseconds per frame
	frames []*image.Paletted
	delays []int
}

func (e *GIFEncoder) Open(_ context.Context, cfg config.Render) error {
	if cfg.AudioPath != "" {
		log.Printf("[!] Audio track ignored for GIF output")
	}

	fps := cfg.FPS
	if fps < 1 {
		fps = 1
	}

	e.path = cfg.OutputPath
	e.width = cfg.Width
	e.height = cfg.Height
	e.delay = 100 / fps
	if e.delay < 1 {
		e.delay = 1
	}
	return nil
}

func (e *GIFEncoder) WriteFrame(frame *image.RGBA) error {
	p := image.NewPaletted(frame.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(p, frame.Bounds(), frame, image.Point{})
	e.frames = append(e.frames, p)
	e.delays = append(e.delays, e.delay)
	return nil
}

func (e *GIFEncoder) Close() error {
	if len(e.frames) == 0 {
		return fmt.Errorf("no frames to write")
	}

	f, err := os.Create(e.path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gif.EncodeAll(f, &gif.GIF{
		Image:  e.frames,
		Delay:  e.delays,
		Config: image.Config{Width: e.width, Height: e.height},
	})
}

// FrameDumper writes numbered PNGs into a directory instead of a movie, for
// previews or encoding elsewhere. The directory is the output path with its
// extension stripped.
type FrameDumper struct {
	Dir string

	next int
}

func (e *FrameDumper) Open(_ context.Context, cfg config.Render) error {
	if cfg.AudioPath != "" {
		log.Printf("[!] Audio track ignored for frame output")
	}

	if e.Dir == "" {
		e.Dir = strings.TrimSuffix(cfg.OutputPath, filepath.Ext(cfg.OutputPath))
	}
	return os.MkdirAll(e.Dir, 0755)
}

func (e *FrameDumper) WriteFrame(frame *image.RGBA) error {
	path := filepath.Join(e.Dir, fmt.Sprintf("frame_%05d.png", e.next))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, frame); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	e.next++
	return nil
}

func (e *FrameDumper) Close() error {
	return nil
}
