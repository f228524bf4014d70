package video

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"

	"github.com/presenceos/video-engine/internal/config"
)

// Encoder turns a stream of rendered frames into a clip on disk. Open starts
// the sink, WriteFrame consumes frames strictly in presentation order, Close
// finalizes the container. Encoders are single-use: one Open, one Close.
type Encoder interface {
	Open(ctx context.Context, cfg config.Render) error
	WriteFrame(frame *image.RGBA) error
	Close() error
}

// ForOutput picks the encoder for the configured container. The mp4 path
// needs ffmpeg; without it the output degrades to a Motion-JPEG AVI next to
// the requested file and the path in cfg is rewritten to match.
func ForOutput(cfg *config.Render, ffmpeg string) (Encoder, error) {
	enc, err := forFormat(cfg, ffmpeg)
	if err != nil {
		return nil, err
	}
	if _, ok := enc.(*FFmpegEncoder); !ok && cfg.AudioPath != "" {
		log.Printf("[!] Only the ffmpeg encoder can mux audio, ignoring %s", cfg.AudioPath)
	}
	return enc, nil
}

func forFormat(cfg *config.Render, ffmpeg string) (Encoder, error) {
	switch strings.ToLower(cfg.Format) {
	case "", "mp4", "mov":
		if ffmpeg != "" {
			return &FFmpegEncoder{Path: ffmpeg}, nil
		}
		cfg.OutputPath = strings.TrimSuffix(cfg.OutputPath, filepath.Ext(cfg.OutputPath)) + ".avi"
		log.Printf("[!] ffmpeg not found, writing Motion-JPEG AVI instead: %s", cfg.OutputPath)
		return &MJPEGEncoder{}, nil
	case "avi", "mjpeg":
		return &MJPEGEncoder{}, nil
	case "gif":
		return &GIFEncoder{}, nil
	case "png", "frames":
		return &FrameDumper{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (have: mp4, avi, gif, png)", cfg.Format)
	}
}
