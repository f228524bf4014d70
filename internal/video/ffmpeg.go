package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"

	"github.com/presenceos/video-engine/internal/config"
)

// FFmpegEncoder streams raw RGBA frames into a single ffmpeg process over
// stdin, so no intermediate frame files touch the disk. The optional audio
// track is muxed by the same process.
type FFmpegEncoder struct {
	Path string // ffmpeg binary; empty means "ffmpeg" from PATH

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	logBuf bytes.Buffer
	frames int
}

func (e *FFmpegEncoder) Open(ctx context.Context, cfg config.Render) error {
	if e.cmd != nil {
		return fmt.Errorf("encoder already open")
	}

	path := e.Path
	if path == "" {
		path = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, path, buildFFmpegArgs(cfg)...)
	cmd.Stdout = &e.logBuf
	cmd.Stderr = &e.logBuf

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start: %w", err)
	}

	e.cmd = cmd
	e.stdin = stdin
	return nil
}

// buildFFmpegArgs assembles the full encode invocation: rawvideo on stdin,
// the selected H.264 encoder with its quality knob, and the audio mux with
// an optional fade-out tail.
func buildFFmpegArgs(cfg config.Render) []string {
	encoder := cfg.Encoder
	if encoder == "" {
		encoder = "libx264"
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"-framerate", strconv.Itoa(cfg.FPS),
		"-i", "-",
	}

	if cfg.AudioPath != "" {
		args = append(args, "-i", cfg.AudioPath)
	}

	args = append(args, "-c:v", encoder, "-pix_fmt", "yuv420p")
	args = append(args, qualityArgs(encoder, cfg.Quality)...)

	if cfg.AudioPath != "" {
		args = append(args, "-map", "0:v", "-map", "1:a", "-c:a", "aac", "-shortest")
		if cfg.AudioFade > 0 && cfg.FPS > 0 {
			total := float64(cfg.DurationFrames) / float64(cfg.FPS)
			if filter := FadeVolumeFilter(total, cfg.AudioFade); filter != "" {
				args = append(args, "-af", filter)
			}
		}
	}

	args = append(args, "-movflags", "+faststart", cfg.OutputPath)
	return args
}

// qualityArgs maps the 0-100 quality knob onto the encoder's own scale.
func qualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox rejects -q:v on many versions, so drive it by bitrate
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", strconv.Itoa(quality)}
	default: // libx264
		return []string{"-crf", strconv.Itoa(quality), "-preset", "medium"}
	}
}

func (e *FFmpegEncoder) WriteFrame(frame *image.RGBA) error {
	if e.stdin == nil {
		return fmt.Errorf("encoder not open")
	}

	b := frame.Bounds()
	if frame.Stride == 4*b.Dx() && b.Min.X == 0 && b.Min.Y == 0 {
		if _, err := e.stdin.Write(frame.Pix); err != nil {
			return e.writeError(err)
		}
		e.frames++
		return nil
	}

	// Subimages and odd strides go row by row
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := frame.PixOffset(b.Min.X, y)
		if _, err := e.stdin.Write(frame.Pix[off : off+4*b.Dx()]); err != nil {
			return e.writeError(err)
		}
	}
	e.frames++
	return nil
}

func (e *FFmpegEncoder) writeError(err error) error {
	return fmt.Errorf("writing frame %d to ffmpeg: %w: %s", e.frames, err, logTail(e.logBuf.String(), 400))
}

func (e *FFmpegEncoder) Close() error {
	if e.stdin != nil {
		e.stdin.Close()
		e.stdin = nil
	}
	if e.cmd == nil {
		return nil
	}

	err := e.cmd.Wait()
	e.cmd = nil
	if err != nil {
		return fmt.Errorf("ffmpeg encode failed: %w: %s", err, logTail(e.logBuf.String(), 400))
	}
	return nil
}

func logTail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
