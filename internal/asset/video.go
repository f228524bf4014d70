package asset

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os/exec"
)

// extractVideoFrame asks ffmpeg for a single frame at the given offset,
// decoded from a PNG pipe. Seeking before -i is the fast keyframe seek;
// accuracy within a keyframe interval is fine for background footage.
func extractVideoFrame(ffmpeg, path string, timeSec float64) (image.Image, error) {
	args := []string{
		"-ss", fmt.Sprintf("%.3f", timeSec),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	}

	var out, errOut bytes.Buffer
	cmd := exec.Command(ffmpeg, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame grab %s@%.2fs: %w: %s", path, timeSec, err, tail(errOut.String(), 300))
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg frame grab %s@%.2fs: no frame (past end of file?)", path, timeSec)
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decoding grabbed frame: %w", err)
	}
	return img, nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
