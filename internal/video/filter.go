package video

import "fmt"

// FadeVolumeFilter builds the ffmpeg -af expression that fades the
// soundtrack out over the last fade seconds of a total-second clip. The
// expression is evaluated per frame, so the ramp stays smooth at any fps.
// Returns "" when there is nothing to fade.
func FadeVolumeFilter(total, fade float64) string {
	if total <= 0 || fade <= 0 {
		return ""
	}
	if fade > total {
		fade = total
	}
	start := total - fade

	return fmt.Sprintf("volume='if(gte(t,%.3f),max((%.3f-t)/%.3f,0),1.0)':eval=frame", start, total, fade)
}
