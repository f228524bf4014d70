package timeline

import "math"

// VideoConfig describes the clip geometry shared by every component during a render.
// It is read-only context: components never mutate it.
type VideoConfig struct {
	FPS              int
	DurationInFrames int
	Width            int
	Height           int
}

// Seconds converts a frame index to clip time.
func (c VideoConfig) Seconds(frame int) float64 {
	if c.FPS <= 0 {
		return 0
	}
	return float64(frame) / float64(c.FPS)
}

// Frame converts clip time in seconds to the nearest frame index.
func (c VideoConfig) Frame(sec float64) int {
	return int(math.Round(sec * float64(c.FPS)))
}

// Duration returns the clip length in seconds.
func (c VideoConfig) Duration() float64 {
	return c.Seconds(c.DurationInFrames)
}

// Sequence is a declared time window during which a subtree of elements is mounted.
// Windows may overlap and may extend past the end of the clip; an element given
// the full clip duration simply stays mounted until the last frame.
type Sequence struct {
	From             int
	DurationInFrames int
}

// Contains reports whether frame falls inside the window.
func (s Sequence) Contains(frame int) bool {
	return frame >= s.From && frame < s.From+s.DurationInFrames
}

// Local converts a clip frame to the window's own frame counter (0 at From).
func (s Sequence) Local(frame int) int {
	return frame - s.From
}
