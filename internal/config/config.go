package config

import "strings"

// Render is the compiled configuration of one render: the job's output
// section merged with CLI flags and machine probing. The engine and the
// encoders read it, nothing mutates it mid-render.
type Render struct {
	Width          int
	Height         int
	FPS            int
	DurationFrames int
	Workers        int
	Quality        int    // encoder-specific knob: CRF for x264, -cq for nvenc, bitrate = Q*100k for videotoolbox
	Encoder        string // libx264, h264_videotoolbox, h264_nvenc
	Format         string // mp4, avi, gif, png
	OutputPath     string
	AudioPath      string
	AudioFade      float64 // fade-out tail in seconds, 0 = no fade
	AssetRoot      string
	AssetCache     int
	FontPath       string
	FocusAuto      bool
	Stats          bool
	BuildVersion   string
}

// Preset is a named output geometry.
type Preset struct {
	Width  int
	Height int
	FPS    int
}

// ResolvePreset maps a social format name to its geometry. Names follow the
// platform spellings plus the aspect-ratio shorthands.
func ResolvePreset(name string) (Preset, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "instagram_story", "instagram_reel", "tiktok", "youtube_short", "story", "reel", "9:16":
		return Preset{Width: 1080, Height: 1920, FPS: 30}, true
	case "instagram_post", "portrait", "4:5":
		return Preset{Width: 1080, Height: 1350, FPS: 30}, true
	case "square", "1:1":
		return Preset{Width: 1080, Height: 1080, FPS: 30}, true
	case "landscape", "youtube", "16:9":
		return Preset{Width: 1920, Height: 1080, FPS: 30}, true
	}
	return Preset{}, false
}

// PresetNames lists the canonical preset names for help output.
func PresetNames() []string {
	return []string{"instagram_story", "instagram_reel", "tiktok", "youtube_short", "instagram_post", "square", "landscape"}
}

// DefaultQuality returns the quality knob default for an encoder. The scales
// differ: VideoToolbox takes a bitrate multiplier, NVENC and x264 take
// constant-quality values where lower is better.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 23
	}
}
