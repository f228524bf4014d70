package config

import "testing"

func TestResolvePreset(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"instagram_story", 1080, 1920},
		{"instagram_reel", 1080, 1920},
		{"tiktok", 1080, 1920},
		{"youtube_short", 1080, 1920},
		{"9:16", 1080, 1920},
		{"instagram_post", 1080, 1350},
		{"4:5", 1080, 1350},
		{"square", 1080, 1080},
		{"landscape", 1920, 1080},
		{"16:9", 1920, 1080},
		{"  TikTok ", 1080, 1920}, // case and whitespace tolerant
	}

	for _, tt := range tests {
		p, ok := ResolvePreset(tt.name)
		if !ok {
			t.Errorf("ResolvePreset(%q) not found", tt.name)
			continue
		}
		if p.Width != tt.width || p.Height != tt.height {
			t.Errorf("ResolvePreset(%q) = %dx%d, want %dx%d", tt.name, p.Width, p.Height, tt.width, tt.height)
		}
		if p.FPS != 30 {
			t.Errorf("ResolvePreset(%q) fps = %d, want 30", tt.name, p.FPS)
		}
	}

	if _, ok := ResolvePreset("betamax"); ok {
		t.Errorf("Unknown preset should not resolve")
	}
}

func TestPresetNamesResolve(t *testing.T) {
	for _, name := range PresetNames() {
		if _, ok := ResolvePreset(name); !ok {
			t.Errorf("Listed preset %q does not resolve", name)
		}
	}
}

func TestDefaultQuality(t *testing.T) {
	if got := DefaultQuality("h264_videotoolbox"); got != 75 {
		t.Errorf("videotoolbox quality = %d, want 75", got)
	}
	if got := DefaultQuality("h264_nvenc"); got != 28 {
		t.Errorf("nvenc quality = %d, want 28", got)
	}
	if got := DefaultQuality("libx264"); got != 23 {
		t.Errorf("libx264 quality = %d, want 23", got)
	}
	if got := DefaultQuality(""); got != 23 {
		t.Errorf("unknown encoder quality = %d, want the x264 default", got)
	}
}
