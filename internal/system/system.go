package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not read the open-file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not raise the open-file limit: %v", err)
	} else {
		fmt.Printf("[*] Open-file limit raised to %d\n", rLimit.Cur)
	}
}

// CheckFFmpeg locates the ffmpeg binary: PATH first, then the usual install
// directories. Returns an error when nothing is found so callers can fall
// back to the pure-Go encoders.
func CheckFFmpeg() (string, error) {
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return path, nil
	}

	candidates := []string{
		"/usr/local/bin/ffmpeg",
		"/opt/homebrew/bin/ffmpeg",
		"/usr/bin/ffmpeg",
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", fmt.Errorf("ffmpeg not found in PATH or the usual install directories")
}

// DetectEncoder probes ffmpeg once for hardware H.264 encoders and returns
// the best available one, falling back to software libx264.
func DetectEncoder(ffmpeg string) string {
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}

	cmd := exec.Command(ffmpeg, "-hide_banner", "-encoders")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "libx264"
	}

	for _, enc := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), enc) {
			return enc
		}
	}

	return "libx264"
}

// RecommendWorkers sizes the render pool from the machine: one worker per
// logical CPU, trimmed so the per-worker frame buffers fit in available
// memory with room to spare.
func RecommendWorkers(width, height int) int {
	workers := 4
	if count, err := cpu.Counts(true); err == nil && count > 0 {
		workers = count
	}

	// Each worker holds a frame in flight plus a scratch buffer, and the
	// writer buffers out-of-order frames: budget four frames per worker
	frameBytes := uint64(width) * uint64(height) * 4
	if frameBytes == 0 {
		return workers
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		budget := vm.Available / 2
		maxByMem := int(budget / (frameBytes * 4))
		if maxByMem < 1 {
			maxByMem = 1
		}
		if workers > maxByMem {
			workers = maxByMem
		}
	}

	if workers < 1 {
		workers = 1
	}
	return workers
}

func GetAudioDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, err
	}

	var duration float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration)
	if err != nil {
		return 0, err
	}

	return duration, nil
}

// FindLatestJob returns the most recently modified job file in a directory.
func FindLatestJob(dir string) (string, error) {
	path, err := findLatest(dir, []string{".yaml", ".yml"})
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("no job files found in %s", dir)
	}
	return path, nil
}

// FindLatestAudio returns the most recently modified audio track in a directory.
func FindLatestAudio(dir string) (string, error) {
	path, err := findLatest(dir, []string{".mp3", ".wav", ".m4a", ".ogg", ".aac", ".flac"})
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("no audio files found in %s", dir)
	}
	return path, nil
}

// FindLatestImage returns the most recently modified image next to path,
// or in path itself when it names a directory.
func FindLatestImage(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	searchDir := path
	if !fi.IsDir() {
		searchDir = filepath.Dir(path)
	}

	found, err := findLatest(searchDir, []string{".jpg", ".jpeg", ".png", ".webp"})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no images found in %s", searchDir)
	}
	return found, nil
}

func findLatest(dir string, extensions []string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower(f.Name())
		matched := false
		for _, ext := range extensions {
			if strings.HasSuffix(name, ext) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	return latestFile, nil
}
