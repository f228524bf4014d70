package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/presenceos/video-engine/internal/asset"
	"github.com/presenceos/video-engine/internal/config"
	"github.com/presenceos/video-engine/internal/engine"
	"github.com/presenceos/video-engine/internal/system"
	"github.com/presenceos/video-engine/internal/template"
	"github.com/presenceos/video-engine/internal/video"
)

// renderFlags carries the command-line overrides of the job output section.
type renderFlags struct {
	Output   string
	Preset   string
	Duration float64
	FPS      int
	Workers  int
	Quality  int
	Encoder  string
	Format   string
	Stats    bool
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [job.yaml]",
		Short: "Render a job file to video",
		Long: "Render a job file to video.\n\n" +
			"With no argument the newest .yaml in jobs/ is used. Flags override\n" +
			"the job's output section; PRESENCEVID_ASSETS, PRESENCEVID_WORKERS\n" +
			"and PRESENCEVID_ENCODER override from the environment.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobPath := ""
			if len(args) == 1 {
				jobPath = args[0]
			}
			return runRender(cmd, jobPath, readRenderFlags(cmd))
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default output/<template>_<timestamp>)")
	cmd.Flags().String("preset", "", "Geometry preset: "+strings.Join(config.PresetNames(), ", "))
	cmd.Flags().Float64("duration", 0, "Clip length in seconds (0 = job or template default)")
	cmd.Flags().Int("fps", 0, "Frames per second (0 = job or preset default)")
	cmd.Flags().Int("workers", 0, "Render workers (0 = auto)")
	cmd.Flags().Int("quality", 0, "Encoder quality knob (0 = encoder default)")
	cmd.Flags().String("encoder", "", "Video encoder: auto, libx264, h264_videotoolbox, h264_nvenc")
	cmd.Flags().String("format", "", "Container: mp4, avi, gif, png")
	cmd.Flags().Bool("stats", false, "Print a performance report and append it to benchmark.log")

	return cmd
}

func readRenderFlags(cmd *cobra.Command) renderFlags {
	var fl renderFlags
	fl.Output, _ = cmd.Flags().GetString("output")
	fl.Preset, _ = cmd.Flags().GetString("preset")
	fl.Duration, _ = cmd.Flags().GetFloat64("duration")
	fl.FPS, _ = cmd.Flags().GetInt("fps")
	fl.Workers, _ = cmd.Flags().GetInt("workers")
	fl.Quality, _ = cmd.Flags().GetInt("quality")
	fl.Encoder, _ = cmd.Flags().GetString("encoder")
	fl.Format, _ = cmd.Flags().GetString("format")
	fl.Stats, _ = cmd.Flags().GetBool("stats")
	return fl
}

func runRender(cmd *cobra.Command, jobPath string, fl renderFlags) error {
	system.InitResourceLimits()

	for _, d := range []string{"jobs", "assets", "output"} {
		os.MkdirAll(d, 0755)
	}

	if jobPath == "" {
		latest, err := system.FindLatestJob("jobs")
		if err != nil {
			return fmt.Errorf("%w (run `presencevid init <template>` to create one)", err)
		}
		jobPath = latest
		fmt.Printf("[*] Using newest job: %s\n", jobPath)
	}

	job, err := template.ReadJob(jobPath)
	if err != nil {
		return err
	}
	if err := job.Validate(); err != nil {
		return fmt.Errorf("job %s: %w", jobPath, err)
	}

	tpl, err := template.Build(job)
	if err != nil {
		return err
	}

	cfg, err := compileRender(job, jobPath, fl)
	if err != nil {
		return err
	}

	ffmpeg, err := system.CheckFFmpeg()
	if err != nil {
		ffmpeg = ""
	}

	// Audio sync: the track length dictates the clip length
	if job.Audio.Sync && cfg.AudioPath != "" {
		seconds, err := system.GetAudioDuration(cfg.AudioPath)
		if err != nil {
			log.Printf("[!] Could not read audio duration: %v", err)
		} else {
			cfg.DurationFrames = int(seconds*float64(cfg.FPS) + 0.5)
			fmt.Printf("[*] Clip length set from audio: %.2fs (%d frames)\n", seconds, cfg.DurationFrames)
		}
	}

	if usesFFmpeg(cfg.Format) && ffmpeg != "" {
		if cfg.Encoder == "" || cfg.Encoder == "auto" {
			cfg.Encoder = system.DetectEncoder(ffmpeg)
			if cfg.Encoder != "libx264" {
				fmt.Printf("[*] Hardware encoder: %s\n", cfg.Encoder)
			}
		}
		if cfg.Quality == 0 {
			cfg.Quality = config.DefaultQuality(cfg.Encoder)
		}
	}

	if dir := filepath.Dir(cfg.OutputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	store, err := newStore(cfg, ffmpeg)
	if err != nil {
		return err
	}

	// Warm the focus cache up front so the anchor is logged once, not
	// discovered mid-render by whichever worker gets there first
	if cfg.FocusAuto && job.Background.Src != "" {
		if pt, err := store.Focus(job.Background.Src); err == nil {
			fmt.Printf("[*] Focus anchor: %s at (%d, %d)\n", job.Background.Src, pt.X, pt.Y)
		}
	}

	enc, err := video.ForOutput(&cfg, ffmpeg)
	if err != nil {
		return err
	}

	project := &engine.Project{
		Config:   cfg,
		Template: tpl,
		Store:    store,
		Encoder:  enc,
	}
	if err := project.Run(cmd.Context()); err != nil {
		return err
	}

	fmt.Printf("[+++] Done: %s\n", cfg.OutputPath)
	return nil
}

// compileRender merges the job output section, CLI flags and environment
// into the engine configuration. Flags beat the environment, which beats
// the job file.
func compileRender(job *template.Job, jobPath string, fl renderFlags) (config.Render, error) {
	cfg := config.Render{
		Width:        1080,
		Height:       1920,
		FPS:          30,
		Stats:        fl.Stats,
		BuildVersion: Version,
	}

	preset := job.Output.Preset
	if fl.Preset != "" {
		preset = fl.Preset
	}
	if preset != "" {
		p, ok := config.ResolvePreset(preset)
		if !ok {
			return cfg, fmt.Errorf("unknown preset %q (have: %s)", preset, strings.Join(config.PresetNames(), ", "))
		}
		cfg.Width, cfg.Height, cfg.FPS = p.Width, p.Height, p.FPS
	}

	if job.Output.Width > 0 {
		cfg.Width = job.Output.Width
	}
	if job.Output.Height > 0 {
		cfg.Height = job.Output.Height
	}
	if job.Output.FPS > 0 {
		cfg.FPS = job.Output.FPS
	}
	if fl.FPS > 0 {
		cfg.FPS = fl.FPS
	}

	seconds := job.DefaultDuration()
	if job.Output.Duration > 0 {
		seconds = job.Output.Duration
	}
	if fl.Duration > 0 {
		seconds = fl.Duration
	}
	cfg.DurationFrames = int(seconds*float64(cfg.FPS) + 0.5)
	if cfg.DurationFrames < 1 {
		cfg.DurationFrames = 1
	}

	cfg.Workers = fl.Workers
	if cfg.Workers <= 0 {
		cfg.Workers = intFromEnv("PRESENCEVID_WORKERS")
	}

	cfg.Encoder = firstNonEmpty(fl.Encoder, os.Getenv("PRESENCEVID_ENCODER"), job.Output.Encoder)

	cfg.Quality = fl.Quality
	if cfg.Quality == 0 {
		cfg.Quality = job.Output.Quality
	}

	out := firstNonEmpty(fl.Output, job.Output.Path)
	cfg.Format = strings.ToLower(firstNonEmpty(fl.Format, job.Output.Format))
	if cfg.Format == "" {
		cfg.Format = formatFromPath(out)
	}
	if out == "" {
		stamp := time.Now().Format("2006-01-02_15-04-05")
		out = filepath.Join("output", fmt.Sprintf("%s_%s.%s", job.Template, stamp, formatExt(cfg.Format)))
	}
	cfg.OutputPath = out

	// Asset references resolve against the job file's directory, so a job
	// and its media travel together
	cfg.AssetRoot = os.Getenv("PRESENCEVID_ASSETS")
	if cfg.AssetRoot == "" && jobPath != "" {
		cfg.AssetRoot = filepath.Dir(jobPath)
	}

	if job.Brand.Font != "" {
		cfg.FontPath = resolvePath(job.Brand.Font, cfg.AssetRoot)
	}
	if job.Audio.Src != "" {
		cfg.AudioPath = resolvePath(job.Audio.Src, cfg.AssetRoot)
		cfg.AudioFade = job.Audio.Fade
	}

	cfg.FocusAuto = job.Background.Focus == "auto"

	return cfg, nil
}

func newStore(cfg config.Render, ffmpeg string) (*asset.Store, error) {
	opts := []asset.Option{}
	if ffmpeg != "" {
		opts = append(opts, asset.WithFFmpeg(ffmpeg))
	}
	return asset.NewStore(cfg.AssetRoot, cfg.AssetCache, opts...)
}

// usesFFmpeg reports whether the format is encoded by an ffmpeg process
// rather than one of the pure-Go fallbacks.
func usesFFmpeg(format string) bool {
	switch format {
	case "", "mp4", "mov":
		return true
	}
	return false
}

// formatFromPath guesses the container from an output extension.
func formatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "mp4", "mov", "avi", "mjpeg", "gif", "png":
		return ext
	}
	return "mp4"
}

// formatExt maps a container name to the file extension of its output.
func formatExt(format string) string {
	switch format {
	case "avi", "mjpeg":
		return "avi"
	case "gif":
		return "gif"
	case "png", "frames":
		return "png"
	case "mov":
		return "mov"
	default:
		return "mp4"
	}
}

func resolvePath(path, root string) string {
	if filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func intFromEnv(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
