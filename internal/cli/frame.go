package cli

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/presenceos/video-engine/internal/engine"
	"github.com/presenceos/video-engine/internal/system"
	"github.com/presenceos/video-engine/internal/template"
)

func frameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frame [job.yaml]",
		Short: "Render a single frame to PNG for a quick look",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobPath := ""
			if len(args) == 1 {
				jobPath = args[0]
			}
			return runFrame(cmd, jobPath)
		},
	}

	cmd.Flags().Float64("at", -1, "Time in seconds to sample (default: clip midpoint)")
	cmd.Flags().Int("frame", -1, "Frame index to sample, overrides --at")
	cmd.Flags().StringP("output", "o", "frame.png", "Output PNG file")
	cmd.Flags().String("preset", "", "Geometry preset override")
	cmd.Flags().Float64("duration", 0, "Clip length in seconds")

	return cmd
}

func runFrame(cmd *cobra.Command, jobPath string) error {
	at, _ := cmd.Flags().GetFloat64("at")
	index, _ := cmd.Flags().GetInt("frame")
	outPath, _ := cmd.Flags().GetString("output")
	preset, _ := cmd.Flags().GetString("preset")
	duration, _ := cmd.Flags().GetFloat64("duration")

	if jobPath == "" {
		latest, err := system.FindLatestJob("jobs")
		if err != nil {
			return err
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

	cfg, err := compileRender(job, jobPath, renderFlags{Preset: preset, Duration: duration})
	if err != nil {
		return err
	}

	if index < 0 {
		if at >= 0 {
			index = int(at*float64(cfg.FPS) + 0.5)
		} else {
			index = cfg.DurationFrames / 2
		}
	}
	if index >= cfg.DurationFrames {
		index = cfg.DurationFrames - 1
	}
	if index < 0 {
		index = 0
	}

	ffmpeg, err := system.CheckFFmpeg()
	if err != nil {
		ffmpeg = ""
	}
	store, err := newStore(cfg, ffmpeg)
	if err != nil {
		return err
	}

	project := &engine.Project{Config: cfg, Template: tpl, Store: store}
	img, err := project.RenderFrame(index)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}

	fmt.Printf("[+++] Frame %d (%.2fs) of %s: %s\n",
		index, float64(index)/float64(cfg.FPS), tpl.Name(), outPath)
	return nil
}
