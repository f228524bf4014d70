package cli

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/spf13/cobra"

	"github.com/presenceos/video-engine/internal/config"
	"github.com/presenceos/video-engine/internal/system"
)

func probeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Report the render capabilities of this machine",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			preset, _ := cmd.Flags().GetString("preset")

			geometry, ok := config.ResolvePreset(preset)
			if !ok {
				geometry, _ = config.ResolvePreset("instagram_story")
			}

			ffmpeg, err := system.CheckFFmpeg()
			if err != nil {
				fmt.Fprintf(out, "ffmpeg:    not found (mp4 output degrades to Motion-JPEG AVI)\n")
			} else {
				fmt.Fprintf(out, "ffmpeg:    %s\n", ffmpeg)
				fmt.Fprintf(out, "encoder:   %s\n", system.DetectEncoder(ffmpeg))
			}

			if count, err := cpu.Counts(true); err == nil {
				fmt.Fprintf(out, "cpu:       %d logical cores\n", count)
			}
			if vm, err := mem.VirtualMemory(); err == nil {
				fmt.Fprintf(out, "memory:    %.1f GB available of %.1f GB\n",
					float64(vm.Available)/1e9, float64(vm.Total)/1e9)
			}

			fmt.Fprintf(out, "workers:   %d recommended for %dx%d\n",
				system.RecommendWorkers(geometry.Width, geometry.Height),
				geometry.Width, geometry.Height)
		},
	}

	cmd.Flags().String("preset", "instagram_story", "Geometry the worker recommendation is sized for")
	return cmd
}
