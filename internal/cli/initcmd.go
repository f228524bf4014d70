package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/presenceos/video-engine/internal/template"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <template>",
		Short: "Write a starter job file for a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			known := false
			for _, n := range template.Names() {
				if n == name {
					known = true
					break
				}
			}
			if !known {
				return fmt.Errorf("unknown template %q (have: %s)", name, strings.Join(template.Names(), ", "))
			}

			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				out = name + ".yaml"
			}
			if _, err := os.Stat(out); err == nil {
				return fmt.Errorf("%s already exists, not overwriting", out)
			}

			if err := template.WriteJob(template.ExampleJob(name), out); err != nil {
				return err
			}

			fmt.Printf("[+++] Wrote %s. Point it at your assets, then: presencevid render %s\n", out, out)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Job file path (default <template>.yaml)")
	return cmd
}
