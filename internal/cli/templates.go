package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/presenceos/video-engine/internal/template"
)

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the available clip templates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, name := range template.Names() {
				fmt.Fprintf(out, "%-22s %s\n", name, template.Describe(name))
			}
		},
	}
}
