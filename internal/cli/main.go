package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is stamped into performance reports and --version output.
const Version = "0.3.0"

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "presencevid",
		Short:        "Render branded marketing clips from YAML job files",
		Version:      Version,
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.AddCommand(renderCmd())
	root.AddCommand(frameCmd())
	root.AddCommand(templatesCmd())
	root.AddCommand(probeCmd())
	root.AddCommand(initCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		os.Exit(1)
	}
}
