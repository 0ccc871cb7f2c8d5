package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/kerbaras/logolink/pkg/app/components"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rewrite logo URLs to local paths (default command)",
	Long:  "Load the document, match every chapter against the logos directory and write the document back.",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctrl, cleanup, err := newController(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := ctrl.Config()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "📖 Loading %s...\n", filepath.Base(cfg.Document))
	report, err := ctrl.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ Found %d downloaded logos\n\n", report.Available)
	fmt.Fprintln(out, "🔄 Updating chapter logo URLs...")
	fmt.Fprintln(out)
	for _, res := range report.Results {
		if line := components.ProgressLine(res); line != "" {
			fmt.Fprintln(out, line)
		}
	}

	if !cfg.DryRun {
		fmt.Fprintf(out, "\n💾 Saved updated %s\n", filepath.Base(cfg.Document))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, components.Summary(report, cfg.LogosDir, cfg.DryRun, 40))
	return nil
}
