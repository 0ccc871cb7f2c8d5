package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/kerbaras/logolink/pkg/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "logolink",
	Short: "Point chapter logos at their downloaded copies",
	Long: `Rewrite the remote logoUrl of every chapter in a JSON configuration to a
local path once the logo has been downloaded into the logos directory.

Chapters whose logo file is missing keep their original URL; chapters without
a logoUrl are skipped.`,
	SilenceUsage: true,
	RunE:         runUpdate,
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
