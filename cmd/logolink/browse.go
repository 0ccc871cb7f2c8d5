package cmd

import (
	"github.com/kerbaras/logolink/pkg/app"
	"github.com/kerbaras/logolink/pkg/data"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse chapter logo resolutions interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, cleanup, err := newController(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		a := app.NewApp(ctrl.Config().Document, func() (data.Report, error) {
			_, report, err := ctrl.Plan(ctx)
			return report, err
		})
		return a.Run()
	},
}
