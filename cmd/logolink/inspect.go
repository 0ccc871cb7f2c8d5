package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/dustin/go-humanize"
	"github.com/kerbaras/logolink/pkg/app/components"
	"github.com/kerbaras/logolink/pkg/app/styles"
	"github.com/kerbaras/logolink/pkg/integrations"
	"github.com/kerbaras/logolink/pkg/services"
	"github.com/kerbaras/logolink/pkg/utils"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Check the downloaded logos",
	Long: `Decode every file in the logos directory and report its format and size.

Logos that cannot be decoded, logos larger than --max-dimension and logos no
chapter refers to are flagged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, cleanup, err := newController(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		doc, inv, err := ctrl.Load(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if inv.Len() == 0 {
			fmt.Fprintf(out, "📂 No logos in %s\n", ctrl.Config().LogosDir)
			return nil
		}

		maxDimension, _ := cmd.Flags().GetInt("max-dimension")
		inspector := integrations.NewInspector(appFs, ctrl.Config().LogosDir)
		inspector.SetMaxDimension(maxDimension)
		infos := inspector.InspectAll(inv)

		orphans := map[string]bool{}
		for _, name := range services.Orphans(doc, inv) {
			orphans[name] = true
		}

		columns := []table.Column{
			{Title: "File", Width: 40},
			{Title: "Format", Width: 6},
			{Title: "Size", Width: 9},
			{Title: "Dimensions", Width: 11},
			{Title: "Notes", Width: 30},
		}
		rows := make([]table.Row, 0, len(infos))
		broken := 0
		for _, info := range infos {
			var notes []string
			dimensions := fmt.Sprintf("%dx%d", info.Width, info.Height)
			if info.Err != nil {
				broken++
				dimensions = "-"
				notes = append(notes, info.Err.Error())
			}
			if info.Vector {
				notes = append(notes, "vector")
			}
			if info.Oversized {
				notes = append(notes, "oversized")
			}
			if orphans[info.Name] {
				notes = append(notes, "unreferenced")
			}
			rows = append(rows, table.Row{
				utils.TruncateString(info.Name, 40),
				info.Format,
				humanize.Bytes(uint64(info.Size)),
				dimensions,
				utils.TruncateString(strings.Join(notes, ", "), 30),
			})
		}

		fmt.Fprintf(out, "\n🖼️  %s (%d logos)\n\n", ctrl.Config().LogosDir, len(infos))
		fmt.Fprintln(out, components.StaticTable(columns, rows))
		fmt.Fprintln(out)
		if broken > 0 {
			fmt.Fprintln(out, styles.StatusError.Render(fmt.Sprintf("❌ %d logos could not be decoded", broken)))
		}
		if len(orphans) > 0 {
			fmt.Fprintln(out, styles.StatusMissing.Render(fmt.Sprintf("⚠️  %d logos are not referenced by any chapter", len(orphans))))
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Int("max-dimension", integrations.DefaultMaxDimension, "Flag logos wider or taller than this (0 disables)")
}
