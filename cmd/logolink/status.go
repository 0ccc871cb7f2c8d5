package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/kerbaras/logolink/pkg/app/components"
	"github.com/kerbaras/logolink/pkg/app/styles"
	"github.com/kerbaras/logolink/pkg/data"
	"github.com/kerbaras/logolink/pkg/utils"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how every chapter would be resolved",
	Long:  "Plan the update without writing and display each chapter's outcome in a table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, cleanup, err := newController(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		_, report, err := ctrl.Plan(cmd.Context())
		if err != nil {
			return err
		}

		only, _ := cmd.Flags().GetString("only")
		results := report.Filter(data.Outcome(only))

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "📚 No chapters to show.")
			return nil
		}

		fmt.Fprintf(out, "\n🔗 %s (%d chapters, %d logos on disk)\n\n", ctrl.Config().Document, report.Total(), report.Available)
		fmt.Fprintln(out, components.StaticTable(statusColumns(), statusRows(results)))
		fmt.Fprintf(out, "\n%s  %s  %s\n",
			styles.StatusUpdated.Render(fmt.Sprintf("%d updated", report.Updated)),
			styles.StatusMissing.Render(fmt.Sprintf("%d missing", report.Missing)),
			styles.StatusSkipped.Render(fmt.Sprintf("%d skipped", report.Skipped)))
		return nil
	},
}

func init() {
	statusCmd.Flags().String("only", "", "Only show one outcome (updated, missing, skipped)")
}

func statusColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "ID", Width: 8},
		{Title: "Title", Width: 36},
		{Title: "Outcome", Width: 9},
		{Title: "Expected file", Width: 40},
	}
}

func statusRows(results []data.Result) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for _, res := range results {
		rows = append(rows, table.Row{
			strconv.Itoa(res.Index),
			utils.TruncateString(res.ChapterID, 8),
			utils.TruncateString(res.Title, 34),
			string(res.Outcome),
			utils.TruncateString(res.ExpectedFilename, 40),
		})
	}
	return rows
}
