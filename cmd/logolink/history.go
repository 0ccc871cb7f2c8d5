package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/kerbaras/logolink/pkg/app/components"
	"github.com/kerbaras/logolink/pkg/data"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List runs recorded in the ledger",
	Long:  "Show previous runs stored in the DuckDB ledger given by --ledger, or the chapters of one run with --run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Ledger == "" {
			return errors.New("no ledger configured (use --ledger or LOGOLINK_LEDGER)")
		}

		repo, err := data.OpenLedger(cfg.Ledger)
		if err != nil {
			return fmt.Errorf("failed to open ledger: %w", err)
		}
		defer repo.Close()

		out := cmd.OutOrStdout()
		runID, _ := cmd.Flags().GetString("run")
		if runID != "" {
			run, err := repo.GetRun(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", runID)
			}
			fmt.Fprintf(out, "\n🧾 Run %s (%s)\n\n", run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintln(out, components.StaticTable(statusColumns(), statusRows(run.Report.Results)))
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := repo.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "🧾 No runs recorded yet.")
			return nil
		}

		columns := []table.Column{
			{Title: "Started", Width: 19},
			{Title: "Run", Width: 36},
			{Title: "Document", Width: 24},
			{Title: "Updated", Width: 8},
			{Title: "Missing", Width: 8},
			{Title: "Skipped", Width: 8},
			{Title: "Dry", Width: 4},
		}
		rows := make([]table.Row, 0, len(runs))
		for _, run := range runs {
			dry := ""
			if run.DryRun {
				dry = "yes"
			}
			rows = append(rows, table.Row{
				run.StartedAt.Local().Format("2006-01-02 15:04:05"),
				run.ID,
				run.Document,
				strconv.Itoa(run.Report.Updated),
				strconv.Itoa(run.Report.Missing),
				strconv.Itoa(run.Report.Skipped),
				dry,
			})
		}

		fmt.Fprintf(out, "\n🧾 Ledger %s (%d runs)\n\n", cfg.Ledger, len(runs))
		fmt.Fprintln(out, components.StaticTable(columns, rows))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of runs to show (0 for all)")
	historyCmd.Flags().String("run", "", "Show the chapters of a single run")
}
