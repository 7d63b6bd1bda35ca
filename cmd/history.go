package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"asset-diff/core/config"
	"asset-diff/core/database"
	"asset-diff/feature/merge"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyFormat string
)

// historyCmd lists recorded merge runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded merge runs",
	Long:  `List the most recent merge runs stored in the history database, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs")
	historyCmd.Flags().StringVar(&historyFormat, "format", "text", "Output format (text, json)")

	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	store := merge.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	runs, err := store.List(ctx, historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if historyFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tOUTCOME\tDIFFS\tUNRESOLVED\tBASE\tSIDE1\tSIDE2")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Source, run.Outcome,
			run.Differences, run.Unresolved, run.BaseRef, run.Side1Ref, run.Side2Ref)
	}
	return tw.Flush()
}
