package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"antenna/internal/journal"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run journal: %w", err)
			}
			defer func() {
				_ = store.Close()
			}()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				duration := run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)
				rows = append(rows, []string{
					strconv.FormatInt(run.ID, 10),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					string(run.Status),
					fmt.Sprintf("%d/%d", run.SourcesFetched, run.SourcesTotal),
					strconv.Itoa(run.Channels),
					strconv.Itoa(run.Matched),
					strconv.Itoa(run.Unmatched),
					duration.String(),
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Started", "Status", "Sources", "Channels", "Matched", "Unmatched", "Duration"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	return cmd
}
