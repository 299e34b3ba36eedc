package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"antenna/internal/fetch"
	"antenna/internal/journal"
	"antenna/internal/logging"
	"antenna/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Fetch playlist sources and write the lineup",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			store, err := journal.Open(cfg)
			if err != nil {
				logger.Warn("run journal unavailable", logging.Error(err))
				store = nil
			} else {
				defer func() {
					_ = store.Close()
				}()
			}

			fetcher := fetch.New(cfg, logger)
			summary, err := pipeline.New(cfg, logger, fetcher, store).Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			if summary.Status == journal.StatusEmpty {
				fmt.Fprintln(out, renderStatusLine("Run "+summary.RunID, statusWarn, summary.Message, colorize))
				return nil
			}

			rows := [][]string{
				{"Run ID", summary.RunID},
				{"Sources", fmt.Sprintf("%d/%d", summary.SourcesFetched, summary.SourcesTotal)},
				{"Channels", strconv.Itoa(summary.Channels)},
				{"Matched", strconv.Itoa(summary.Matched)},
				{"Unmatched", strconv.Itoa(summary.Unmatched)},
				{"Output", summary.OutputPath},
				{"Duration", summary.Duration.Round(time.Millisecond).String()},
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Field", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
