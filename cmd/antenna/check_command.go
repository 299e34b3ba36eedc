package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"antenna/internal/preflight"
	"antenna/internal/sources"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the runtime environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			urls, _ := sources.Load(cfg.Paths.SourcesFile, cfg.Fetch.DefaultSource)
			results := preflight.RunAll(cmd.Context(), cfg, urls, probe)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					if result.Optional {
						kind = statusWarn
					}
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			if !preflight.RequiredPassed(results) {
				return errors.New("environment check failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "Probe each playlist source over HTTP")
	return cmd
}
