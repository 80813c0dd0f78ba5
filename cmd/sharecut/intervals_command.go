package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIntervalsCommand(ctx *commandContext) *cobra.Command {
	var opts selectionOptions
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "intervals SLIDES",
		Short: "List the sharing intervals found in a screen recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, cfg, err := ctx.newComposer(cmd)
			if err != nil {
				return err
			}
			trim, err := opts.trim()
			if err != nil {
				return err
			}

			report, err := comp.Intervals(cmd.Context(), args[0], opts.tokens(cfg), trim)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d chapter markers, %d sharing intervals\n", len(report.Markers), len(report.Source.Intervals))
			if !trim.IsIdentity() {
				fmt.Fprintf(out, "Trimmed to %s-%s: %d intervals kept\n",
					timecodeLabel(trim.Start), timecodeLabel(trim.EndSeconds()), len(report.Timeline.Intervals))
			}
			if report.Timeline.Empty() {
				fmt.Fprintln(out, "No sharing intervals.")
				return nil
			}
			fmt.Fprintln(out, renderIntervals(report.Timeline))
			return nil
		},
	}

	opts.bind(cmd.Flags())
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
