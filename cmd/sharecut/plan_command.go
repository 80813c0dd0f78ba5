package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var opts composeOptions
	var format string

	cmd := &cobra.Command{
		Use:   "plan CAMERA SLIDES OUTPUT",
		Short: "Print the full composition plan without encoding",
		Long:  "plan probes both recordings and prints the timeline, layout regions,\nfilter graph and ffmpeg arguments. Use --format table for a readable summary.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, cfg, err := ctx.newComposer(cmd)
			if err != nil {
				return err
			}
			req, err := opts.request(cfg, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			req.DryRun = true
			plan, err := comp.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			if format != "table" {
				return writeStructured(cmd, format, plan)
			}

			out := cmd.OutOrStdout()
			printPlanSummary(out, plan)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Regions:")
			fmt.Fprintln(out, renderRegions(plan.Geometry))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Filter graph:")
			fmt.Fprint(out, plan.Graph.Script())
			return nil
		},
	}

	opts.bind(cmd.Flags())
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml or table")
	return cmd
}
