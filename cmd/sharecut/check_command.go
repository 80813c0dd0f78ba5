package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sharecut/internal/preflight"
	"sharecut/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check [CAMERA SLIDES OUTPUT]",
		Short: "Verify ffmpeg, ffprobe and, optionally, the files of one composition",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("check takes no arguments or CAMERA SLIDES OUTPUT, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var targets preflight.Targets
			if len(args) == 3 {
				targets = preflight.Targets{Camera: args[0], Slides: args[1], Output: args[2]}
			}
			targets.BackgroundImage = cfg.Layout.BackgroundImage

			results := preflight.RunAll(cmd.Context(), cfg, targets)
			failed := preflight.Failed(results)

			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, line := range renderPreflight(results, shouldColorize(out)) {
					fmt.Fprintln(out, line)
				}
			}
			if len(failed) > 0 {
				return services.Wrap(services.ErrConfiguration, "preflight", "check", fmt.Sprintf("%d of %d checks failed", len(failed), len(results)), nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
