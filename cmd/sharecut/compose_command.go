package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sharecut/internal/composer"
	"sharecut/internal/config"
	"sharecut/internal/layout"
	"sharecut/internal/preflight"
	"sharecut/internal/services"
	"sharecut/internal/timeline"
)

// selectionOptions pick the part of the recording and the chapter tokens.
// compose, plan and intervals all bind them.
type selectionOptions struct {
	start      string
	end        string
	startToken string
	stopToken  string
}

func (o *selectionOptions) bind(flags *pflag.FlagSet) {
	flags.StringVarP(&o.start, "start", "s", "", "Trim start (HH:MM:SS, MM:SS or seconds)")
	flags.StringVarP(&o.end, "end", "e", "", "Trim end (HH:MM:SS, MM:SS or seconds)")
	flags.StringVar(&o.startToken, "start-token", "", "Chapter title fragment that starts sharing")
	flags.StringVar(&o.stopToken, "stop-token", "", "Chapter title fragment that stops sharing")
}

func (o selectionOptions) trim() (timeline.TrimWindow, error) {
	return timeline.ParseTrimWindow(strings.TrimSpace(o.start), strings.TrimSpace(o.end))
}

// tokens overlays the token flags on the configured tokens.
func (o selectionOptions) tokens(cfg *config.Config) timeline.Tokens {
	tokens := tokensFromConfig(cfg)
	if value := strings.TrimSpace(o.startToken); value != "" {
		tokens.Start = value
	}
	if value := strings.TrimSpace(o.stopToken); value != "" {
		tokens.Stop = value
	}
	return tokens
}

// composeOptions are the flags shared by compose and plan.
type composeOptions struct {
	selectionOptions
	dimensions      string
	layout          string
	backgroundColor string
	backgroundImage string
	graphOut        string
}

func (o *composeOptions) bind(flags *pflag.FlagSet) {
	o.selectionOptions.bind(flags)
	flags.StringVarP(&o.dimensions, "dimensions", "d", "", "Output size WIDTHxHEIGHT (default: camera size)")
	flags.StringVarP(&o.layout, "layout", "l", "", "Combined layout: "+layout.ModeNames())
	flags.StringVar(&o.backgroundColor, "background-color", "", "Background colour for letterboxing")
	flags.StringVar(&o.backgroundImage, "background-image", "", "Background image for the canvas")
	flags.StringVar(&o.graphOut, "graph-out", "", "Write the filter graph to this file and encode from it")
}

// request merges flags over config defaults.
func (o composeOptions) request(cfg *config.Config, camera, slides, output string) (composer.Request, error) {
	trim, err := o.trim()
	if err != nil {
		return composer.Request{}, err
	}

	var dims layout.Dimensions
	if value := strings.TrimSpace(o.dimensions); value != "" {
		dims, err = layout.ParseDimensions(value)
		if err != nil {
			return composer.Request{}, err
		}
	}

	mode, err := layout.ParseMode(firstNonEmpty(o.layout, cfg.Layout.Mode))
	if err != nil {
		return composer.Request{}, err
	}

	background := backgroundFromConfig(cfg)
	if value := strings.TrimSpace(o.backgroundColor); value != "" {
		background.Color = value
	}
	if value := strings.TrimSpace(o.backgroundImage); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return composer.Request{}, services.Wrap(services.ErrConfiguration, "cli", "background", value, err)
		}
		background.Image = expanded
	}

	return composer.Request{
		Camera:     camera,
		Slides:     slides,
		Output:     output,
		Trim:       trim,
		Mode:       mode,
		Dimensions: dims,
		Background: background,
		Tokens:     o.tokens(cfg),
		Policy:     policyFromConfig(cfg),
		GraphOut:   strings.TrimSpace(o.graphOut),
	}, nil
}

func newComposeCommand(ctx *commandContext) *cobra.Command {
	var opts composeOptions
	var dryRun bool
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "compose CAMERA SLIDES OUTPUT",
		Short: "Compose a camera and a screen recording into one video",
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
			req.DryRun = dryRun

			if !skipPreflight && !dryRun {
				if err := runPreflight(cmd.Context(), cfg, req); err != nil {
					return err
				}
			}

			plan, err := comp.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if dryRun {
				printPlanSummary(out, plan)
				return nil
			}
			fmt.Fprintf(out, "Wrote %s\n", plan.Output)
			return nil
		},
	}

	opts.bind(cmd.Flags())
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan and ffmpeg command without encoding")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip dependency and path checks before encoding")
	return cmd
}

func runPreflight(ctx context.Context, cfg *config.Config, req composer.Request) error {
	results := preflight.RunAll(ctx, cfg, preflight.Targets{
		Camera:          req.Camera,
		Slides:          req.Slides,
		Output:          req.Output,
		BackgroundImage: req.Background.Image,
	})
	failed := preflight.Failed(results)
	if len(failed) == 0 {
		return nil
	}
	details := make([]string, 0, len(failed))
	for _, result := range failed {
		details = append(details, fmt.Sprintf("%s: %s", result.Name, result.Detail))
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "check", strings.Join(details, "; "), nil)
}

// printPlanSummary writes the human-readable dry-run report.
func printPlanSummary(out io.Writer, plan *composer.Plan) {
	mode := plan.Geometry.Mode
	fmt.Fprintf(out, "Layout:  %s (%s)\n", mode.Title(), mode.Description())
	fmt.Fprintf(out, "Camera:  %s (audio: %s)\n", plan.CameraSize, yesNo(plan.CameraHasAudio))
	fmt.Fprintf(out, "Canvas:  %s\n", plan.Geometry.Canvas)
	if plan.Geometry.ScaleSpeaker {
		fmt.Fprintln(out, "Scaling: camera is scaled to the canvas")
	}
	fmt.Fprintln(out)
	if plan.Timeline.Empty() {
		fmt.Fprintln(out, "No sharing intervals; the speaker view is used throughout.")
	} else {
		fmt.Fprintln(out, "Sharing intervals:")
		fmt.Fprintln(out, renderIntervals(plan.Timeline))
	}
	for _, warning := range plan.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", warning)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Command:")
	fmt.Fprintln(out, plan.Command)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
