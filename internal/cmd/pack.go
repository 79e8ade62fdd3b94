package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shellpack/cli/internal/bundler"
	"github.com/shellpack/cli/internal/config"
	"github.com/shellpack/cli/internal/output"
	"github.com/shellpack/cli/internal/pipeline"
)

// NewPackCmd creates the pack command.
func NewPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack",
		Short: "Package the application for distribution",
		Long: `Package the application into the output directory.

The run is all-or-nothing: the output directory is cleaned, the web client
is bundled into public/, and the server and main-process entry points are
each bundled into a single production-mode script with the configured
externals left unbundled. The application icon is copied if present.

Examples:
  # Package with shellpack.yaml from the project root
  shellpack pack

  # Package with an alternate config
  shellpack pack -c ci/shellpack.yaml`,
		Args: cobra.NoArgs,
		RunE: runPack,
	}
}

func runPack(cmd *cobra.Command, _ []string) error {
	return packOnce(cmd.Context(), GetConfig())
}

// packOnce runs one full pipeline pass. Shared by pack and watch.
func packOnce(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return WrapValidation(err, "invalid configuration")
	}

	p, err := pipeline.New(pipeline.Options{
		Config: cfg,
		Client: &bundler.ExecClient{Command: cfg.Tools.Client},
		Script: &bundler.ExecScript{Command: cfg.Tools.Script},
		Wrap:   spinnerStep,
	})
	if err != nil {
		return WrapValidation(err, "building pipeline")
	}

	results, err := p.Run(ctx)
	if err != nil {
		return classifyStepError(err)
	}

	for _, r := range results {
		output.Println(output.FormatStepLine(r.Name, stepArtifact(r.Name), r.Status))
	}
	summary := output.StyleSummary.Render("packaged into") + " " + output.StyleNoun.Render(cfg.Output)
	output.Println(output.FormatCheckmark(summary))
	return nil
}

// stepArtifact maps step names to the artifact shown in the step summary.
func stepArtifact(step string) string {
	switch step {
	case "client":
		return "public/"
	case "server":
		return "server.js"
	case "main":
		return "main.js"
	case "manifest":
		return "manifest.yaml"
	default:
		return ""
	}
}

// spinnerStep runs one pipeline step behind a spinner when attached to a TTY.
// The caption is off because the step title takes its place.
func spinnerStep(ctx context.Context, step string, run func() error) error {
	ind := output.NewIndicator(output.IndicatorOptions{
		Size:        output.SizeSmall,
		ShowCaption: output.BoolPtr(false),
	})
	return output.RunWithSpinner(ctx, run,
		output.WithTitle(stepTitle(step)),
		output.WithIndicator(ind),
	)
}

// stepTitle maps step names to spinner titles.
func stepTitle(step string) string {
	switch step {
	case "clean":
		return "Cleaning output directory..."
	case "client":
		return "Bundling web client..."
	case "server":
		return "Bundling server runtime..."
	case "main":
		return "Bundling desktop main process..."
	case "icon":
		return "Copying application icon..."
	case "manifest":
		return "Writing artifact manifest..."
	default:
		return "Working..."
	}
}

// classifyStepError maps a pipeline failure to the exit-code taxonomy:
// a clean failure is a setup error, everything else is a bundle error.
func classifyStepError(err error) error {
	var stepErr *pipeline.StepError
	if !errors.As(err, &stepErr) {
		return err
	}
	if stepErr.Step == "clean" {
		return WrapSetup(err, "preparing output directory")
	}
	return WrapBundle(err, fmt.Sprintf("bundling %s", stepErr.Step))
}
