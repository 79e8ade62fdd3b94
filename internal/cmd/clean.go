package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shellpack/cli/internal/output"
	"github.com/shellpack/cli/internal/pipeline"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove and recreate the output directory",
		Long: `Remove the output directory and recreate it empty.

This is the first step of a pack run, exposed on its own for scripting.`,
		Args: cobra.NoArgs,
		RunE: runClean,
	}
}

func runClean(_ *cobra.Command, _ []string) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return WrapValidation(err, "invalid configuration")
	}

	outRoot, err := filepath.Abs(cfg.Output)
	if err != nil {
		return WrapSetup(err, "resolving output directory")
	}

	if err := pipeline.CleanOutput(outRoot); err != nil {
		return WrapSetup(err, "cleaning output directory")
	}

	output.Info("output directory cleaned", "path", outRoot)
	return nil
}
