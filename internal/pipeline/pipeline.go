// Package pipeline orchestrates the packaging steps that turn an application
// source tree into a deployable desktop bundle.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shellpack/cli/internal/bundler"
	"github.com/shellpack/cli/internal/config"
	"github.com/shellpack/cli/internal/output"
)

// Outcome classifies what a step's failure means for the run.
type Outcome int

const (
	// Fatal failures abort the run; the error propagates to the invoker.
	Fatal Outcome = iota

	// Tolerated failures are logged and the run continues.
	Tolerated
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Fatal:
		return "fatal"
	case Tolerated:
		return "tolerated"
	default:
		return "unknown"
	}
}

// Step is one ordered action of a pack run.
type Step struct {
	// Name identifies the step in logs and errors.
	Name string

	// Outcome classifies the step's failure policy.
	Outcome Outcome

	// Run performs the step.
	Run func(ctx context.Context) error
}

// StepWrapper decorates step execution; the cmd layer uses it to attach a
// spinner per step. A nil wrapper runs the step directly.
type StepWrapper func(ctx context.Context, step string, run func() error) error

// Pipeline is a one-shot, strictly sequential pack run. Steps execute in
// order; the first Fatal failure aborts the run. There are no retries, no
// timeouts, and no parallelism.
type Pipeline struct {
	steps []Step
	wrap  StepWrapper
}

// Options carries the collaborators a pack run needs.
type Options struct {
	// Config is the validated project configuration.
	Config *config.Config

	// Client bundles the web client.
	Client bundler.Client

	// Script bundles the server and main-process entry points.
	Script bundler.Script

	// Wrap decorates each step run (optional).
	Wrap StepWrapper
}

// productionDefine is baked into both script bundles to select production
// behavior at run time. The value is a JS string literal, hence the quotes.
var productionDefine = map[string]string{
	"process.env.NODE_ENV": `"production"`,
}

// New builds the pack pipeline from configuration.
func New(opts Options) (*Pipeline, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("pipeline requires a configuration")
	}
	if opts.Client == nil || opts.Script == nil {
		return nil, fmt.Errorf("pipeline requires client and script bundlers")
	}

	outRoot, err := filepath.Abs(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("resolving output root: %w", err)
	}

	serverOut := filepath.Join(outRoot, "server.js")
	mainOut := filepath.Join(outRoot, "main.js")

	steps := []Step{
		{
			Name:    "clean",
			Outcome: Fatal,
			Run: func(context.Context) error {
				return CleanOutput(outRoot)
			},
		},
		{
			Name:    "client",
			Outcome: Fatal,
			Run: func(ctx context.Context) error {
				return opts.Client.Bundle(ctx, bundler.ClientOptions{
					Root:        cfg.Client.Root,
					OutDir:      filepath.Join(outRoot, "public"),
					EmptyOutDir: true,
				})
			},
		},
		{
			Name:    "server",
			Outcome: Fatal,
			Run: func(ctx context.Context) error {
				return opts.Script.Bundle(ctx, bundler.ScriptOptions{
					Entry:     cfg.Server.Entry,
					Outfile:   serverOut,
					Platform:  bundler.PlatformNode,
					Format:    bundler.FormatCJS,
					Define:    productionDefine,
					Externals: cfg.Externals,
				})
			},
		},
		{
			Name:    "main",
			Outcome: Fatal,
			Run: func(ctx context.Context) error {
				return opts.Script.Bundle(ctx, bundler.ScriptOptions{
					Entry:     cfg.Main.Entry,
					Outfile:   mainOut,
					Platform:  bundler.PlatformNode,
					Format:    bundler.FormatCJS,
					Define:    productionDefine,
					Externals: cfg.Externals,
				})
			},
		},
		{
			Name:    "icon",
			Outcome: Tolerated,
			Run: func(context.Context) error {
				return copyFile(cfg.Icon, filepath.Join(outRoot, filepath.Base(cfg.Icon)))
			},
		},
		{
			Name:    "manifest",
			Outcome: Tolerated,
			Run: func(context.Context) error {
				return writeManifest(outRoot)
			},
		},
	}

	return &Pipeline{steps: steps, wrap: opts.Wrap}, nil
}

// StepResult records how one step ended.
type StepResult struct {
	// Name is the step name.
	Name string

	// Status is one of output.StatusDone, StatusSkipped, StatusFailed.
	Status string

	// Err is the failure for skipped or failed steps.
	Err error
}

// Run executes the steps in order and returns a result per executed step.
// The first Fatal failure is returned as a *StepError alongside the results
// so far; Tolerated failures are logged at info level and swallowed.
func (p *Pipeline) Run(ctx context.Context) ([]StepResult, error) {
	results := make([]StepResult, 0, len(p.steps))

	for _, step := range p.steps {
		run := func() error {
			return step.Run(ctx)
		}

		var err error
		if p.wrap != nil {
			err = p.wrap(ctx, step.Name, run)
		} else {
			err = run()
		}

		log := output.StepLogger(step.Name)
		if err != nil {
			if step.Outcome == Fatal {
				results = append(results, StepResult{Name: step.Name, Status: output.StatusFailed, Err: err})
				return results, &StepError{Step: step.Name, Err: err}
			}
			results = append(results, StepResult{Name: step.Name, Status: output.StatusSkipped, Err: err})
			log.Info("step skipped", "reason", err)
			continue
		}
		results = append(results, StepResult{Name: step.Name, Status: output.StatusDone})
		log.Debug("step complete")
	}

	return results, nil
}

// Steps returns the ordered step names. Used for progress display.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// CleanOutput removes the output root if present and recreates it empty.
// A missing directory is not an error; anything else (including permission
// failures on the directory or its parent) is.
func CleanOutput(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing output root: %w", err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating output root: %w", err)
	}
	return nil
}

// copyFile copies src to dst, creating or truncating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
