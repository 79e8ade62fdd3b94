// Package bundler defines the bundling capabilities the packaging pipeline
// consumes, plus implementations that shell out to the external toolchain.
package bundler

import (
	"context"
	"fmt"
	"sort"
)

// Script bundle target constants.
const (
	// PlatformNode targets the Node.js runtime.
	PlatformNode = "node"

	// FormatCJS emits a CommonJS module.
	FormatCJS = "cjs"
)

// ClientOptions configures a web client bundle.
type ClientOptions struct {
	// Root is the client project root the bundler runs in.
	Root string

	// OutDir is the directory that receives the static bundle.
	OutDir string

	// EmptyOutDir asks the bundler to clear OutDir before writing. The
	// pipeline already cleans the output root; this enables the same
	// semantics redundantly on the tool side.
	EmptyOutDir bool
}

// ScriptOptions configures a single-file script bundle.
type ScriptOptions struct {
	// Entry is the entry-point source file.
	Entry string

	// Outfile is the single combined output file.
	Outfile string

	// Platform is the target execution platform (PlatformNode).
	Platform string

	// Format is the output module format (FormatCJS).
	Format string

	// Define maps identifiers to compile-time replacement values, e.g.
	// process.env.NODE_ENV → "production".
	Define map[string]string

	// Externals are dependencies excluded from the bundle and left as
	// unresolved references for the host runtime.
	Externals []string
}

// Client bundles a web application into a static output directory.
type Client interface {
	Bundle(ctx context.Context, opts ClientOptions) error
}

// Script bundles a script entry point into a single file for a target
// runtime platform.
type Script interface {
	Bundle(ctx context.Context, opts ScriptOptions) error
}

// clientArgs builds the argument list for a vite-style client build.
func clientArgs(opts ClientOptions) []string {
	args := []string{"build", "--outDir", opts.OutDir}
	if opts.EmptyOutDir {
		args = append(args, "--emptyOutDir")
	}
	return args
}

// scriptArgs builds the argument list for an esbuild-style script bundle.
// Define entries are sorted so invocations are deterministic.
func scriptArgs(opts ScriptOptions) []string {
	args := []string{
		opts.Entry,
		"--bundle",
		fmt.Sprintf("--platform=%s", opts.Platform),
		fmt.Sprintf("--format=%s", opts.Format),
		fmt.Sprintf("--outfile=%s", opts.Outfile),
	}

	keys := make([]string, 0, len(opts.Define))
	for k := range opts.Define {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, fmt.Sprintf("--define:%s=%s", k, opts.Define[k]))
	}

	for _, ext := range opts.Externals {
		args = append(args, fmt.Sprintf("--external:%s", ext))
	}

	return args
}
