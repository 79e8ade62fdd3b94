package bundler

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExecClient runs an external web-bundler command (vite by default).
type ExecClient struct {
	// Command is the bundler executable name or path.
	Command string
}

// Bundle runs the client build inside opts.Root.
func (b *ExecClient) Bundle(ctx context.Context, opts ClientOptions) error {
	cmd := exec.CommandContext(ctx, b.Command, clientArgs(opts)...)
	cmd.Dir = opts.Root
	// Avoid opening pagers or interactive prompts
	cmd.Env = append(os.Environ(), "NO_COLOR=1")

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s build failed: %w: %s", b.Command, err, firstLines(out, 20))
	}
	return nil
}

// ExecScript runs an external script-bundler command (esbuild by default).
type ExecScript struct {
	// Command is the bundler executable name or path.
	Command string
}

// Bundle produces a single-file script bundle.
func (b *ExecScript) Bundle(ctx context.Context, opts ScriptOptions) error {
	cmd := exec.CommandContext(ctx, b.Command, scriptArgs(opts)...)
	cmd.Env = append(os.Environ(), "NO_COLOR=1")

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s failed: %w: %s", b.Command, opts.Entry, err, firstLines(out, 20))
	}
	return nil
}

// firstLines trims tool output for error messages; full output is rarely
// useful past the first screen.
func firstLines(out []byte, n int) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
