package cmd

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/shellpack/cli/internal/config"
	"github.com/shellpack/cli/internal/output"
)

// debounceInterval batches bursts of file events into one re-pack.
const debounceInterval = 300 * time.Millisecond

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Package once, then repackage on source changes",
		Long: `Package the application, then watch the source tree and run the
pipeline again whenever a source file changes. Failed runs are logged and
watching continues.`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return WrapValidation(err, "invalid configuration")
	}

	ctx := cmd.Context()

	// Initial pack. Failure is logged, not fatal: the next change gets a
	// fresh run, same as docbuilder-style preview loops.
	if err := packOnce(ctx, cfg); err != nil {
		output.Error("initial pack failed", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return WrapSetup(err, "creating file watcher")
	}
	defer func() { _ = watcher.Close() }()

	outRoot, err := filepath.Abs(cfg.Output)
	if err != nil {
		return WrapSetup(err, "resolving output directory")
	}

	if err := addWatchRoots(watcher, cfg, outRoot); err != nil {
		return WrapSetup(err, "watching source tree")
	}

	output.Info("watching for changes", "output", cfg.Output)
	return watchLoop(ctx, watcher, cfg, outRoot)
}

// addWatchRoots registers the client root and the script entry directories,
// recursively, skipping the output root and dependency/VCS directories.
func addWatchRoots(watcher *fsnotify.Watcher, cfg *config.Config, outRoot string) error {
	roots := []string{
		cfg.Client.Root,
		filepath.Dir(cfg.Server.Entry),
		filepath.Dir(cfg.Main.Entry),
	}

	seen := map[string]bool{}
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return err
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if skipDir(path, outRoot) {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// skipDir reports whether a directory should be excluded from watching.
func skipDir(path, outRoot string) bool {
	if path == outRoot || strings.HasPrefix(path, outRoot+string(os.PathSeparator)) {
		return true
	}
	base := filepath.Base(path)
	return base == "node_modules" || (strings.HasPrefix(base, ".") && base != ".")
}

// watchLoop debounces file events and re-runs the pipeline.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, cfg *config.Config, outRoot string) error {
	debounce := time.NewTimer(debounceInterval)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event, outRoot) {
				continue
			}
			// Directories created mid-watch join the watch set.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDir(event.Name, outRoot) {
					if err := watcher.Add(event.Name); err != nil {
						output.Warn("cannot watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			output.Debug("source change", "file", event.Name, "op", event.Op.String())
			debounce.Reset(debounceInterval)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			output.Warn("watch error", "error", err)

		case <-debounce.C:
			if err := packOnce(ctx, cfg); err != nil {
				output.Error("repack failed", "error", err)
			}
		}
	}
}

// relevantEvent filters out events inside the output root and chmod noise.
func relevantEvent(event fsnotify.Event, outRoot string) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	return !strings.HasPrefix(event.Name, outRoot+string(os.PathSeparator))
}
