package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchedExtensions are the file types that trigger a rebuild: the app
// source, GraphQL schemas, and codegen configs.
var watchedExtensions = []string{".go", ".graphql", ".graphqls", ".yml", ".yaml"}

func newWatchCmd() *cobra.Command {
	var (
		debounce     time.Duration
		outputFormat string
		outputDir    string
		local        bool
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Auto-rebuild on source file changes",
		Long: `Watch monitors the app directory and rebuilds on changes.

The watch command:
- Monitors .go, .graphql, .yml and .yaml files
- Rebuilds templates on each change
- Debounces rapid changes to avoid excessive rebuilds
- Runs the app with SST_LOCAL=true by default, so codegen and other
  cloud-side build steps stay off during local development

Examples:
    sst watch ./infra
    sst watch ./infra --debounce 1s
    sst watch ./infra --local=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], watchOptions{
				debounce:     debounce,
				outputFormat: outputFormat,
				outputDir:    outputDir,
				local:        local,
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format for build: json or yaml")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".sst", "Output directory for templates")
	cmd.Flags().BoolVar(&local, "local", true, "Run the app in local development mode")

	return cmd
}

type watchOptions struct {
	debounce     time.Duration
	outputFormat string
	outputDir    string
	local        bool
}

// runWatch monitors the app directory and rebuilds on changes.
func runWatch(dir string, opts watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if err := addDirRecursive(watcher, absDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absDir, err)
	}
	fmt.Printf("Watching: %s\n", absDir)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Running initial build...")
	runWatchBuild(dir, opts)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !watchedFile(event.Name) {
				continue
			}

			// Only process write/create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce: reset timer on each change
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Printf("\n[%s] Change detected, rebuilding...\n", time.Now().Format("15:04:05"))
			runWatchBuild(dir, opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// watchedFile reports whether a change to the file should trigger a
// rebuild.
func watchedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, watched := range watchedExtensions {
		if ext == watched {
			return true
		}
	}
	return false
}

// addDirRecursive adds a directory and all subdirectories to the watcher.
func addDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			// Skip hidden directories
			if strings.HasPrefix(filepath.Base(path), ".") && path != dir {
				return filepath.SkipDir
			}
			// Skip vendor directory
			if filepath.Base(path) == "vendor" {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// runWatchBuild rebuilds and reports errors without stopping the watch.
func runWatchBuild(dir string, opts watchOptions) {
	if err := runBuild(dir, opts.outputFormat, opts.outputDir, opts.local); err != nil {
		fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
		return
	}
	fmt.Println("Build succeeded")
}
