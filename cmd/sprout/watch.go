package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/julien-sobczak/sprout/internal/core"
	"github.com/julien-sobczak/sprout/internal/dom"
	"github.com/julien-sobczak/sprout/internal/engine"
	"github.com/julien-sobczak/sprout/internal/host"
	"github.com/julien-sobczak/sprout/pkg/clock"
	"github.com/spf13/cobra"
)

func init() {
	watchCmd.Flags().IntVarP(&width, "width", "w", 100, "width of the output in characters")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Display a document and render it again on every change",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := watch(ctx, args[0], os.Stdout); err != nil && err != context.Canceled {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// watch keeps the rendered document in sync with the file.
// The tree is only modified by the tasks of the loop.
func watch(ctx context.Context, path string, out io.Writer) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Editors often replace the file when saving
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	loop := host.NewLoop(clock.CurrentClock())
	h := host.New(path)
	e := engine.New(h.Document(), engine.Options{
		Clock:    loop,
		Source:   h,
		Path:     path,
		Settings: loadConfig,
		Rich:     textRenderer,
	})
	defer e.Close()

	display := func() {
		view := host.NewView(e.Config().Presentation.Columns, width)
		// Clear the screen
		fmt.Fprint(out, "\033[H\033[2J")
		fmt.Fprintln(out, view.Render(h.Document().Root()))
	}
	reload := func() {
		content, err := os.ReadFile(path)
		if err != nil {
			core.CurrentLogger().Warnf("Unable to read %s: %v", path, err)
			return
		}
		stats := h.Render(string(content))
		if stats.Created == 0 && stats.Removed == 0 {
			return
		}
		h.Document().FlushMutations()
		// Wait for the engine to process the changes
		loop.AfterFunc(config.Debounce+config.FrameDelay, display)
	}

	err = loop.Post(func() {
		content, err := os.ReadFile(path)
		if err != nil {
			core.CurrentLogger().Warnf("Unable to read %s: %v", path, err)
		}
		h.Render(string(content))
		if err := e.Start(ctx); err != nil {
			core.CurrentLogger().Warnf("Unable to render cards: %v", err)
		}
		display()
	})
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				switch {
				case sameFile(event.Name, path):
					core.CurrentLogger().Debugf("%s changed", path)
					_ = loop.Post(reload)
				case filepath.Base(event.Name) == core.ConfigFilename:
					core.CurrentLogger().Debug("Configuration changed")
					_ = loop.Post(func() {
						dom.Dispatch(h.Document().Root(), core.RefreshEvent)
						display()
					})
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				core.CurrentLogger().Warnf("Unable to watch %s: %v", path, err)
			case <-ctx.Done():
				return
			}
		}
	}()

	return loop.Run(ctx)
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
