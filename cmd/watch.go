package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-run the analysis whenever a program description changes",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide program description paths")
			os.Exit(1)
		}
		if err := runWatch(logger, args); err != nil {
			logger.Error("Watch failed", zap.Error(err))
			os.Exit(1)
		}
	},
}

func runWatch(logger *zap.Logger, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleWatchEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func handleWatchEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".yaml") && !strings.HasSuffix(event.Name, ".yml") {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(100 * time.Millisecond)

	result, err := analyzePath(event.Name)
	if err != nil {
		logger.Error("Error analyzing program", zap.String("path", event.Name), zap.Error(err))
		return
	}
	printStates(event.Name, result)
}
