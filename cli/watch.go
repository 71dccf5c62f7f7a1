package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce coalesces the burst of events an editor emits on save.
var watchDebounce = 200 * time.Millisecond

// watchSamples runs fn once, then again after every change to path, until
// ctx is done. A failing run is reported on errOut and watching continues.
func watchSamples(ctx context.Context, path string, errOut io.Writer, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	// Watch the directory: editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	runAndReport := func() {
		if err := fn(); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}
	runAndReport()
	fmt.Fprintf(errOut, "Watching %s for changes (Ctrl+C to stop)\n", path)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Debug("samples file changed", zap.String("op", ev.Op.String()))
			debounce = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-debounce:
			debounce = nil
			runAndReport()
		}
	}
}
