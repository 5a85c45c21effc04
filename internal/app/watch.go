package app

import (
	"context"
	"path/filepath"
	"time"

	"go.trai.ch/linger/internal/adapters/watcher" //nolint:depguard // Debouncing is shared with the watcher adapter
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// WatchOptions configures Watch.
type WatchOptions struct {
	// Root is the directory watched recursively.
	Root string
	// Debounce is the quiet period before a batch of saves is analyzed.
	Debounce time.Duration
	// Args are appended to the configured argv of every run.
	Args []string
}

// WatchResult is the outcome of analyzing one saved file.
type WatchResult struct {
	Path     string
	Analysis *domain.Analysis
	Err      error
}

// Watch analyzes every saved Go file below opts.Root until ctx is done.
//
// Saves are batched by a debouncer. Each file of a batch is analyzed in its
// own goroutine, so saves in one package share a single tool run.
// report is called once per analyzed file and may be called concurrently.
func (a *App) Watch(ctx context.Context, w ports.Watcher, opts WatchOptions, report func(WatchResult)) error {
	if err := w.Start(ctx, opts.Root); err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	var g errgroup.Group
	deb := watcher.NewDebouncer(opts.Debounce, func(paths []string) {
		for _, path := range paths {
			g.Go(func() error {
				analysis, err := a.Analyze(ctx, AnalyzeRequest{
					FilePath:   path,
					WorkingDir: filepath.Dir(path),
					Args:       opts.Args,
				})
				if ctx.Err() != nil {
					return nil
				}
				report(WatchResult{Path: path, Analysis: analysis, Err: err})
				return nil
			})
		}
	})

	a.logger.Info("watching " + opts.Root)
	for event := range w.Events() {
		if !event.IsSave() || filepath.Ext(event.Path) != ".go" {
			continue
		}
		deb.Add(event.Path)
	}

	deb.Stop()
	return g.Wait()
}
