package commands

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/linger/internal/adapters/watcher"
	"go.trai.ch/linger/internal/app"
	"go.trai.ch/linger/internal/ui/output"
	"go.trai.ch/linger/internal/ui/render"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [DIR] [-- TOOL_ARGS...]",
		Short: "Analyze Go files as they are saved",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debounce, _ := cmd.Flags().GetDuration("debounce")
			metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

			root := "."
			if len(args) > 0 && cmd.ArgsLenAtDash() != 0 {
				root, args = args[0], args[1:]
			}

			w, err := c.newWatcher()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			profile := output.ColorProfile(out)
			var mu sync.Mutex
			report := func(r app.WatchResult) {
				if r.Err != nil {
					c.logger.Error(r.Err)
					return
				}
				mu.Lock()
				defer mu.Unlock()
				_ = render.Text(out, render.NewAnalysisView(r.Path, r.Analysis), profile)
			}

			opts := app.WatchOptions{Root: root, Debounce: debounce, Args: args}
			if metricsAddr == "" {
				return c.app.Watch(cmd.Context(), w, opts, report)
			}
			return c.watchWithMetrics(cmd.Context(), metricsAddr, func(ctx context.Context) error {
				return c.app.Watch(ctx, w, opts, report)
			})
		},
	}
	cmd.Flags().Duration("debounce", watcher.DefaultDebounceWindow, "Quiet period before saved files are analyzed")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	return cmd
}

// watchWithMetrics runs watch next to a metrics server and stops both when either ends.
func (c *CLI) watchWithMetrics(ctx context.Context, addr string, watch func(context.Context) error) error {
	if c.metrics == nil {
		return watch(ctx)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.metrics)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: shutdownTimeout}
	c.logger.Info("serving metrics on http://" + ln.Addr().String() + "/metrics")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		return watch(gctx)
	})
	return g.Wait()
}
