package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/futures-data/internal/catalog"
	"github.com/rickgao/futures-data/internal/fsys"
	"github.com/rickgao/futures-data/internal/layout"
	"github.com/rickgao/futures-data/internal/metrics"
	"github.com/rickgao/futures-data/internal/parsespec"
	"github.com/rickgao/futures-data/internal/planner"
	"github.com/rickgao/futures-data/internal/server"
	"github.com/rickgao/futures-data/internal/version"
	"github.com/rickgao/futures-data/internal/watcher"
)

func serveCmd(g *globalFlags) *cobra.Command {
	var refYear int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve read plans over HTTP and invalidate them on file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}

			logger.Info("starting futuresdata server",
				"version", version.Version,
				"commit", version.Commit,
				"root", cfg.Data.Root,
			)

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			resolveMetrics, err := metrics.NewResolver(reg)
			if err != nil {
				return fmt.Errorf("register resolver metrics: %w", err)
			}
			catalogMetrics, err := metrics.NewCatalog(reg)
			if err != nil {
				return fmt.Errorf("register catalog metrics: %w", err)
			}

			fs := fsys.OS{}
			plans := planner.New(
				parsespec.NewDefaultRegistry(),
				layout.NewDirs(fs, cfg.Data.Root),
				layout.NewNamer(),
				fs,
				planner.WithLogger(logger),
				planner.WithMetrics(resolveMetrics),
			)

			scan := func() ([]catalog.Entry, error) {
				entries, err := catalog.Scan(cfg.Data.Root, refYear, catalog.WithLogger(logger))
				catalogMetrics.ObserveScan(len(entries), err)
				return entries, err
			}

			srv := server.New(server.Config{
				Addr:            fmt.Sprintf(":%d", cfg.Server.Port),
				MetricsPath:     cfg.Server.MetricsPath,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
			}, plans, scan, reg, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			grp, gctx := errgroup.WithContext(ctx)
			grp.Go(func() error {
				return srv.Run(gctx)
			})

			if cfg.Watch.Enabled {
				w, err := watcher.New(watcher.Config{Debounce: cfg.Watch.Debounce, RefYear: refYear}, cfg.Data.Root, plans, logger)
				if err != nil {
					stop()
					_ = grp.Wait()
					return err
				}
				if err := w.Start(gctx); err != nil {
					stop()
					_ = grp.Wait()
					_ = w.Stop()
					return err
				}
				grp.Go(func() error {
					for ev := range w.Events() {
						logger.Info("data file changed",
							"request", ev.Request,
							"op", ev.Operation,
							"cleared", ev.Cleared,
						)
					}
					return nil
				})
				grp.Go(func() error {
					<-gctx.Done()
					return w.Stop()
				})
			}

			err = grp.Wait()
			logger.Info("futuresdata server stopped")
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	addRefYearFlag(cmd, &refYear)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "futuresdata %s\n", version.String())
		},
	}
}
