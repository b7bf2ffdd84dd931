package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rickgao/futures-data/internal/catalog"
	"github.com/rickgao/futures-data/internal/database"
)

func listCmd(g *globalFlags) *cobra.Command {
	var (
		refYear int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contract files under the data root",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			entries, err := catalog.Scan(cfg.Data.Root, refYear, catalog.WithLogger(logger))
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SOURCE\tCONTRACT\tSIZE\tPATH")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Request.Source(), e.Request.Contract(), e.Size, e.Path)
			}
			return tw.Flush()
		},
	}

	addRefYearFlag(cmd, &refYear)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

func indexCmd(g *globalFlags) *cobra.Command {
	var (
		refYear int
		prune   bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Scan the data root and upsert the catalog into PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			if err := cfg.ValidateCatalog(); err != nil {
				return fmt.Errorf("validate config: %w", err)
			}
			ctx := cmd.Context()

			logger.Info("connecting to catalog database",
				"host", cfg.Database.Catalog.Host,
				"port", cfg.Database.Catalog.Port,
				"database", cfg.Database.Catalog.Name,
			)
			pool, err := database.Connect(ctx, cfg.Database.Catalog)
			if err != nil {
				return fmt.Errorf("connect catalog: %w", err)
			}
			defer pool.Close()

			store := catalog.NewStore(pool, nil, logger)
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}

			entries, err := catalog.Scan(cfg.Data.Root, refYear, catalog.WithLogger(logger))
			if err != nil {
				return err
			}

			runID := uuid.New()
			written, err := store.Write(ctx, runID, entries)
			if err != nil {
				return err
			}

			var pruned int64
			if prune {
				if pruned, err = store.Prune(ctx, runID); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d files, %d rows written, %d pruned\n",
				runID, len(entries), written, pruned)
			return nil
		},
	}

	addRefYearFlag(cmd, &refYear)
	cmd.Flags().BoolVar(&prune, "prune", false, "Delete catalog rows for files no longer on disk")
	return cmd
}
