package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rickgao/futures-data/internal/fsys"
	"github.com/rickgao/futures-data/internal/layout"
	"github.com/rickgao/futures-data/internal/parsespec"
	"github.com/rickgao/futures-data/internal/resolver"
)

func resolveCmd(g *globalFlags) *cobra.Command {
	var (
		r       requestFlags
		columns string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the read plan for a contract",
		Example: `  futuresdata resolve --source quik --symbol RI --month H --year 2024
  futuresdata resolve -c futuresdata.yaml --columns Date,Time,Close`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			req, err := dataRequest(cmd, cfg, &r)
			if err != nil {
				return err
			}

			fs := fsys.OS{}
			res := resolver.New(req,
				parsespec.NewDefaultRegistry(),
				layout.NewDirs(fs, cfg.Data.Root),
				layout.NewNamer(),
				fs,
				resolver.WithLogger(logger),
			)
			plan, err := res.Resolve()
			if err != nil {
				return err
			}

			out := struct {
				Request any      `json:"request"`
				Plan    any      `json:"plan"`
				Columns []string `json:"usecols,omitempty"`
			}{Request: req, Plan: plan}
			if columns != "" {
				cols, err := plan.SelectColumns(strings.Split(columns, ","))
				if err != nil {
					return err
				}
				out.Columns = cols
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("encode plan: %w", err)
			}
			return nil
		},
	}

	addRequestFlags(cmd, &r)
	cmd.Flags().StringVar(&columns, "columns", "", "Comma-separated column subset to check against the plan")
	return cmd
}

func provisionCmd(g *globalFlags) *cobra.Command {
	var r requestFlags

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the data directory for a contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			req, err := dataRequest(cmd, cfg, &r)
			if err != nil {
				return err
			}

			fs := fsys.OS{}
			dir, err := layout.Provision(layout.NewDirs(fs, cfg.Data.Root), fs, req)
			if err != nil {
				return err
			}
			name, err := layout.NewNamer().FileName(req)
			if err != nil {
				return err
			}

			logger.Debug("directory provisioned", "request", req, "dir", dir)
			fmt.Fprintln(cmd.OutOrStdout(), fs.BuildPath(dir, name))
			return nil
		},
	}

	addRequestFlags(cmd, &r)
	return cmd
}
