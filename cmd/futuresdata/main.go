// Package main provides the futuresdata binary.
//
// futuresdata resolves futures contract requests to on-disk CSV files and
// their parse specifications, indexes the data tree into PostgreSQL and
// serves plans over HTTP.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rickgao/futures-data/internal/config"
	"github.com/rickgao/futures-data/internal/model"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	dataRoot   string
	logLevel   string
	logFormat  string
}

// requestFlags override the config request block.
type requestFlags struct {
	source model.SourceKind
	symbol model.Instrument
	month  model.DeliveryMonth
	year   int
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "futuresdata",
		Short: "Resolve futures contract data files",
		Long: `futuresdata maps a futures contract request (source, symbol, delivery
month, year) to the CSV file holding its data and the parse specification
needed to read it.

Data is laid out as:
  <root>/quik_data/<symbol>/<symbol><month><y>.csv
  <root>/daily_data/<symbol>/<symbol><month><yy>.csv`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&g.dataRoot, "root", "", "Data root (overrides data.root)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format (text, json)")

	cmd.AddCommand(
		resolveCmd(g),
		provisionCmd(g),
		listCmd(g),
		indexCmd(g),
		serveCmd(g),
		versionCmd(),
	)
	return cmd
}

// loadConfig reads the config file (or defaults), applies flag overrides
// and installs the logger.
func loadConfig(cmd *cobra.Command, g *globalFlags) (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadWithDefaults(g.configPath)
		if err != nil {
			return nil, nil, err
		}
	} else {
		cfg = config.Default()
	}

	if g.dataRoot != "" {
		cfg.Data.Root = g.dataRoot
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validate config: %w", err)
	}

	logger := newLogger(cfg.Log, cmd.ErrOrStderr())
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func addRequestFlags(cmd *cobra.Command, r *requestFlags) {
	cmd.Flags().Var(&r.source, "source", "Source kind (quik, daily)")
	cmd.Flags().Var(&r.symbol, "symbol", "Instrument code (e.g. RI, Si)")
	cmd.Flags().Var(&r.month, "month", "Delivery month code (F..Z)")
	cmd.Flags().IntVar(&r.year, "year", 0, "Four-digit contract year")
}

// dataRequest merges request flags over the config request block.
func dataRequest(cmd *cobra.Command, cfg *config.Config, r *requestFlags) (model.DataRequest, error) {
	rc := cfg.Request
	if cmd.Flags().Changed("source") {
		rc.Source = r.source
	}
	if cmd.Flags().Changed("symbol") {
		rc.Symbol = r.symbol
	}
	if cmd.Flags().Changed("month") {
		rc.Month = r.month
	}
	if cmd.Flags().Changed("year") {
		rc.Year = r.year
	}
	return rc.DataRequest()
}

func addRefYearFlag(cmd *cobra.Command, refYear *int) {
	cmd.Flags().IntVar(refYear, "ref-year", time.Now().Year(), "Reference year for decoding short years in file names")
}
