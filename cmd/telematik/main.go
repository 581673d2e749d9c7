// Package main provides the CLI entry point for the telematik processor.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akuvvet/buchhaltung/internal/config"
	"github.com/akuvvet/buchhaltung/internal/logging"
	"github.com/akuvvet/buchhaltung/pkg/telematik"
	"github.com/akuvvet/buchhaltung/pkg/telematik/layout"
)

var (
	layoutFile string

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "telematik",
		Short: "Annotate telematik tour exports",
		Long: `telematik turns the daily ag-grid export into the dispatch workbook:
tour registry, menu quantities, collated row notes, auto-filter and the
clipboard extract of flagged rows.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&layoutFile, "layout", "", "YAML layout override (default: TELEMATIK_LAYOUT_FILE)")

	rootCmd.AddCommand(newProcessCmd(), newServeCmd(), newWatchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(); err != nil {
		return err
	}
	if layoutFile == "" {
		layoutFile = cfg.Paths.LayoutFile
	}
	logger, err = logging.New(cfg.Log.Level, cfg.Log.Development)
	return err
}

// processOptions returns the processor options for the configured layout.
func processOptions() (telematik.Options, error) {
	l, err := layout.LoadFile(layoutFile)
	if err != nil {
		return telematik.Options{}, err
	}
	return telematik.Options{
		Layout: l,
		Now:    time.Now,
		Logger: logger,
	}, nil
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
