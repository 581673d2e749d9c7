package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akuvvet/buchhaltung/internal/inbox"
	"github.com/akuvvet/buchhaltung/pkg/telematik"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Process every export dropped into the inbox directory",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: TELEMATIK_OUTPUT_DIR)")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := processOptions()
	if err != nil {
		return err
	}
	dir := outDir
	if dir == "" {
		dir = cfg.Paths.OutputDir
	}
	if err := checkWatchDirs(cfg.Paths.InboxDir, dir); err != nil {
		return err
	}

	handle := func(ctx context.Context, path string) error {
		jobOpts := opts
		jobOpts.Logger = logger.With(zap.String("job_id", uuid.NewString()), zap.String("input", path))
		res, err := telematik.ProcessFile(path, jobOpts)
		if err != nil {
			return err
		}
		written, err := writeResult(res, dir)
		if err != nil {
			return err
		}
		jobOpts.Logger.Info("wrote results", zap.Strings("paths", written))
		return nil
	}

	w, err := inbox.NewWatcher(cfg.Paths.InboxDir, handle, logger)
	if err != nil {
		return fmt.Errorf("failed to watch inbox: %w", err)
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// checkWatchDirs rejects configurations where results would land back in
// the watched inbox.
func checkWatchDirs(inboxDir, outputDir string) error {
	if inboxDir == "" {
		return errors.New("TELEMATIK_INBOX_DIR is not set")
	}
	if outputDir == "" {
		return errors.New("no output directory: set --out or TELEMATIK_OUTPUT_DIR")
	}
	in, err := filepath.Abs(inboxDir)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return err
	}
	if in == out {
		return fmt.Errorf("output directory %s must differ from the inbox", out)
	}
	return nil
}
