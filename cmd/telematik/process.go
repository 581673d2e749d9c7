package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/akuvvet/buchhaltung/internal/inbox"
	"github.com/akuvvet/buchhaltung/pkg/telematik"
	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
)

var (
	outDir         string
	printClipboard bool
)

func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [input.xlsx]",
		Short: "Process one export",
		Long: `Process one export and write <YYYYMMDD>.xlsx and, when rows are flagged,
<YYYYMMDD>-clipboard.txt. Without an input the newest export of today in
TELEMATIK_INBOX_DIR is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runProcess,
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: TELEMATIK_OUTPUT_DIR or the input directory)")
	cmd.Flags().BoolVar(&printClipboard, "print-clipboard", false, "Print the clipboard extract to stdout instead of writing it")
	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	opts, err := processOptions()
	if err != nil {
		return err
	}

	inputPath, err := resolveInput(args, opts.Now())
	if err != nil {
		return err
	}
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	res, err := telematik.ProcessFile(inputPath, opts)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	dir := outDir
	if dir == "" {
		dir = cfg.Paths.OutputDir
	}
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}

	if printClipboard {
		if res.HasClipboard() {
			fmt.Fprintln(cmd.OutOrStdout(), string(res.Clipboard))
		}
		res.Clipboard = nil
	}
	written, err := writeResult(res, dir)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintln(cmd.ErrOrStderr(), path)
	}
	for _, step := range res.Steps {
		if step.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", step.Step, step.Reason)
		}
	}
	return nil
}

func resolveInput(args []string, now time.Time) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Paths.InboxDir == "" {
		return "", errors.New("no input given and TELEMATIK_INBOX_DIR is not set")
	}
	return inbox.Suggest(cfg.Paths.InboxDir, now)
}

// writeResult writes the workbook and, when present, the clipboard extract
// into dir and returns the written paths.
func writeResult(res *models.Result, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, res.WorkbookName)
	if err := os.WriteFile(path, res.Workbook, 0644); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	written := []string{path}

	if res.HasClipboard() {
		path = filepath.Join(dir, res.ClipboardName)
		if err := os.WriteFile(path, res.Clipboard, 0644); err != nil {
			return written, fmt.Errorf("failed to write clipboard extract: %w", err)
		}
		written = append(written, path)
	}
	return written, nil
}
