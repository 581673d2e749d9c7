package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akuvvet/buchhaltung/internal/config"
	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
)

func TestWriteResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res := &models.Result{
		Workbook:      []byte("xlsx"),
		WorkbookName:  "20261017.xlsx",
		Clipboard:     []byte("D009\t1"),
		ClipboardName: "20261017-clipboard.txt",
	}

	written, err := writeResult(res, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "20261017.xlsx"),
		filepath.Join(dir, "20261017-clipboard.txt"),
	}, written)

	data, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Equal(t, "D009\t1", string(data))

	res.Clipboard = nil
	written, err = writeResult(res, dir)
	require.NoError(t, err)
	assert.Len(t, written, 1)
}

func TestCheckWatchDirs(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		inbox   string
		output  string
		wantErr bool
	}{
		{"distinct", filepath.Join(dir, "in"), filepath.Join(dir, "out"), false},
		{"same", filepath.Join(dir, "in"), filepath.Join(dir, "in", "."), true},
		{"no inbox", "", filepath.Join(dir, "out"), true},
		{"no output", filepath.Join(dir, "in"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkWatchDirs(tt.inbox, tt.output)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveInput(t *testing.T) {
	dir := t.TempDir()
	export := filepath.Join(dir, "export_20261017.xlsx")
	require.NoError(t, os.WriteFile(export, []byte("x"), 0o644))
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	cfg = &config.Config{}
	t.Cleanup(func() { cfg = nil })

	got, err := resolveInput([]string{"given.xlsx"}, now)
	require.NoError(t, err)
	assert.Equal(t, "given.xlsx", got)

	_, err = resolveInput(nil, now)
	assert.Error(t, err)

	cfg.Paths.InboxDir = dir
	got, err = resolveInput(nil, now)
	require.NoError(t, err)
	assert.Equal(t, export, got)
}
