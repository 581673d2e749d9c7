package telematik

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
	"github.com/akuvvet/buchhaltung/pkg/telematik/parser"
	"github.com/akuvvet/buchhaltung/pkg/telematik/report"
	"github.com/akuvvet/buchhaltung/pkg/telematik/writer"
)

// StepFilterValues names the package patch that writes the filter's value list.
const StepFilterValues = "filter_values"

// File name layouts of the produced artifacts.
const (
	fileDateLayout    = "20060102"
	clipboardSuffix   = "-clipboard.txt"
	workbookExtension = ".xlsx"
)

// ProcessFile reads path and processes it.
func ProcessFile(path string, opts Options) (*models.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Process(data, opts)
}

// Process builds the tour registry, annotates the working sheet and
// extracts the clipboard text of an xlsx export. Steps that depend on the
// content degrade to no-ops and are reported in Result.Steps; only an
// unreadable workbook or a failed write is returned as an error.
func Process(data []byte, opts Options) (*models.Result, error) {
	log := opts.logger()
	l := opts.layout()
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	now := opts.now()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	sheet := workingSheet(f)
	if sheet == "" {
		return nil, ErrNoWorkingSheet
	}
	grid, err := parser.ReadGrid(f, sheet)
	if err != nil {
		return nil, NewStepError(sheet, "read", err)
	}
	log = log.With(zap.String("sheet", sheet))

	result := &models.Result{WorkingSheet: sheet}
	w := writer.New(f)

	src, err := sourceGrid(f, l.Tours.SourceSheet)
	if err != nil {
		return nil, NewStepError(l.Tours.SourceSheet, "read", err)
	}
	registry, tours, err := report.TourRegistry(src, l.Tours, now)
	if registry != nil {
		// Without a source the edit only ensures the registry sheet exists.
		if err := w.Apply(registry); err != nil {
			return nil, NewStepError(registry.Sheet, "write", err)
		}
	}
	if err != nil {
		log.Warn("skipping tour registry", zap.String("step", report.StepTourRegistry), zap.Error(err))
		result.Steps = append(result.Steps, models.Skipped(report.StepTourRegistry, err))
	} else {
		result.Tours = tours
		result.Steps = append(result.Steps, models.Applied(report.StepTourRegistry))
	}

	edit, steps := report.Annotate(grid, l)
	edit.Merge(report.Comments(grid, l.Comments))
	edit.Merge(report.Quantities(grid, l.Quantity))
	if report.FormulaBoundExceeded(grid, l.Summary) {
		log.Warn("sheet extends beyond the distinct-count formula range",
			zap.Int("max_row", grid.MaxRow()), zap.Int("formula_row_bound", l.Summary.FormulaRowBound))
	}

	if err := w.Apply(edit); err != nil {
		return nil, NewStepError(sheet, "write", err)
	}
	filter := edit.AutoFilter
	if filter != nil {
		if err := w.AutoFilter(sheet, filter); err != nil {
			steps = replaceStep(steps, models.Skipped(report.StepAutoFilter, err))
			filter = nil
		}
	}
	for _, step := range steps {
		if step.Skipped {
			log.Warn("skipping step", zap.String("step", step.Step), zap.String("reason", step.Reason))
		}
	}
	result.Steps = append(result.Steps, steps...)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, NewStepError(sheet, "serialize", err)
	}
	workbook := buf.Bytes()
	if filter != nil {
		patched, err := writer.PatchFilters(workbook, map[string]*models.AutoFilter{sheet: filter})
		if err != nil {
			log.Warn("skipping filter values", zap.String("step", StepFilterValues), zap.Error(err))
			result.Steps = append(result.Steps, models.Skipped(StepFilterValues, err))
		} else {
			workbook = patched
			result.Steps = append(result.Steps, models.Applied(StepFilterValues))
		}
	}

	date := now.Format(fileDateLayout)
	result.Workbook = workbook
	result.WorkbookName = date + workbookExtension
	if clip := report.Clipboard(grid.Apply(edit), l.Clipboard); clip != "" {
		result.Clipboard = []byte(clip)
		result.ClipboardName = date + clipboardSuffix
	}

	log.Info("processed workbook",
		zap.String("workbook", result.WorkbookName),
		zap.Int("rows", grid.MaxRow()),
		zap.Int("tours", len(result.Tours)),
		zap.Bool("clipboard", result.HasClipboard()))
	return result, nil
}

// workingSheet returns the active sheet, falling back to the first one.
func workingSheet(f *excelize.File) string {
	if name := f.GetSheetName(f.GetActiveSheetIndex()); name != "" {
		return name
	}
	if sheets := f.GetSheetList(); len(sheets) > 0 {
		return sheets[0]
	}
	return ""
}

// sourceGrid reads the tour source sheet, nil when the workbook lacks it.
func sourceGrid(f *excelize.File, name string) (*models.Grid, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx == -1 {
		return nil, nil
	}
	return parser.ReadGrid(f, name)
}

func replaceStep(steps []models.StepResult, res models.StepResult) []models.StepResult {
	for i := range steps {
		if steps[i].Step == res.Step {
			steps[i] = res
			return steps
		}
	}
	return append(steps, res)
}
