package models

// Result holds the artifacts produced for one uploaded workbook.
type Result struct {
	// Workbook is the processed xlsx document.
	Workbook []byte `json:"-"`
	// WorkbookName is the suggested file name, "<YYYYMMDD>.xlsx".
	WorkbookName string `json:"workbook_name"`
	// Clipboard is the tab-separated extract, nil when no row matched.
	Clipboard []byte `json:"-"`
	// ClipboardName is the suggested file name for Clipboard, empty when nil.
	ClipboardName string `json:"clipboard_name,omitempty"`
	// WorkingSheet is the name of the processed sheet.
	WorkingSheet string `json:"working_sheet"`
	// Tours is the derived tour registry, empty when it was skipped.
	Tours []TourCount `json:"tours,omitempty"`
	// Steps lists the outcome of each fallible step.
	Steps []StepResult `json:"steps,omitempty"`
}

// HasClipboard reports whether a clipboard artifact was produced.
func (r *Result) HasClipboard() bool {
	return r != nil && len(r.Clipboard) > 0
}
