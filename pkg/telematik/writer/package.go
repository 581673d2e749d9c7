package writer

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
	"github.com/xuri/excelize/v2"
)

// ErrFilterNotDeclared indicates a worksheet part without an autoFilter element.
var ErrFilterNotDeclared = errors.New("worksheet has no autoFilter element")

var autoFilterElement = regexp.MustCompile(`(?s)<autoFilter\b[^>]*?(?:/>|>.*?</autoFilter>)`)

// PatchFilters rewrites the autoFilter element of each named worksheet in
// an xlsx package so it carries the value list of its filter. The sheets
// must already declare an auto-filter. All other parts are copied unchanged.
func PatchFilters(data []byte, filters map[string]*models.AutoFilter) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open package: %w", err)
	}
	paths, err := worksheetPaths(r)
	if err != nil {
		return nil, err
	}

	patched := make(map[string][]byte, len(filters))
	for sheet, af := range filters {
		if af == nil || len(af.Values) == 0 {
			continue
		}
		path, ok := paths[sheet]
		if !ok {
			return nil, fmt.Errorf("worksheet part of %q not found", sheet)
		}
		part, err := readZipFile(r, path)
		if err != nil {
			return nil, err
		}
		element, err := filterElement(af)
		if err != nil {
			return nil, err
		}
		loc := autoFilterElement.FindIndex(part)
		if loc == nil {
			return nil, fmt.Errorf("%w: %q", ErrFilterNotDeclared, sheet)
		}
		out := make([]byte, 0, len(part)+len(element))
		out = append(out, part[:loc[0]]...)
		out = append(out, element...)
		out = append(out, part[loc[1]:]...)
		patched[path] = out
	}
	if len(patched) == 0 {
		return data, nil
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, zf := range r.File {
		content, ok := patched[zf.Name]
		if !ok {
			if err := zw.Copy(zf); err != nil {
				return nil, fmt.Errorf("failed to copy %s: %w", zf.Name, err)
			}
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     zf.Name,
			Method:   zip.Deflate,
			Modified: zf.Modified,
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(content); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// filterElement renders an autoFilter element whose filter column lists
// the allowed values.
func filterElement(af *models.AutoFilter) ([]byte, error) {
	first, _, ok := strings.Cut(af.Range, ":")
	if !ok {
		return nil, fmt.Errorf("invalid filter range %q", af.Range)
	}
	firstCol, _, err := excelize.CellNameToCoordinates(first)
	if err != nil {
		return nil, err
	}
	colID := af.Column - firstCol
	if colID < 0 {
		return nil, fmt.Errorf("filter column %d outside range %q", af.Column, af.Range)
	}

	var b bytes.Buffer
	b.WriteString(`<autoFilter ref="`)
	if err := xml.EscapeText(&b, []byte(af.Range)); err != nil {
		return nil, err
	}
	fmt.Fprintf(&b, `"><filterColumn colId="%d"><filters>`, colID)
	for _, v := range af.Values {
		b.WriteString(`<filter val="`)
		if err := xml.EscapeText(&b, []byte(v)); err != nil {
			return nil, err
		}
		b.WriteString(`"/>`)
	}
	b.WriteString(`</filters></filterColumn></autoFilter>`)
	return b.Bytes(), nil
}

// worksheetPaths maps sheet names to their part names in the package.
func worksheetPaths(r *zip.Reader) (map[string]string, error) {
	workbook, err := readZipFile(r, "xl/workbook.xml")
	if err != nil {
		return nil, err
	}
	rels, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil, err
	}
	return parseWorkbookRels(rels, parseWorkbookSheets(workbook)), nil
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("package part %s not found", name)
}

// resolveRelativePath resolves a relationship target against the xl/ folder.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return clean
	}
	return baseDir + "/" + target
}

func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string) // rId -> sheet name
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var name, rID string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					name = attr.Value
				case "id":
					rID = attr.Value
				}
			}
			if name != "" && rID != "" {
				result[rID] = name
			}
		}
	}

	return result
}

func parseWorkbookRels(data []byte, sheetsInfo map[string]string) map[string]string {
	result := make(map[string]string) // sheet name -> part name
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if sheetName, ok := sheetsInfo[rID]; ok && strings.Contains(strings.ToLower(target), "worksheet") {
				result[sheetName] = resolveRelativePath(target, "xl")
			}
		}
	}

	return result
}
