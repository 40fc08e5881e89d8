// Package xlsx adapts excelize to the importer's SheetReader port.
package xlsx

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/akazantsev/pricewatch/internal/application/importer"
	"github.com/akazantsev/pricewatch/internal/domain"
)

var _ importer.SheetReader = (*Reader)(nil)

// Reader parses .xlsx workbooks into typed sheets. Only the first worksheet
// is read.
type Reader struct{}

// NewReader builds the adapter.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the workbook from r. The filename is used only to reject
// non-.xlsx input up front.
func (Reader) Read(filename string, r io.Reader) (*importer.Sheet, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return nil, fmt.Errorf("%w: only .xlsx files are supported, got %q", domain.ErrBadRequest, filename)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse xlsx file: %v", domain.ErrBadRequest, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrBadRequest)
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}

	out := &importer.Sheet{Rows: make([][]importer.Cell, 0, len(rows))}
	for i, raw := range rows {
		cells := make([]importer.Cell, len(raw))
		for j, val := range raw {
			cells[j] = typedCell(f, name, j, i, val)
		}
		out.Rows = append(out.Rows, cells)
	}
	return out, nil
}

// typedCell classifies one raw cell value using the workbook's cell type and
// number format (dates in xlsx are numbers with a date style).
func typedCell(f *excelize.File, sheet string, col, row int, raw string) importer.Cell {
	if strings.TrimSpace(raw) == "" {
		return importer.Cell{Kind: importer.CellEmpty}
	}

	addr, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return importer.Cell{Kind: importer.CellText, Text: raw}
	}

	ct, err := f.GetCellType(sheet, addr)
	if err == nil && (ct == excelize.CellTypeSharedString || ct == excelize.CellTypeInlineString) {
		return importer.Cell{Kind: importer.CellText, Text: raw}
	}

	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		if isDateStyled(f, sheet, addr) {
			if t, err := excelize.ExcelDateToTime(n, false); err == nil {
				return importer.Cell{Kind: importer.CellDate, Date: t}
			}
		}
		return importer.Cell{Kind: importer.CellNumber, Number: n}
	}
	return importer.Cell{Kind: importer.CellText, Text: raw}
}

// isDateStyled checks whether the cell's number format renders it as a date.
func isDateStyled(f *excelize.File, sheet, addr string) bool {
	styleID, err := f.GetCellStyle(sheet, addr)
	if err != nil {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	fmtCode := style.CustomNumFmt
	code := ""
	if fmtCode != nil {
		code = *fmtCode
	} else if style.NumFmt >= 14 && style.NumFmt <= 22 {
		// builtin date/time formats
		return true
	}
	return strings.ContainsAny(code, "ymd") && !strings.Contains(code, "#")
}
