// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/UNO-SOFT/sdrefund"
	"github.com/xuri/excelize/v2"
)

const (
	// styles are looked up in this many columns (A-H) ...
	scanCols = 8
	// ... and at least this many rows.
	scanRows = 50
)

// ReadDocument loads a workbook into memory, so it can be repaired.
//
// Only what the forms use is loaded: values, merged cells,
// styles, column widths of A-H, row heights and the page setup.
func ReadDocument(r io.Reader) (*sdrefund.Document, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer xl.Close()

	areas := printAreas(xl)
	var doc sdrefund.Document
	for _, name := range xl.GetSheetList() {
		s, err := readSheet(xl, name)
		if err != nil {
			return &doc, fmt.Errorf("%s: %w", name, err)
		}
		if a, ok := areas[strings.ToLower(name)]; ok {
			s.Print.Area = a
		}
		doc.Sheets = append(doc.Sheets, s)
	}
	return &doc, nil
}

func readSheet(xl *excelize.File, name string) (*sdrefund.Sheet, error) {
	s := sdrefund.NewSheet(name)
	rows, err := xl.GetRows(name)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		for j, v := range row {
			if v != "" {
				s.Set(sdrefund.Coord{Col: j + 1, Row: i + 1}, v, sdrefund.Style{})
			}
		}
	}

	defaultHeight, err := defaultRowHeight(xl, name)
	if err != nil {
		return nil, err
	}
	lastRow := max(len(rows), scanRows)
	for row := 1; row <= lastRow; row++ {
		for col := 1; col <= scanCols; col++ {
			c := sdrefund.Coord{Col: col, Row: row}
			axis := c.String()
			id, err := xl.GetCellStyle(name, axis)
			if err != nil {
				return nil, fmt.Errorf("%s[%s]: %w", name, axis, err)
			}
			if id == 0 {
				continue
			}
			xs, err := xl.GetStyle(id)
			if err != nil {
				return nil, fmt.Errorf("%s[%s] style %d: %w", name, axis, id, err)
			}
			s.SetStyle(c, fromExcelize(xs))
		}
		h, err := xl.GetRowHeight(name, row)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, row, err)
		}
		if h != defaultHeight {
			s.RowHeights[row] = h
		}
	}

	for col := 1; col <= scanCols; col++ {
		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, err
		}
		w, err := xl.GetColWidth(name, colName)
		if err != nil {
			return nil, fmt.Errorf("%s[%s]: %w", name, colName, err)
		}
		s.ColWidths[col] = w
	}

	mcs, err := xl.GetMergeCells(name)
	if err != nil {
		return nil, err
	}
	for _, mc := range mcs {
		from, err := sdrefund.ParseCoord(mc.GetStartAxis())
		if err != nil {
			return nil, err
		}
		to, err := sdrefund.ParseCoord(mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		s.Merge(from, to)
	}

	if err := readPageSetup(xl, name, &s.Print); err != nil {
		return nil, err
	}
	return s, nil
}

// excelize's height of rows without an explicit height, when the sheet has no default
const excelDefaultRowHeight = 15

func defaultRowHeight(xl *excelize.File, name string) (float64, error) {
	props, err := xl.GetSheetProps(name)
	if err != nil {
		return 0, fmt.Errorf("%s sheet props: %w", name, err)
	}
	if props.DefaultRowHeight != nil && *props.DefaultRowHeight > 0 {
		return *props.DefaultRowHeight, nil
	}
	return excelDefaultRowHeight, nil
}

func readPageSetup(xl *excelize.File, name string, p *sdrefund.PrintSetup) error {
	layout, err := xl.GetPageLayout(name)
	if err != nil {
		return fmt.Errorf("%s page layout: %w", name, err)
	}
	if layout.Size != nil {
		p.PaperSize = *layout.Size
	}
	if layout.Orientation != nil {
		p.Orientation = *layout.Orientation
	}
	if layout.FitToWidth != nil {
		p.FitToWidth = *layout.FitToWidth
	}
	if layout.FitToHeight != nil {
		p.FitToHeight = *layout.FitToHeight
	}

	m, err := xl.GetPageMargins(name)
	if err != nil {
		return fmt.Errorf("%s margins: %w", name, err)
	}
	for _, x := range []struct {
		dst *float64
		src *float64
	}{
		{&p.Margins.Left, m.Left}, {&p.Margins.Right, m.Right},
		{&p.Margins.Top, m.Top}, {&p.Margins.Bottom, m.Bottom},
		{&p.Margins.Header, m.Header}, {&p.Margins.Footer, m.Footer},
	} {
		if x.src != nil {
			*x.dst = *x.src
		}
	}
	if m.Horizontally != nil {
		p.CenterHorizontally = *m.Horizontally
	}
	return nil
}

// printAreas returns the sheet scoped print areas, keyed by the lower case sheet name.
func printAreas(xl *excelize.File) map[string]sdrefund.Range {
	areas := make(map[string]sdrefund.Range)
	for _, dn := range xl.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		i := strings.LastIndexByte(dn.RefersTo, '!')
		if i < 0 {
			continue
		}
		sheet, ref := dn.RefersTo[:i], dn.RefersTo[i+1:]
		sheet = strings.ReplaceAll(strings.Trim(sheet, "'"), "''", "'")
		if dn.Scope != "" && !strings.EqualFold(dn.Scope, "Workbook") {
			sheet = dn.Scope
		}
		// multiple areas are separated by commas, the first one is kept
		ref, _, _ = strings.Cut(ref, ",")
		first, last, ok := strings.Cut(strings.ReplaceAll(ref, "$", ""), ":")
		if !ok {
			continue
		}
		from, err := sdrefund.ParseCoord(first)
		if err != nil {
			continue
		}
		to, err := sdrefund.ParseCoord(last)
		if err != nil {
			continue
		}
		areas[strings.ToLower(sheet)] = sdrefund.Range{From: from, To: to}
	}
	return areas
}

func fromExcelize(xs *excelize.Style) sdrefund.Style {
	var st sdrefund.Style
	if xs == nil {
		return st
	}
	if f := xs.Font; f != nil {
		st.Font = sdrefund.Font{Bold: f.Bold, Size: f.Size, Color: rgb(f.Color)}
	}
	if a := xs.Alignment; a != nil {
		st.Alignment = sdrefund.Alignment{
			Horizontal: a.Horizontal,
			Vertical:   a.Vertical,
			WrapText:   a.WrapText,
		}
	}
	for _, b := range xs.Border {
		var bs sdrefund.BorderStyle
		switch b.Style {
		case 0:
		case 2:
			bs = sdrefund.BorderMedium
		case 5:
			bs = sdrefund.BorderThick
		default:
			bs = sdrefund.BorderThin
		}
		st.Border = max(st.Border, bs)
	}
	if xs.Fill.Pattern == 1 && len(xs.Fill.Color) != 0 {
		st.Fill = rgb(xs.Fill.Color[0])
	}
	return st
}

// rgb drops the alpha channel of an ARGB color.
func rgb(color string) string {
	color = strings.ToUpper(strings.TrimPrefix(color, "#"))
	if len(color) == 8 {
		return color[2:]
	}
	return color
}

// ReadRecords reads the work orders of the named sheet (the first sheet if empty),
// whose first non-blank row is the header.
func ReadRecords(r io.Reader, sheet string) ([]sdrefund.Record, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer xl.Close()
	if sheet == "" {
		sheet = xl.GetSheetName(0)
	} else if idx, err := xl.GetSheetIndex(sheet); err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	} else if idx < 0 {
		return nil, fmt.Errorf("sheet %q not found (available: %q)", sheet, xl.GetSheetList())
	}
	rows, err := xl.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sheet, err)
	}

	var cols *sdrefund.Columns
	var recs []sdrefund.Record
	for _, row := range rows {
		if sdrefund.IsBlankRow(row) {
			continue
		}
		if cols == nil {
			cs := sdrefund.NewColumns(row)
			if !cs.Found() {
				return nil, fmt.Errorf("%s: no work order columns in %q", sheet, row)
			}
			cols = &cs
			continue
		}
		recs = append(recs, cols.Record(len(recs)+1, row))
	}
	return recs, nil
}
