// Copyright 2020, 2023, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/UNO-SOFT/sdrefund"
	"github.com/xuri/excelize/v2"
)

var _ = (sdrefund.Writer)((*XLSXWriter)(nil))

// ErrClosed is returned when writing to a closed XLSXWriter.
var ErrClosed = errors.New("writer is closed")

const (
	printAreaName = "_xlnm.Print_Area"
	borderColor   = "000000"
)

var borderSides = [...]string{"left", "right", "top", "bottom"}

// excelize border style indexes
var borderIndex = map[sdrefund.BorderStyle]int{
	sdrefund.BorderThin:   1,
	sdrefund.BorderMedium: 2,
	sdrefund.BorderThick:  5,
}

type XLSXWriter struct {
	w      io.Writer
	xl     *excelize.File
	styles map[sdrefund.Style]int
	sheets []string
	taken  map[string]struct{}
	mu     sync.Mutex
}

// NewWriter returns a new sdrefund.Writer.
//
// This writer collects everything in memory, and writes the workbook on Close.
func NewWriter(w io.Writer) *XLSXWriter {
	return &XLSXWriter{w: w, xl: excelize.NewFile()}
}

func (xlw *XLSXWriter) Close() error {
	if xlw == nil {
		return nil
	}
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xl, w := xlw.xl, xlw.w
	xlw.xl, xlw.w = nil, nil
	if xl == nil || w == nil {
		return nil
	}
	defer xl.Close()
	_, err := xl.WriteTo(w)
	return err
}

// WriteDocument appends the sheets of doc to the workbook.
func (xlw *XLSXWriter) WriteDocument(doc *sdrefund.Document) error {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	if xlw.xl == nil {
		return ErrClosed
	}
	for _, s := range doc.Sheets {
		if err := xlw.writeSheet(s); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}
	return nil
}

func (xlw *XLSXWriter) newSheet(name string) (string, error) {
	if xlw.taken == nil {
		xlw.taken = make(map[string]struct{})
	}
	name = sdrefund.UniqueLabel(name, xlw.taken)
	xlw.sheets = append(xlw.sheets, name)
	if len(xlw.sheets) == 1 { // first
		return name, xlw.xl.SetSheetName("Sheet1", name)
	}
	_, err := xlw.xl.NewSheet(name)
	return name, err
}

func (xlw *XLSXWriter) writeSheet(s *sdrefund.Sheet) error {
	name, err := xlw.newSheet(s.Name)
	if err != nil {
		return err
	}
	xl := xlw.xl
	for _, c := range s.Coords() {
		cell, axis := s.Cells[c], c.String()
		if cell.Value != "" {
			if err := xl.SetCellStr(name, axis, cell.Value); err != nil {
				return fmt.Errorf("%s[%s]: %w", name, axis, err)
			}
		}
		if cell.Style.IsZero() {
			continue
		}
		st, err := xlw.getStyle(cell.Style)
		if err != nil {
			return fmt.Errorf("%s[%s]: %w", name, axis, err)
		}
		if err := xl.SetCellStyle(name, axis, axis, st); err != nil {
			return fmt.Errorf("%s[%s]: %w", name, axis, err)
		}
	}
	for _, r := range s.Merges {
		if err := xl.MergeCell(name, r.From.String(), r.To.String()); err != nil {
			return fmt.Errorf("%s[%s]: %w", name, r, err)
		}
	}
	for _, col := range slices.Sorted(maps.Keys(s.ColWidths)) {
		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := xl.SetColWidth(name, colName, colName, s.ColWidths[col]); err != nil {
			return fmt.Errorf("%s[%s]: %w", name, colName, err)
		}
	}
	for _, row := range slices.Sorted(maps.Keys(s.RowHeights)) {
		if err := xl.SetRowHeight(name, row, s.RowHeights[row]); err != nil {
			return fmt.Errorf("%s[%d]: %w", name, row, err)
		}
	}
	return xlw.setPrintSetup(name, s.Print)
}

func (xlw *XLSXWriter) setPrintSetup(name string, p sdrefund.PrintSetup) error {
	xl := xlw.xl
	if p.Area != (sdrefund.Range{}) {
		if err := xl.SetDefinedName(&excelize.DefinedName{
			Name:     printAreaName,
			RefersTo: areaReference(name, p.Area),
			Scope:    name,
		}); err != nil {
			return fmt.Errorf("%s print area %s: %w", name, p.Area, err)
		}
	}

	var layout excelize.PageLayoutOptions
	if p.PaperSize != 0 {
		layout.Size = &p.PaperSize
	}
	if p.Orientation != "" {
		layout.Orientation = &p.Orientation
	}
	fit := p.FitToWidth != 0 || p.FitToHeight != 0
	if fit {
		layout.FitToWidth, layout.FitToHeight = &p.FitToWidth, &p.FitToHeight
		if err := xl.SetSheetProps(name, &excelize.SheetPropsOptions{FitToPage: &fit}); err != nil {
			return fmt.Errorf("%s fit to page: %w", name, err)
		}
	}
	if err := xl.SetPageLayout(name, &layout); err != nil {
		return fmt.Errorf("%s page layout: %w", name, err)
	}

	m := p.Margins
	if m != (sdrefund.Margins{}) || p.CenterHorizontally {
		if err := xl.SetPageMargins(name, &excelize.PageLayoutMarginsOptions{
			Left: &m.Left, Right: &m.Right, Top: &m.Top, Bottom: &m.Bottom,
			Header: &m.Header, Footer: &m.Footer,
			Horizontally: &p.CenterHorizontally,
		}); err != nil {
			return fmt.Errorf("%s margins: %w", name, err)
		}
	}

	if p.Header != "" || p.Footer != "" {
		var hf excelize.HeaderFooterOptions
		if p.Header != "" {
			hf.OddHeader = "&C" + p.Header
		}
		if p.Footer != "" {
			hf.OddFooter = "&C" + p.Footer
		}
		if err := xl.SetHeaderFooter(name, &hf); err != nil {
			return fmt.Errorf("%s header/footer: %w", name, err)
		}
	}
	return nil
}

// areaReference is the absolute reference of r on the sheet, 'Sheet 1'!$A$1:$E$36.
func areaReference(sheet string, r sdrefund.Range) string {
	abs := func(c sdrefund.Coord) string {
		col, _ := excelize.ColumnNumberToName(c.Col)
		return fmt.Sprintf("$%s$%d", col, c.Row)
	}
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + abs(r.From) + ":" + abs(r.To)
}

func (xlw *XLSXWriter) getStyle(style sdrefund.Style) (int, error) {
	if s, ok := xlw.styles[style]; ok {
		return s, nil
	}
	s, err := xlw.xl.NewStyle(toExcelize(style))
	if err != nil {
		return 0, err
	}
	if xlw.styles == nil {
		xlw.styles = make(map[sdrefund.Style]int)
	}
	xlw.styles[style] = s
	return s, nil
}

func toExcelize(style sdrefund.Style) *excelize.Style {
	var st excelize.Style
	if f := style.Font; f != (sdrefund.Font{}) {
		st.Font = &excelize.Font{Bold: f.Bold, Size: f.Size, Color: f.Color}
	}
	if a := style.Alignment; a != (sdrefund.Alignment{}) {
		st.Alignment = &excelize.Alignment{
			Horizontal: a.Horizontal,
			Vertical:   a.Vertical,
			WrapText:   a.WrapText,
		}
	}
	if n := borderIndex[style.Border]; n != 0 {
		st.Border = make([]excelize.Border, 0, len(borderSides))
		for _, side := range borderSides {
			st.Border = append(st.Border, excelize.Border{Type: side, Color: borderColor, Style: n})
		}
	}
	if style.Fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Color: []string{style.Fill}, Pattern: 1}
	}
	return &st
}
