// Copyright 2021, 2026 Tamas Gulacsi. All rights reserved.

// Package pdf renders forms as an A4 PDF, one page per sheet,
// for checking a batch without a spreadsheet program.
package pdf

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/UNO-SOFT/sdrefund"
)

var _ = (sdrefund.Writer)((*PDFWriter)(nil))

// ErrClosed is returned when writing to a closed PDFWriter.
var ErrClosed = errors.New("writer is closed")

const (
	// columns A-E are printed; their widths (30, 5, 25, 25, 25) divided by 5
	gridSize = 22
	// a bit less than 25.4/72 to fit a form on one page, like fit-to-page does
	pointToMM       = 0.3
	marginMM        = 12.7
	defaultFontSize = 10
	defaultHeight   = 20
)

var gridCols = [...]int{6, 1, 5, 5, 5}

// Options of the PDF rendering.
type Options struct {
	// Landscape orientation instead of portrait.
	Landscape bool
	// FontScale multiplies every font size; 0 means 1.
	FontScale float64
}

// PDFWriter renders Documents with maroto, and writes the PDF on Close.
type PDFWriter struct {
	w     io.Writer
	m     core.Maroto
	opts  Options
	pages int
	mu    sync.Mutex
}

// NewWriter returns a new sdrefund.Writer writing PDF.
func NewWriter(w io.Writer, opts Options) *PDFWriter {
	orient := orientation.Vertical
	if opts.Landscape {
		orient = orientation.Horizontal
	}
	if opts.FontScale <= 0 {
		opts.FontScale = 1
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orient).
		WithMaxGridSize(gridSize).
		WithLeftMargin(marginMM).
		WithTopMargin(marginMM).
		WithRightMargin(marginMM).
		Build()
	return &PDFWriter{w: w, m: maroto.New(cfg), opts: opts}
}

// WriteDocument adds one page per sheet.
func (pw *PDFWriter) WriteDocument(doc *sdrefund.Document) error {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if pw.m == nil {
		return ErrClosed
	}
	for _, s := range doc.Sheets {
		p, err := pw.sheetPage(s)
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		pw.m.AddPages(p)
		pw.pages++
	}
	return nil
}

// Close generates the PDF and writes it out.
func (pw *PDFWriter) Close() error {
	if pw == nil {
		return nil
	}
	pw.mu.Lock()
	defer pw.mu.Unlock()
	m, w := pw.m, pw.w
	pw.m, pw.w = nil, nil
	if m == nil || w == nil {
		return nil
	}
	doc, err := m.Generate()
	if err != nil {
		return err
	}
	_, err = w.Write(doc.GetBytes())
	return err
}

func (pw *PDFWriter) sheetPage(s *sdrefund.Sheet) (core.Page, error) {
	lastRow := s.Print.Area.To.Row
	if lastRow == 0 {
		lastRow = s.LastRow()
	}
	rows := make([]core.Row, 0, lastRow+1)
	if h := s.Print.Header; h != "" {
		rows = append(rows, text.NewRow(6, h, props.Text{
			Size: 8 * pw.opts.FontScale, Align: align.Center,
		}))
	}
	for r := 1; r <= lastRow; r++ {
		cols, err := pw.rowCols(s, r)
		if err != nil {
			return nil, err
		}
		h, ok := s.RowHeights[r]
		if !ok || h <= 0 {
			h = defaultHeight
		}
		rows = append(rows, row.New(h*pointToMM).Add(cols...))
	}
	return page.New().Add(rows...), nil
}

// rowCols returns the columns A-E of row r; a merged range is one wider column.
func (pw *PDFWriter) rowCols(s *sdrefund.Sheet, r int) ([]core.Col, error) {
	cols := make([]core.Col, 0, len(gridCols))
	for c := 1; c <= len(gridCols); c++ {
		at := sdrefund.Coord{Col: c, Row: r}
		size, last := gridCols[c-1], c
		if mr, ok := s.MergedAt(at); ok {
			if mr.From.Col != c {
				continue
			}
			if mr.From.Row != r {
				// covered by a merge started in an earlier row
				size, last = 0, min(mr.To.Col, len(gridCols))
				for i := c; i <= last; i++ {
					size += gridCols[i-1]
				}
				cols = append(cols, col.New(size))
				c = last
				continue
			}
			last = min(mr.To.Col, len(gridCols))
			for i := c + 1; i <= last; i++ {
				size += gridCols[i-1]
			}
		}
		cell := s.Cells[at]
		cl := col.New(size)
		if cell.Value != "" {
			cl = cl.Add(text.New(cell.Value, pw.textProps(cell.Style)))
		}
		cellProps, err := cellProps(cell.Style)
		if err != nil {
			return nil, err
		}
		if cellProps != nil {
			cl = cl.WithStyle(cellProps)
		}
		cols = append(cols, cl)
		c = last
	}
	return cols, nil
}

func (pw *PDFWriter) textProps(st sdrefund.Style) props.Text {
	size := st.Font.Size
	if size <= 0 {
		size = defaultFontSize
	}
	tp := props.Text{
		Size:  size * pw.opts.FontScale,
		Style: fontstyle.Normal,
		Align: align.Left,
		Top:   1,
		Left:  1,
		Right: 1,
	}
	if st.Font.Bold {
		tp.Style = fontstyle.Bold
	}
	switch st.Alignment.Horizontal {
	case "center":
		tp.Align = align.Center
	case "right":
		tp.Align = align.Right
	}
	if c, err := parseColor(st.Font.Color); err == nil && c != nil {
		tp.Color = c
	}
	return tp
}

func cellProps(st sdrefund.Style) (*props.Cell, error) {
	if st.Border == sdrefund.BorderNone && st.Fill == "" {
		return nil, nil
	}
	var cp props.Cell
	if st.Border != sdrefund.BorderNone {
		cp.BorderType = border.Full
		cp.BorderThickness = 0.2 * float64(st.Border)
	}
	if st.Fill != "" {
		c, err := parseColor(st.Fill)
		if err != nil {
			return nil, err
		}
		cp.BackgroundColor = c
	}
	return &cp, nil
}

// parseColor parses an RGB hex color; empty is nil.
func parseColor(s string) (*props.Color, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	if len(b) != 3 {
		return nil, fmt.Errorf("color %q: not RGB", s)
	}
	return &props.Color{Red: int(b[0]), Green: int(b[1]), Blue: int(b[2])}, nil
}
