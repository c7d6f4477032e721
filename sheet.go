// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sdrefund

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MaxSheetNameLength is the length limit of a sheet name, in characters.
const MaxSheetNameLength = 31

// Coord is a 1-based (column, row) cell coordinate.
type Coord struct{ Col, Row int }

// ParseCoord parses an "A1" style cell name.
func ParseCoord(axis string) (Coord, error) {
	col, row, err := excelize.CellNameToCoordinates(axis)
	if err != nil {
		return Coord{}, fmt.Errorf("%q: %w", axis, err)
	}
	return Coord{Col: col, Row: row}, nil
}

// At is the Coord of column letter col in row.
func At(col string, row int) Coord {
	n, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		panic(err)
	}
	return Coord{Col: n, Row: row}
}

func (c Coord) String() string {
	s, err := excelize.CoordinatesToCellName(c.Col, c.Row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", c.Row, c.Col)
	}
	return s
}

// Range is an inclusive rectangle of cells.
type Range struct{ From, To Coord }

func (r Range) String() string { return r.From.String() + ":" + r.To.String() }

// Contains reports whether c is inside r.
func (r Range) Contains(c Coord) bool {
	return r.From.Col <= c.Col && c.Col <= r.To.Col &&
		r.From.Row <= c.Row && c.Row <= r.To.Row
}

// Cell is a value with its style.
type Cell struct {
	Value string
	Style Style
}

// Margins in inches.
type Margins struct {
	Left, Right, Top, Bottom float64
	Header, Footer           float64
}

// PrintSetup is the page setup of a sheet.
type PrintSetup struct {
	Area        Range
	PaperSize   int
	Orientation string
	Margins     Margins
	// FitToWidth and FitToHeight are the number of pages, 0 for automatic.
	FitToWidth, FitToHeight int
	CenterHorizontally      bool
	// Header and Footer are the centered page header/footer texts.
	Header, Footer string
}

// Sheet is an in-memory formatted sheet.
//
// Cells holds only the cells that have a value or a non-default style.
type Sheet struct {
	Name       string
	Cells      map[Coord]Cell
	Merges     []Range
	ColWidths  map[int]float64
	RowHeights map[int]float64
	Print      PrintSetup
}

// NewSheet returns an empty Sheet.
func NewSheet(name string) *Sheet {
	s := &Sheet{Name: name}
	s.init()
	return s
}

func (s *Sheet) init() {
	if s.Cells == nil {
		s.Cells = make(map[Coord]Cell)
	}
	if s.ColWidths == nil {
		s.ColWidths = make(map[int]float64)
	}
	if s.RowHeights == nil {
		s.RowHeights = make(map[int]float64)
	}
}

// Cell returns the cell at the "A1" style axis, the zero Cell for an invalid axis.
func (s *Sheet) Cell(axis string) Cell {
	c, err := ParseCoord(axis)
	if err != nil {
		return Cell{}
	}
	return s.Cells[c]
}

// Value returns the value at c.
func (s *Sheet) Value(c Coord) string { return s.Cells[c].Value }

// Set the value and style at c.
func (s *Sheet) Set(c Coord, value string, st Style) {
	if value == "" && st.IsZero() {
		delete(s.Cells, c)
		return
	}
	if s.Cells == nil {
		s.Cells = make(map[Coord]Cell)
	}
	s.Cells[c] = Cell{Value: value, Style: st}
}

// SetStyle replaces the style at c, keeping its value.
func (s *Sheet) SetStyle(c Coord, st Style) { s.Set(c, s.Cells[c].Value, st) }

// SetBorder replaces only the border of the style at c.
func (s *Sheet) SetBorder(c Coord, b BorderStyle) {
	cell := s.Cells[c]
	s.Set(c, cell.Value, cell.Style.WithBorder(b))
}

// Merge the cells from-to. Merging the same range twice is a no-op.
func (s *Sheet) Merge(from, to Coord) {
	r := Range{From: from, To: to}
	if !slices.Contains(s.Merges, r) {
		s.Merges = append(s.Merges, r)
	}
}

// MergedAt returns the merged range containing c.
func (s *Sheet) MergedAt(c Coord) (Range, bool) {
	for _, r := range s.Merges {
		if r.Contains(c) {
			return r, true
		}
	}
	return Range{}, false
}

// LastRow returns the highest row having a non-empty value, 0 for an empty sheet.
func (s *Sheet) LastRow() int {
	var last int
	for c, cell := range s.Cells {
		if cell.Value != "" && c.Row > last {
			last = c.Row
		}
	}
	return last
}

// LastRowIn returns the highest row not above limit having a non-empty value in col.
func (s *Sheet) LastRowIn(col, limit int) int {
	for row := limit; row > 0; row-- {
		if s.Cells[Coord{Col: col, Row: row}].Value != "" {
			return row
		}
	}
	return 0
}

// FindRows returns the rows (ascending, up to limit) whose cell in col starts with prefix.
func (s *Sheet) FindRows(col, limit int, prefix string) []int {
	var rows []int
	for row := 1; row <= limit; row++ {
		if v := s.Cells[Coord{Col: col, Row: row}].Value; v != "" && strings.HasPrefix(v, prefix) {
			rows = append(rows, row)
		}
	}
	return rows
}

// Coords returns the coordinates of the stored cells in row-major order.
func (s *Sheet) Coords() []Coord {
	cs := make([]Coord, 0, len(s.Cells))
	for c := range s.Cells {
		cs = append(cs, c)
	}
	slices.SortFunc(cs, func(a, b Coord) int {
		if n := cmp.Compare(a.Row, b.Row); n != 0 {
			return n
		}
		return cmp.Compare(a.Col, b.Col)
	})
	return cs
}
