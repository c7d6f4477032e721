// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sdrefund

const (
	depositFirstRow = 20
	depositLastRow  = 26
	fieldFirstRow   = 2
	fieldLastRow    = 18

	certificationHeader = "Certified That:-"
	certificationRows   = 12
	wrappedLinePrefix   = "5."

	defaultRowHeight = 20
	wrappedRowHeight = 26
	tallRow          = 32
	tallRowHeight    = 40
	rowHeightMargin  = 5
	lastRowScanLimit = 50

	// PaperA4 is the page size index of A4 paper.
	PaperA4 = 9
)

var columnWidths = map[int]float64{
	1: 30, 2: 5, 3: 25, 4: 25, 5: 25, 6: 15, 7: 15, 8: 15,
}

// DefaultPrintSetup is the page setup of the form, without the print area.
var DefaultPrintSetup = PrintSetup{
	PaperSize:   PaperA4,
	Orientation: "portrait",
	Margins: Margins{
		Left: 0.5, Right: 0.5, Top: 0.5, Bottom: 0.5,
		Header: 0.2, Footer: 0.2,
	},
	FitToWidth:         1,
	FitToHeight:        1,
	CenterHorizontally: true,
	Header:             "Security Deposit Refund Form",
	Footer:             "Page &P of &N",
}

// EnforceLayout (re)applies the layout rules of the form that must hold
// whatever happened to the sheet before: borders, column widths,
// row heights and the page setup. Cell values are not changed.
//
// Applying it twice is the same as applying it once.
func EnforceLayout(s *Sheet) {
	s.init()
	enforceBorders(s)
	enforceColumnWidths(s)
	enforceRowHeights(s)
	enforcePrintSetup(s)
}

func enforceBorders(s *Sheet) {
	for row := fieldFirstRow; row <= fieldLastRow; row++ {
		s.SetBorder(Coord{colA, row}, BorderNone)
	}
	if rows := s.FindRows(colA, lastRowScanLimit, certificationHeader); len(rows) != 0 {
		for row := rows[0]; row < rows[0]+certificationRows; row++ {
			for col := colA; col <= colE; col++ {
				s.SetBorder(Coord{col, row}, BorderNone)
			}
		}
	}
	// The deposit table's first two columns are merged, the right edge
	// only shows when B has its own border.
	for row := depositFirstRow; row <= depositLastRow; row++ {
		s.SetBorder(Coord{colA, row}, BorderThin)
		s.SetBorder(Coord{colB, row}, BorderThin)
	}
}

func enforceColumnWidths(s *Sheet) {
	for col, w := range columnWidths {
		s.ColWidths[col] = w
	}
}

func enforceRowHeights(s *Sheet) {
	limit := s.LastRow() + rowHeightMargin
	for row := 1; row <= limit; row++ {
		s.RowHeights[row] = defaultRowHeight
	}
	if rows := s.FindRows(colA, limit, wrappedLinePrefix); len(rows) != 0 {
		s.RowHeights[rows[len(rows)-1]] = wrappedRowHeight
	}
	s.RowHeights[tallRow] = tallRowHeight
}

func enforcePrintSetup(s *Sheet) {
	p := DefaultPrintSetup
	p.Area = Range{
		From: Coord{colA, 1},
		To:   Coord{colE, s.LastRowIn(colA, lastRowScanLimit) + 2},
	}
	s.Print = p
}
