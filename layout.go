// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sdrefund

// Title is the banner of every form.
const Title = "ORDER FOR REFUND OF SECURITY DEPOSIT [RWMF 119]"

const (
	colA = 1 + iota
	colB
	colC
	colD
	colE
)

const (
	black      = "000000"
	navy       = "000080"
	lavender   = "E6E6FA"
	workLabel  = "3. Name of Work:"
	totalLabel = "Total:"
)

var (
	titleFont  = Font{Bold: true, Size: 16, Color: navy}
	headerFont = Font{Bold: true, Size: 12, Color: black}
	normalFont = Font{Size: 11, Color: black}
	smallFont  = Font{Size: 10, Color: black}
	valueFont  = Font{Bold: true, Size: 11, Color: black}

	alignCenter  = Alignment{Horizontal: "center", Vertical: "center"}
	alignLeft    = Alignment{Horizontal: "left", Vertical: "center"}
	alignTopWrap = Alignment{Horizontal: "left", Vertical: "top", WrapText: true}

	styleTitle       = Style{Font: titleFont, Alignment: alignCenter, Border: BorderThick, Fill: lavender}
	styleLabel       = Style{Font: normalFont, Alignment: alignLeft}
	styleValue       = Style{Font: valueFont, Alignment: alignLeft, Border: BorderThin}
	styleWork        = Style{Font: valueFont, Alignment: alignTopWrap}
	styleSection     = Style{Font: headerFont, Alignment: alignLeft, Border: BorderThin}
	styleTableHeader = Style{Font: headerFont, Alignment: alignCenter, Border: BorderThin, Fill: lavender}
	styleTableCell   = Style{Font: normalFont, Alignment: alignCenter, Border: BorderThin}
	styleCertHeader  = Style{Font: headerFont, Alignment: alignLeft}
	styleCert        = Style{Font: smallFont, Alignment: alignLeft}
	styleCertWrapped = Style{Font: smallFont, Alignment: alignTopWrap}
	styleSignature   = Style{Font: normalFont, Alignment: alignCenter}
)

type formField struct{ label, value string }

func formFields(rec Record) []formField {
	return []formField{
		{"1. Name of Contractor:", rec.Vendor},
		{"2. Amount of Deposit: ₹", ""},
		{workLabel, rec.WorkName},
		{"4. Agreement No.:", rec.AgreementNumber},
		{"5. Reference for granting refunds:", ""},
		{"6. Date of Commencement:", rec.StartDate},
		{"7. Stipulated date of Completion:", rec.CompletionDate},
		{"8. Actual Date of Completion:", rec.ActualCompletionDate},
		{"9. MB No.:", ""},
		{"10. Date of Payment of final bill:", ""},
		{"11. Date of Expiry of 3/6 months/DLP:", ""},
		{"12. Was work satisfactory:", "Yes"},
		{"13. Any tools outstanding against contractor:", "Nil"},
		{"14. Any recovery due from contractor after payment of final bill:", "Nil"},
		{"15. Extension of time limit sanctioned vide", ""},
		{"16. Assistant Engineer Signature's Recommending refund", ""},
		{"17. Accountant's Remarks", ""},
	}
}

var (
	depositHeaders = [4]string{"Bill Type", "MB No.", "SD Type", "Amount (₹)"}
	depositRows    = [][4]string{
		{}, {}, {}, {}, {},
		{totalLabel, "", "", "₹[Amount to be filled]"},
	}

	certification = []string{
		"Certified That:-",
		"1. The Work has been completed as per G-schedule.",
		"2. The work has been inspected by the undersigned as on and it stood satisfactory.",
		"3. No Defect found during DLP Period.",
		"4. The final time extension granted upto With/without compensation by the competent authority.",
		"5. The defects pointed out by higher authorities or other authorized authorities during inspection etc have been removed by the contractor and compliance has been refund.",
	}

	signatures = [][3]string{
		{"Divisional Accountant", "Assistant Engineer", "Executive Engineer"},
		{"", "", "PWD Electric Div.- Udaipur"},
	}
)

// layoutStep writes one block of the form starting at row,
// and returns the first row after the block.
type layoutStep func(s *Sheet, rec Record, row int) int

var formLayout = []layoutStep{
	titleBlock,
	fieldBlock,
	depositTable,
	certificationBlock,
	blankRow,
	signatureBlock,
}

// RenderForm renders the refund form of rec onto a new Sheet
// named by SheetLabel. It never fails: unknown data is left blank.
func RenderForm(rec Record) *Sheet {
	s := NewSheet(SheetLabel(rec.Vendor, rec.AgreementNumber))
	row := 1
	for _, step := range formLayout {
		row = step(s, rec, row)
	}
	EnforceLayout(s)
	return s
}

func titleBlock(s *Sheet, _ Record, row int) int {
	s.Merge(Coord{colA, row}, Coord{colE, row})
	s.Set(Coord{colA, row}, Title, styleTitle)
	return row + 1
}

func fieldBlock(s *Sheet, rec Record, row int) int {
	for _, f := range formFields(rec) {
		if f.label == workLabel {
			s.Merge(Coord{colA, row}, Coord{colE, row})
			s.Set(Coord{colA, row}, f.label+" "+f.value, styleWork)
		} else {
			s.Set(Coord{colA, row}, f.label, styleLabel)
			s.Set(Coord{colE, row}, f.value, styleValue)
		}
		row++
	}
	return row
}

func depositTable(s *Sheet, _ Record, row int) int {
	s.Set(Coord{colA, row}, "18. Details of Security Deposit", styleSection)
	row++

	writeRow := func(values [4]string, st Style) {
		s.Merge(Coord{colA, row}, Coord{colB, row})
		s.Set(Coord{colA, row}, values[0], st)
		for i, v := range values[1:] {
			s.Set(Coord{colC + i, row}, v, st)
		}
		row++
	}
	writeRow(depositHeaders, styleTableHeader)
	for _, values := range depositRows {
		writeRow(values, styleTableCell)
	}
	return row
}

func certificationBlock(s *Sheet, _ Record, row int) int {
	for i, line := range certification {
		switch {
		case i == 0:
			s.Set(Coord{colA, row}, line, styleCertHeader)
		case i == len(certification)-1:
			s.Merge(Coord{colA, row}, Coord{colE, row})
			s.Set(Coord{colA, row}, line, styleCertWrapped)
		default:
			s.Set(Coord{colA, row}, line, styleCert)
		}
		row++
	}
	return row
}

func blankRow(_ *Sheet, _ Record, row int) int { return row + 1 }

func signatureBlock(s *Sheet, _ Record, row int) int {
	for _, captions := range signatures {
		for i, caption := range captions {
			if caption != "" {
				s.Set(Coord{colA + 2*i, row}, caption, styleSignature)
			}
		}
		row++
	}
	return row
}
