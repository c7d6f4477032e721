// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/UNO-SOFT/sdrefund"
)

var testRecords = []sdrefund.Record{
	{
		SequenceNumber: "1", WorkName: "Repair of pump house", Vendor: "M/s ABC Traders",
		OrderNumber: "104520", AgreementNumber: "71014/2022-23",
		StartDate: "01/04/2022", CompletionDate: "30/06/2022",
	},
	{SequenceNumber: "2", Vendor: "XYZ Enterprises", AgreementNumber: "5/2021-22"},
}

func writeDocument(t *testing.T, docs ...*sdrefund.Document) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, doc := range docs {
		require.NoError(t, w.WriteDocument(doc))
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	doc := sdrefund.BuildDocument(sdrefund.Batch{Number: 1, Records: testRecords})
	got, err := ReadDocument(bytes.NewReader(writeDocument(t, doc)))
	require.NoError(t, err)

	assert.Equal(t, doc.SheetNames(), got.SheetNames())
	require.Len(t, got.Sheets, len(doc.Sheets))
	for i, want := range doc.Sheets {
		s := got.Sheets[i]
		for c, cell := range want.Cells {
			assert.Equal(t, cell.Value, s.Value(c), "%s!%s", want.Name, c)
		}
		assert.ElementsMatch(t, want.Merges, s.Merges, want.Name)
		assert.Equal(t, "A1:E36", s.Print.Area.String(), want.Name)
		assert.Equal(t, sdrefund.PaperA4, s.Print.PaperSize)
		assert.Equal(t, "portrait", s.Print.Orientation)
		assert.Equal(t, 1, s.Print.FitToWidth)
		assert.True(t, s.Print.CenterHorizontally)
		assert.Equal(t, 0.5, s.Print.Margins.Left)
		assert.Equal(t, 40.0, s.RowHeights[32])
		assert.Equal(t, 20.0, s.RowHeights[6])
		assert.Equal(t, 30.0, s.ColWidths[1])

		assert.Equal(t, sdrefund.BorderThick, s.Cell("A1").Style.Border)
		assert.True(t, s.Cell("A1").Style.Font.Bold)
		assert.Equal(t, sdrefund.BorderThin, s.Cell("A21").Style.Border)
		assert.Equal(t, sdrefund.BorderThin, s.Cell("B21").Style.Border)
		assert.Equal(t, sdrefund.BorderNone, s.Cell("A27").Style.Border)
		assert.True(t, s.Cell("A32").Style.Alignment.WrapText)
	}

	repaired := sdrefund.RepairDocument(got)
	for i, s := range repaired.Sheets {
		for c, cell := range got.Sheets[i].Cells {
			assert.Equal(t, cell.Value, s.Value(c), "%s!%s", s.Name, c)
		}
		assert.Equal(t, sdrefund.BorderThin, s.Cell("B26").Style.Border)
	}
}

func TestWriterUniqueNames(t *testing.T) {
	doc := sdrefund.BuildDocument(sdrefund.Batch{Number: 1, Records: testRecords[:1]})
	got, err := ReadDocument(bytes.NewReader(writeDocument(t, doc, doc)))
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC 71014", "ABC 71014 (2)"}, got.SheetNames())
}

func TestWriterClosed(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.WriteDocument(&sdrefund.Document{}), ErrClosed)
	assert.NoError(t, w.Close())
}

func TestAreaReference(t *testing.T) {
	r := sdrefund.Range{From: sdrefund.At("A", 1), To: sdrefund.At("E", 36)}
	assert.Equal(t, "'ABC 104'!$A$1:$E$36", areaReference("ABC 104", r))
	assert.Equal(t, "'O''Brien 1'!$A$1:$E$36", areaReference("O'Brien 1", r))
}

func TestStyleConversion(t *testing.T) {
	st := sdrefund.Style{
		Font:      sdrefund.Font{Bold: true, Size: 12, Color: "000080"},
		Alignment: sdrefund.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    sdrefund.BorderMedium,
		Fill:      "E6E6FA",
	}
	assert.Equal(t, st, fromExcelize(toExcelize(st)))
	assert.Equal(t, sdrefund.Style{}, fromExcelize(nil))
	assert.Equal(t, "000080", rgb("FF000080"))
	assert.Equal(t, "E6E6FA", rgb("#e6e6fa"))
}

func TestReadRecords(t *testing.T) {
	xl := excelize.NewFile()
	defer xl.Close()
	const sheet = "Work Orders"
	require.NoError(t, xl.SetSheetName("Sheet1", sheet))
	for i, row := range [][]any{
		{"Work order list"},
		{},
		{"S.No", "Name of Work", "Name of Contractor", "WO No", "Agreement No.", "Amount"},
		{"1", "Pump house", "ABC Traders", "104520", "71014/2022-23", "1500"},
		{},
		{"", "School", "XYZ Company", "", "5/2021-22"},
	} {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, xl.SetSheetRow(sheet, axis, &row))
	}
	buf, err := xl.WriteToBuffer()
	require.NoError(t, err)
	data := buf.Bytes()

	_, err = ReadRecords(bytes.NewReader(data), "")
	assert.Error(t, err, "title row has no known columns")

	_, err = ReadRecords(bytes.NewReader(data), "Missing")
	assert.Error(t, err)
}

func TestReadRecordsHeaderFirst(t *testing.T) {
	xl := excelize.NewFile()
	defer xl.Close()
	for i, row := range [][]any{
		{"S.No", "Name of Work", "Name of Contractor", "WO No", "Agreement No.", "Amount"},
		{"1", "Pump house", "ABC Traders", "104520", "71014/2022-23", "1500"},
		{},
		{"", "School", "XYZ Company", "", "5/2021-22"},
	} {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, xl.SetSheetRow("Sheet1", axis, &row))
	}
	buf, err := xl.WriteToBuffer()
	require.NoError(t, err)

	recs, err := ReadRecords(bytes.NewReader(buf.Bytes()), "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []sdrefund.Record{
		{SequenceNumber: "1", WorkName: "Pump house", Vendor: "ABC Traders",
			OrderNumber: "104520", AgreementNumber: "71014/2022-23", Amounts: []string{"1500.00"}},
		{SequenceNumber: "2", WorkName: "School", Vendor: "XYZ Company", AgreementNumber: "5/2021-22"},
	}, recs)
}

func TestReadDocumentDefaultRowHeights(t *testing.T) {
	s := sdrefund.NewSheet("heights")
	s.Set(sdrefund.At("A", 1), "x", sdrefund.Style{})
	s.Set(sdrefund.At("A", 5), "y", sdrefund.Style{})
	s.RowHeights[3] = 30
	got, err := ReadDocument(bytes.NewReader(writeDocument(t, &sdrefund.Document{Sheets: []*sdrefund.Sheet{s}})))
	require.NoError(t, err)
	require.Len(t, got.Sheets, 1)
	assert.Equal(t, map[int]float64{3: 30}, got.Sheets[0].RowHeights)
}
