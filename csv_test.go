package sdrefund

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestCsvRoundTrip(t *testing.T) {
	recs, _ := ParseText(workOrderBlob)
	var buf bytes.Buffer
	require.NoError(t, WriteCsvRecords(&buf, recs))

	fn := filepath.Join(t.TempDir(), "works.csv")
	require.NoError(t, os.WriteFile(fn, buf.Bytes(), 0o644))
	got, err := ReadCsvRecords(fn, "utf-8")
	require.NoError(t, err)
	if d := cmp.Diff(recs, got); d != "" {
		t.Error(d)
	}
}

func TestReadCsvRecords(t *testing.T) {
	const data = "\xef\xbb\xbfS.No;Name of Work;Name of Contractor;Agreement No.;Amount;Amount (2)\n" +
		"1;Pump house;ABC Traders;104/2020-21;1500;\n" +
		";;;;;\n" +
		";School;XYZ Company;5/2021-22; 2,000.5 ;10\n"
	fn := filepath.Join(t.TempDir(), "works.csv")
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))

	recs, err := ReadCsvRecords(fn, "")
	require.NoError(t, err)
	want := []Record{
		{SequenceNumber: "1", WorkName: "Pump house", Vendor: "ABC Traders",
			AgreementNumber: "104/2020-21", Amounts: []string{"1500.00"}},
		{SequenceNumber: "2", WorkName: "School", Vendor: "XYZ Company",
			AgreementNumber: "5/2021-22", Amounts: []string{"2000.50", "10.00"}},
	}
	if d := cmp.Diff(want, recs); d != "" {
		t.Error(d)
	}
}

func TestReadCsvRecordsCharset(t *testing.T) {
	data, err := charmap.ISO8859_2.NewEncoder().String("S.No,Vendor\n1,Árvíztűrő Kft\n")
	require.NoError(t, err)
	fn := filepath.Join(t.TempDir(), "latin2.csv")
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))

	recs, err := ReadCsvRecords(fn, "iso-8859-2")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Árvíztűrő Kft", recs[0].Vendor)
}

func TestReadCsvRecordsUnknownHeader(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(fn, []byte("foo,bar\n1,2\n"), 0o644))
	_, err := ReadCsvRecords(fn, "")
	assert.Error(t, err)
}

func TestNewColumns(t *testing.T) {
	cs := NewColumns([]string{"Sr. No.", "WO No", "Work Order No", "Actual Date of Completion", "Amount_a", "Remarks"})
	assert.True(t, cs.Found())
	rec := cs.Record(5, []string{"", " 104520 ", "999", "15/07/2022", "12.3"})
	assert.Equal(t, Record{
		SequenceNumber: "5", OrderNumber: "104520", ActualCompletionDate: "15/07/2022",
		Amounts: []string{"12.30"},
	}, rec)

	assert.False(t, NewColumns([]string{"a", "b"}).Found())
	assert.True(t, IsBlankRow([]string{"", "  ", "\t"}))
	assert.False(t, IsBlankRow([]string{"", "x"}))
}
