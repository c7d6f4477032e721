package sdrefund

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

var EncName = "utf-8"

func init() {
	EncName = os.Getenv("LANG")
	if i := strings.IndexByte(EncName, '.'); i >= 0 {
		EncName = strings.ToLower(EncName[i+1:])
	}
	if EncName == "" {
		EncName = "utf-8"
	}
}

func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// openDecoded opens fn ("" or "-" is stdin) decoding it from encName to UTF-8.
func openDecoded(fn, encName string) (io.ReadCloser, error) {
	var enc encoding.Encoding
	if encName != "" {
		var err error
		if enc, err = GetEncoding(encName); err != nil {
			return nil, err
		}
	}
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		var err error
		if fh, err = os.Open(fn); err != nil {
			return nil, err
		}
	}
	r := io.ReadCloser(fh)
	if enc != nil {
		r = struct {
			io.Reader
			io.Closer
		}{enc.NewDecoder().Reader(r), r}
	}
	return r, nil
}

var utf8BOM = []byte("\xef\xbb\xbf")

type csvReadCloser struct {
	*csv.Reader
	io.Closer
}

// OpenCsv opens a CSV file, guessing its separator from the first line.
func OpenCsv(fn, encName string) (csvReadCloser, error) {
	r, err := openDecoded(fn, encName)
	if err != nil {
		return csvReadCloser{}, err
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		r.Close()
		return csvReadCloser{}, err
	}
	if bytes.HasPrefix(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
		b = b[len(utf8BOM):]
	}
	sep := rune(',')
	for _, r := range string(b) {
		if r == '"' || r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		// header names have spaces and dots ("Agreement No.")
		if r == ' ' || r == '.' {
			continue
		}
		sep = r
		break
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	return csvReadCloser{cr, r}, nil
}

// ReadCsvRecords reads the Records of a CSV file having a header row.
// Blank rows are skipped.
func ReadCsvRecords(fn, encName string) ([]Record, error) {
	cr, err := OpenCsv(fn, encName)
	if err != nil {
		return nil, err
	}
	defer cr.Close()
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%q: read header: %w", fn, err)
	}
	cols := NewColumns(header)
	if !cols.Found() {
		return nil, fmt.Errorf("%q: no work order columns in %q", fn, header)
	}
	var recs []Record
	for {
		row, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return recs, fmt.Errorf("%q: %w", fn, err)
		}
		if IsBlankRow(row) {
			continue
		}
		recs = append(recs, cols.Record(len(recs)+1, row))
	}
	return recs, nil
}

// ReadText reads the whole of fn as one text blob.
func ReadText(fn, encName string) (string, error) {
	r, err := openDecoded(fn, encName)
	if err != nil {
		return "", err
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%q: %w", fn, err)
	}
	return string(b), nil
}

var csvHeader = []string{
	"S.No", "WorkOrder Name", "Vendor", "WO No", "Agreement No",
	"Start Date", "Comp Date", "Actual date of completion ACD",
}

// WriteCsvRecords writes recs as CSV, with a header ReadCsvRecords understands.
// Amounts get their own "Amount_a", "Amount_b"... columns.
func WriteCsvRecords(w io.Writer, recs []Record) error {
	var amounts int
	for _, rec := range recs {
		amounts = max(amounts, len(rec.Amounts))
	}
	header := slices.Clip(csvHeader)
	for i := range amounts {
		header = append(header, "Amount_"+string(rune('a'+i%26)))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, rec := range recs {
		row = append(row[:0],
			rec.SequenceNumber, rec.WorkName, rec.Vendor, rec.OrderNumber, rec.AgreementNumber,
			rec.StartDate, rec.CompletionDate, rec.ActualCompletionDate)
		for i := range amounts {
			var a string
			if i < len(rec.Amounts) {
				a = rec.Amounts[i]
			}
			row = append(row, a)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
