// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sdrefund

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBatchSize is the number of forms in one workbook.
const DefaultBatchSize = 25

// Batch is a group of consecutive records, written as one Document.
type Batch struct {
	// Number is 1-based.
	Number  int
	Records []Record
}

// Total is the sum of the records' amounts.
func (b Batch) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, rec := range b.Records {
		sum = sum.Add(rec.Total())
	}
	return sum
}

// Batches partitions records into consecutive batches of at most capacity records.
// The records are not copied.
func Batches(records []Record, capacity int) ([]Batch, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%d: %w", capacity, ErrCapacity)
	}
	batches := make([]Batch, 0, (len(records)+capacity-1)/capacity)
	for i := 0; i < len(records); i += capacity {
		j := min(i+capacity, len(records))
		batches = append(batches, Batch{Number: len(batches) + 1, Records: records[i:j:j]})
	}
	return batches, nil
}

// BatchFileName is the name of the workbook of the given batch.
func BatchFileName(batch int, year string) string {
	return fmt.Sprintf("Security_Refund_Batch_%02d_%s.xlsx", batch, year)
}

// OutputDir is the name of the directory of one run.
func OutputDir(year string, now time.Time) string {
	return "Security_Refund_Sheets_" + year + "_" + now.Format("20060102_150405")
}

// AgreementYear returns the first year between 2000 and 2030 found in the
// agreement number of the first record, or the year of now.
func AgreementYear(records []Record, now time.Time) string {
	if len(records) != 0 {
		a := records[0].AgreementNumber
		for i := 0; i+4 <= len(a); i++ {
			s := a[i : i+4]
			if !isDigits(s) {
				continue
			}
			if y, _ := strconv.Atoi(s); 2000 <= y && y <= 2030 {
				return s
			}
		}
	}
	return strconv.Itoa(now.Year())
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
