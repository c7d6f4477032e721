// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sdrefund

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Record is one work order. Every field but SequenceNumber may be empty.
type Record struct {
	SequenceNumber       string
	WorkName             string
	Vendor               string
	OrderNumber          string
	AgreementNumber      string
	StartDate            string
	CompletionDate       string
	ActualCompletionDate string
	// Amounts are decimal looking strings, in order of appearance.
	Amounts []string
}

// Total is the sum of the amounts that are valid decimals.
func (r Record) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, a := range r.Amounts {
		if d, err := decimal.NewFromString(a); err == nil {
			sum = sum.Add(d)
		}
	}
	return sum
}

// NormalizeAmount formats a decimal with two fraction digits,
// and returns anything else trimmed but unchanged.
func NormalizeAmount(s string) string {
	s = strings.TrimSpace(s)
	if d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "")); err == nil {
		return d.StringFixed(2)
	}
	return s
}

type field uint8

const (
	fieldSequence field = iota
	fieldWorkName
	fieldVendor
	fieldOrder
	fieldAgreement
	fieldStart
	fieldCompletion
	fieldActualCompletion
	fieldCount
)

// headerAliases are the accepted column names, normalized by headerKey.
var headerAliases = map[string]field{
	"sno": fieldSequence, "srno": fieldSequence, "serialno": fieldSequence,
	"nameofwork": fieldWorkName, "workordername": fieldWorkName, "workname": fieldWorkName,
	"nameofcontractor": fieldVendor, "vendor": fieldVendor, "contractor": fieldVendor,
	"wono": fieldOrder, "workorderno": fieldOrder, "orderno": fieldOrder,
	"agreementno": fieldAgreement, "agreementnumber": fieldAgreement,
	"dateofcommencement": fieldStart, "startdate": fieldStart,
	"stipulateddateofcompletion": fieldCompletion, "compdate": fieldCompletion,
	"actualdateofcompletion": fieldActualCompletion, "actualdateofcompletionacd": fieldActualCompletion,
}

func headerKey(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}

// Columns maps the named columns of a tabular source to Record fields.
type Columns struct {
	idx     [fieldCount]int
	amounts []int
}

// NewColumns recognizes the record fields in the header row.
// The first occurrence of a name wins; columns named "Amount..." are amounts, in order.
func NewColumns(header []string) Columns {
	var cs Columns
	for i := range cs.idx {
		cs.idx[i] = -1
	}
	for i, h := range header {
		k := headerKey(h)
		if f, ok := headerAliases[k]; ok {
			if cs.idx[f] < 0 {
				cs.idx[f] = i
			}
			continue
		}
		if strings.HasPrefix(k, "amount") {
			cs.amounts = append(cs.amounts, i)
		}
	}
	return cs
}

// Found reports whether any work order column has been recognized.
func (cs Columns) Found() bool {
	for _, i := range cs.idx {
		if i >= 0 {
			return true
		}
	}
	return len(cs.amounts) != 0
}

func (cs Columns) get(row []string, f field) string {
	if i := cs.idx[f]; i >= 0 && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// Record builds the n-th (1-based) Record from row.
// Missing cells are empty; a missing sequence number becomes n.
func (cs Columns) Record(n int, row []string) Record {
	rec := Record{
		SequenceNumber:       cs.get(row, fieldSequence),
		WorkName:             cs.get(row, fieldWorkName),
		Vendor:               cs.get(row, fieldVendor),
		OrderNumber:          cs.get(row, fieldOrder),
		AgreementNumber:      cs.get(row, fieldAgreement),
		StartDate:            cs.get(row, fieldStart),
		CompletionDate:       cs.get(row, fieldCompletion),
		ActualCompletionDate: cs.get(row, fieldActualCompletion),
	}
	if rec.SequenceNumber == "" {
		rec.SequenceNumber = strconv.Itoa(n)
	}
	for _, i := range cs.amounts {
		if i < len(row) {
			if a := NormalizeAmount(row[i]); a != "" {
				rec.Amounts = append(rec.Amounts, a)
			}
		}
	}
	return rec
}

// IsBlankRow reports whether every cell of row is empty.
func IsBlankRow(row []string) bool {
	for _, s := range row {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
