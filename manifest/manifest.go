// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package manifest writes an HTML index of the workbooks generated in one run.
//
//go:generate qtc -file=manifest.qtpl
package manifest

import (
	"cmp"
	"slices"

	"github.com/UNO-SOFT/sdrefund"
)

// FileName is the name of the index in the output directory.
const FileName = "index.html"

// Batch is one line of the index.
type Batch struct {
	Number int
	File   string
	Sheets []string
	// Total is the sum of the batch's amounts, with two decimals.
	Total string
}

// NewBatch describes the workbook written to file from batch b and its Document.
func NewBatch(file string, b sdrefund.Batch, doc *sdrefund.Document) Batch {
	return Batch{
		Number: b.Number,
		File:   file,
		Sheets: doc.SheetNames(),
		Total:  b.Total().StringFixed(2),
	}
}

// Sort orders the batches by number; batches written concurrently may finish in any order.
func Sort(batches []Batch) {
	slices.SortFunc(batches, func(a, b Batch) int { return cmp.Compare(a.Number, b.Number) })
}
