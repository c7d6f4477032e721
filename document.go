// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sdrefund

import (
	"github.com/mohae/deepcopy"
)

// Document is the workbook of one batch: one form sheet per record.
type Document struct {
	BatchNumber int
	Sheets      []*Sheet
}

// BuildDocument renders every record of the batch, in order.
//
// Sheet names colliding with an earlier sheet of the same Document
// get a " (n)" suffix.
func BuildDocument(b Batch) *Document {
	doc := &Document{BatchNumber: b.Number, Sheets: make([]*Sheet, 0, len(b.Records))}
	taken := make(map[string]struct{}, len(b.Records))
	for _, rec := range b.Records {
		s := RenderForm(rec)
		s.Name = UniqueLabel(s.Name, taken)
		doc.Sheets = append(doc.Sheets, s)
	}
	return doc
}

// RepairDocument returns a copy of doc with the layout rules reapplied
// to every sheet. Values are not changed; doc is not modified.
func RepairDocument(doc *Document) *Document {
	cp := doc.Clone()
	if cp == nil {
		return nil
	}
	for _, s := range cp.Sheets {
		EnforceLayout(s)
	}
	return cp
}

// Clone returns a deep copy of doc.
func (doc *Document) Clone() *Document {
	if doc == nil {
		return nil
	}
	return deepcopy.Copy(doc).(*Document)
}

// SheetNames returns the names of the sheets, in order.
func (doc *Document) SheetNames() []string {
	names := make([]string, len(doc.Sheets))
	for i, s := range doc.Sheets {
		names[i] = s.Name
	}
	return names
}
