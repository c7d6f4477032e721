// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package sdrefund generates "Order for refund of security deposit" forms:
// one sheet per work order, one workbook per batch of work orders.
package sdrefund

import (
	"errors"
	"io"
)

// Writer writes Documents. The write finishes when Close is called.
//
// A Writer MAY accept more than one Document; each one is appended
// after the previous ones.
type Writer interface {
	io.Closer
	WriteDocument(*Document) error
}

// BorderStyle is the line style of all four sides of a cell.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderThin
	BorderMedium
	BorderThick
)

func (b BorderStyle) String() string {
	switch b {
	case BorderThin:
		return "thin"
	case BorderMedium:
		return "medium"
	case BorderThick:
		return "thick"
	default:
		return "none"
	}
}

// Font of a cell. Color is an RGB hex string, such as "000080".
type Font struct {
	Bold  bool
	Size  float64
	Color string
}

// Alignment of a cell's text.
type Alignment struct {
	Horizontal, Vertical string
	WrapText             bool
}

// Style is a style for a cell.
//
// Style is comparable, so it can be used as a map key.
type Style struct {
	Font      Font
	Alignment Alignment
	Border    BorderStyle
	// Fill is the solid background color as RGB hex, empty for no fill.
	Fill string
}

// IsZero reports whether st is the default style.
func (st Style) IsZero() bool { return st == Style{} }

// WithBorder returns a copy of st with the border replaced.
func (st Style) WithBorder(b BorderStyle) Style {
	st.Border = b
	return st
}

// ErrCapacity is returned for a non-positive batch capacity.
var ErrCapacity = errors.New("batch capacity must be positive")
