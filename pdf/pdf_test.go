// Copyright 2026 Tamas Gulacsi. All rights reserved.

package pdf

import (
	"bytes"
	"testing"

	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UNO-SOFT/sdrefund"
)

func TestWriteDocument(t *testing.T) {
	doc := sdrefund.BuildDocument(sdrefund.Batch{Number: 1, Records: []sdrefund.Record{
		{SequenceNumber: "1", WorkName: "Repair of pump house", Vendor: "ABC Traders", AgreementNumber: "71014/2022-23"},
		{SequenceNumber: "2"},
	}})
	var buf bytes.Buffer
	w := NewWriter(&buf, Options{FontScale: 0.9})
	require.NoError(t, w.WriteDocument(doc))
	assert.Equal(t, 2, w.pages)
	require.NoError(t, w.Close())
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "got %q", buf.Bytes()[:min(16, buf.Len())])

	assert.ErrorIs(t, w.WriteDocument(doc), ErrClosed)
	assert.NoError(t, w.Close())
}

func TestRowColsMerged(t *testing.T) {
	s := sdrefund.NewSheet("x")
	s.Merge(sdrefund.At("A", 1), sdrefund.At("E", 1))
	s.Merge(sdrefund.At("A", 2), sdrefund.At("B", 2))
	s.Set(sdrefund.At("A", 1), "title", sdrefund.Style{Border: sdrefund.BorderThick})

	pw := NewWriter(&bytes.Buffer{}, Options{})
	cols, err := pw.rowCols(s, 1)
	require.NoError(t, err)
	assert.Len(t, cols, 1)

	cols, err = pw.rowCols(s, 2)
	require.NoError(t, err)
	assert.Len(t, cols, 4)

	cols, err = pw.rowCols(s, 3)
	require.NoError(t, err)
	assert.Len(t, cols, len(gridCols))
}

func TestCellProps(t *testing.T) {
	cp, err := cellProps(sdrefund.Style{})
	require.NoError(t, err)
	assert.Nil(t, cp)

	cp, err = cellProps(sdrefund.Style{Border: sdrefund.BorderThin, Fill: "E6E6FA"})
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Equal(t, border.Full, cp.BorderType)
	assert.Equal(t, &props.Color{Red: 0xE6, Green: 0xE6, Blue: 0xFA}, cp.BackgroundColor)

	_, err = cellProps(sdrefund.Style{Fill: "lavender"})
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("000080")
	require.NoError(t, err)
	assert.Equal(t, &props.Color{Blue: 0x80}, c)

	c, err = parseColor("")
	assert.NoError(t, err)
	assert.Nil(t, c)

	_, err = parseColor("FF000080")
	assert.Error(t, err)
}
