// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sdrefund

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedRecords(n int) []Record {
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = Record{SequenceNumber: strconv.Itoa(i + 1), Amounts: []string{"1.50"}}
	}
	return recs
}

func TestBatches(t *testing.T) {
	recs := numberedRecords(60)
	batches, err := Batches(recs, DefaultBatchSize)
	require.NoError(t, err)
	require.Len(t, batches, 3)
	var seq int
	for i, b := range batches {
		assert.Equal(t, i+1, b.Number)
		for _, rec := range b.Records {
			seq++
			assert.Equal(t, strconv.Itoa(seq), rec.SequenceNumber)
		}
	}
	assert.Len(t, batches[0].Records, 25)
	assert.Len(t, batches[1].Records, 25)
	assert.Len(t, batches[2].Records, 10)
	assert.Equal(t, 60, seq)
	assert.Equal(t, "15.00", batches[2].Total().StringFixed(2))

	// appending to a batch must not overwrite the next one
	_ = append(batches[0].Records, Record{SequenceNumber: "x"})
	assert.Equal(t, "26", batches[1].Records[0].SequenceNumber)
}

func TestBatchesEdges(t *testing.T) {
	batches, err := Batches(nil, 25)
	require.NoError(t, err)
	assert.Empty(t, batches)

	batches, err = Batches(numberedRecords(25), 25)
	require.NoError(t, err)
	assert.Len(t, batches, 1)

	batches, err = Batches(numberedRecords(3), 1)
	require.NoError(t, err)
	assert.Len(t, batches, 3)

	for _, capacity := range []int{0, -1} {
		_, err = Batches(numberedRecords(3), capacity)
		assert.ErrorIs(t, err, ErrCapacity)
	}
}

func TestBatchNames(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	assert.Equal(t, "Security_Refund_Batch_03_2022.xlsx", BatchFileName(3, "2022"))
	assert.Equal(t, "Security_Refund_Batch_12_2022.xlsx", BatchFileName(12, "2022"))
	assert.Equal(t, "Security_Refund_Sheets_2022_20240305_140709", OutputDir("2022", now))
}

func TestAgreementYear(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		agreement, want string
	}{
		{"71014/2022-23", "2022"},
		{"5 of 2019-20", "2019"},
		{"99999/1999-00", "2024"},
		{"", "2024"},
		{"12/20x1-22", "2024"},
	} {
		assert.Equal(t, tc.want, AgreementYear([]Record{{AgreementNumber: tc.agreement}}, now), tc.agreement)
	}
	assert.Equal(t, "2024", AgreementYear(nil, now))
}

func TestRecordTotal(t *testing.T) {
	rec := Record{Amounts: []string{"1500.00", "250.50", "n/a"}}
	assert.Equal(t, "1750.50", rec.Total().StringFixed(2))
	assert.Equal(t, "1234.50", NormalizeAmount(" 1,234.5 "))
	assert.Equal(t, "n/a", NormalizeAmount("n/a"))
}
