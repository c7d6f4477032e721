// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sdrefund

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSheetLabel(t *testing.T) {
	for _, tc := range []struct {
		name, vendor, agreement, want string
	}{
		{"plain", "ABC Traders", "71014/2022-23", "ABC 71014"},
		{"honorific", "M/s. Sharma Electricals", "104/2020-21", "Sharma 104"},
		{"honorific_upper", "  M/S Gupta & Sons", "7-2019", "Gupta 7"},
		{"no_vendor", "", "55/2022-23", "Unknown 55"},
		{"empty", "", "", "Unknown"},
		{"slash_inside_name", "Ram/son Traders", "104/2020-21", "Ramson 104"},
		{"ms_inside_name", "Cosm/s Traders", "5/2021-22", "Cosms 5"},
		{"no_agreement", "Kumar Enterprises", "", "Kumar"},
		{"illegal", "A*B?C Company", "9/2021-22", "ABC 9"},
		{"illegal_vendor", "[]", "104/2020", "104"},
		{"illegal_both", "?", "[]/2020", "Work_Unknown"},
		{"nothing", "?", "", "Work_Unknown"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SheetLabel(tc.vendor, tc.agreement))
		})
	}
}

func TestTrimHonorific(t *testing.T) {
	for in, want := range map[string]string{
		"M/s. ABC Traders":  "ABC Traders",
		" m/s XYZ":          "XYZ",
		"M/S.":              "",
		"Ram/son Traders":   "Ram/son Traders",
		"ABC M/s Traders":   "ABC M/s Traders",
		"  plain  vendor  ": "plain  vendor",
	} {
		assert.Equal(t, want, trimHonorific(in), in)
	}
}

func TestSheetLabelLegal(t *testing.T) {
	long := strings.Repeat("Contractor", 5)
	for _, got := range []string{
		SheetLabel(long, "1234567890/2022-23"),
		SheetLabel("a/b\\c:d", "[x]*?"),
		SheetLabel("Ünnepélyes Árvíztűrő Tükörfúrógép", strings.Repeat("9", 40)),
	} {
		assert.NotEmpty(t, got)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxSheetNameLength, got)
		assert.False(t, strings.ContainsAny(got, `\/*?:[]`), got)
	}
}

func TestUniqueLabel(t *testing.T) {
	taken := make(map[string]struct{})
	assert.Equal(t, "ABC 104", UniqueLabel("ABC 104", taken))
	assert.Equal(t, "ABC 104 (2)", UniqueLabel("ABC 104", taken))
	assert.Equal(t, "abc 104 (3)", UniqueLabel("abc 104", taken))
	assert.Equal(t, "XYZ 1", UniqueLabel("XYZ 1", taken))

	long := strings.Repeat("x", MaxSheetNameLength)
	assert.Equal(t, long, UniqueLabel(long, taken))
	got := UniqueLabel(long, taken)
	assert.Equal(t, strings.Repeat("x", MaxSheetNameLength-4)+" (2)", got)
	assert.Len(t, taken, 6)
}
