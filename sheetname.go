// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sdrefund

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// longer variants first
	honorifics = []string{"M/s.", "M/S.", "m/s.", "M/s", "M/S", "m/s"}
	illegalSheetChars = strings.NewReplacer(
		`\`, "", "/", "", "*", "", "?", "", ":", "", "[", "", "]", "",
	)
)

// SheetLabel derives a legal sheet name from the contractor's first name
// and the number part of the agreement number ("M/s ABC Traders", "104/2020-21" -> "ABC 104").
//
// The result is at most MaxSheetNameLength characters, never empty, but not unique.
func SheetLabel(vendor, agreement string) string {
	short := "Unknown"
	if fs := strings.Fields(trimHonorific(vendor)); len(fs) != 0 {
		short = fs[0]
	}
	prefix := agreementPrefix(agreement)
	if label := legalLabel(short + " " + prefix); label != "" {
		return label
	}
	if p := legalLabel(prefix); p != "" {
		return legalLabel("Work_" + p)
	}
	return "Work_Unknown"
}

// trimHonorific removes a leading "M/s" from the vendor name.
func trimHonorific(vendor string) string {
	vendor = strings.TrimSpace(vendor)
	for _, h := range honorifics {
		if rest, ok := strings.CutPrefix(vendor, h); ok {
			return strings.TrimSpace(rest)
		}
	}
	return vendor
}

// agreementPrefix is the part before the first '/', or else before the first '-'.
func agreementPrefix(agreement string) string {
	agreement = strings.TrimSpace(agreement)
	if i := strings.IndexByte(agreement, '/'); i >= 0 {
		return agreement[:i]
	}
	if i := strings.IndexByte(agreement, '-'); i >= 0 {
		return agreement[:i]
	}
	return agreement
}

func legalLabel(s string) string {
	s = strings.Join(strings.Fields(illegalSheetChars.Replace(s)), " ")
	return strings.Trim(truncateRunes(s, MaxSheetNameLength), " '")
}

// UniqueLabel returns label, or label with a " (n)" suffix when it is already taken.
// Sheet names are case insensitive, so taken is keyed by the lower case name;
// the returned label is added to it.
func UniqueLabel(label string, taken map[string]struct{}) string {
	cand := label
	for n := 2; ; n++ {
		if _, ok := taken[strings.ToLower(cand)]; !ok {
			break
		}
		suffix := " (" + strconv.Itoa(n) + ")"
		base := truncateRunes(label, MaxSheetNameLength-utf8.RuneCountInString(suffix))
		cand = strings.TrimRight(base, " '") + suffix
	}
	taken[strings.ToLower(cand)] = struct{}{}
	return cand
}
