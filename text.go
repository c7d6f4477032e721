// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sdrefund

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// vendorSuffixes end a contractor's name.
const vendorSuffixes = `(?:Enterprises|Electricals|Company|Ltd|Pvt|Traders|Suppliers|Engineering|Industries|Centre|Service)`

var (
	rxRecordStart  = regexp.MustCompile(`\d+[A-Z]`)
	rxSequence     = regexp.MustCompile(`^\d+`)
	rxWorkName     = regexp.MustCompile(`^\d+([A-Z][^A-Z]*)`)
	rxVendor       = regexp.MustCompile(`[A-Z][a-zA-Z\s&]+` + vendorSuffixes)
	rxVendorPrefix = regexp.MustCompile(`^[A-Z][a-zA-Z\s&]+` + vendorSuffixes)
	rxOrder        = regexp.MustCompile(`\d{5,6}`)
	rxAgreement    = regexp.MustCompile(`\d+[/\s]*(?:of\s+)?\d{4}-\d{2,4}`)
	rxBracketDate  = regexp.MustCompile(`\((\d{2}/\d{2}/\d{4})\)`)
	rxAmount       = regexp.MustCompile(`\d+\.\d{2}`)
	rxTrailingDate = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s*$`)
)

const (
	maxAmounts         = 2
	workNameFallbackLn = 50
)

// ParseStats summarizes a ParseText run.
type ParseStats struct {
	// Entries is the number of non-blank segments found.
	Entries int
	// Records is the number of Records returned.
	Records int
	// Skipped entries had no leading sequence number.
	Skipped int
	// DroppedAmounts counts the amounts beyond the kept ones.
	DroppedAmounts int
}

// ParseText splits a blob of concatenated work order descriptions into Records.
//
// A record starts at a digit run immediately followed by an uppercase letter.
// Fields that cannot be found are left empty; segments without a leading
// sequence number are skipped.
func ParseText(blob string) ([]Record, ParseStats) {
	var stats ParseStats
	var recs []Record
	for _, entry := range splitEntries(blob) {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		stats.Entries++
		rec, dropped, ok := parseEntry(entry)
		if !ok {
			stats.Skipped++
			continue
		}
		stats.DroppedAmounts += dropped
		recs = append(recs, rec)
	}
	stats.Records = len(recs)
	return recs, stats
}

func splitEntries(blob string) []string {
	locs := rxRecordStart.FindAllStringIndex(blob, -1)
	entries := make([]string, 0, len(locs)+1)
	var prev int
	for _, loc := range locs {
		if loc[0] > prev {
			entries = append(entries, blob[prev:loc[0]])
		}
		prev = loc[0]
	}
	return append(entries, blob[prev:])
}

func parseEntry(entry string) (Record, int, bool) {
	seq := rxSequence.FindString(entry)
	if seq == "" {
		return Record{}, 0, false
	}
	rec := Record{SequenceNumber: seq}

	vendorFrom := 0
	if m := rxWorkName.FindStringSubmatchIndex(entry); m != nil && rxVendorPrefix.MatchString(entry[m[3]:]) {
		rec.WorkName = strings.TrimSpace(entry[m[2]:m[3]])
		vendorFrom = m[3]
	} else {
		rec.WorkName = truncateRunes(entry, workNameFallbackLn) + "..."
	}
	rec.Vendor = strings.TrimSpace(rxVendor.FindString(entry[vendorFrom:]))
	rec.OrderNumber = rxOrder.FindString(entry)
	rec.AgreementNumber = rxAgreement.FindString(entry)

	dates := rxBracketDate.FindAllStringSubmatch(entry, 2)
	if len(dates) > 0 {
		rec.StartDate = dates[0][1]
	}
	if len(dates) > 1 {
		rec.CompletionDate = dates[1][1]
	}

	var dropped int
	if amounts := rxAmount.FindAllString(entry, -1); len(amounts) > maxAmounts {
		rec.Amounts, dropped = amounts[:maxAmounts:maxAmounts], len(amounts)-maxAmounts
	} else {
		rec.Amounts = amounts
	}

	if m := rxTrailingDate.FindStringSubmatch(entry); m != nil {
		rec.ActualCompletionDate = m[1]
	}
	return rec, dropped, true
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	var i int
	for j := range s {
		if n == 0 {
			i = j
			break
		}
		n--
	}
	return s[:i]
}
