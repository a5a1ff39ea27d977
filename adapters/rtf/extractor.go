package rtf

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"trialstat/domain/trial"
)

// fieldPattern splits a line on runs of tabs and spaces.
var fieldPattern = regexp.MustCompile(`[\t ]+`)

// ExtractRecords scans normalized lines and returns the subset that decode
// into valid records, preserving line order. A line qualifies only if it has
// at least 3 whitespace-separated tokens and its second token parses as a
// floating-point number; token order is treatment, mean, group. Lines that
// fail either check are dropped silently.
func ExtractRecords(lines []string) []trial.Record {
	records := make([]trial.Record, 0, len(lines))
	for _, line := range lines {
		if rec, ok := parseLine(line); ok {
			records = append(records, rec)
		}
	}
	log.Printf("[RowExtractor] %d lines scanned, %d records extracted", len(lines), len(records))
	return records
}

// parseLine attempts to decode one line into a record. The boolean result
// makes the caller's skip logic an explicit branch rather than a recovered
// failure.
func parseLine(line string) (trial.Record, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return trial.Record{}, false
	}

	parts := fieldPattern.Split(trimmed, -1)
	if len(parts) < 3 {
		return trial.Record{}, false
	}

	mean, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return trial.Record{}, false
	}

	return trial.Record{
		Treatment: parts[0],
		Mean:      mean,
		Group:     parts[2],
	}, true
}

// Parse runs the full rich-text path: normalize raw bytes, extract records,
// and return both the records and the normalized lines. The lines back the
// diagnostic preview shown when nothing parses.
func Parse(raw []byte) ([]trial.Record, []string) {
	normalizer := NewNormalizer()
	lines := normalizer.Normalize(raw)
	return ExtractRecords(lines), lines
}

// Preview returns the first n lines for diagnostic display when extraction
// yields no records.
func Preview(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[:n]
}
