package rtf

import (
	"testing"
)

func TestExtractRecords_EndToEndExample(t *testing.T) {
	lines := []string{
		"T1 10.2 A",
		"T2 10.9 A",
		"T3 15.0 B",
		"not a data line",
	}

	records := ExtractRecords(lines)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Treatment != "T1" || records[0].Mean != 10.2 || records[0].Group != "A" {
		t.Errorf("first record wrong: %+v", records[0])
	}
	if records[2].Treatment != "T3" || records[2].Mean != 15.0 || records[2].Group != "B" {
		t.Errorf("third record wrong: %+v", records[2])
	}
}

func TestExtractRecords_Soundness(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"two tokens", "T1 10.2"},
		{"non-numeric mean", "T1 abc A"},
		{"empty line", ""},
		{"whitespace only", "   \t  "},
		{"one token", "header"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if records := ExtractRecords([]string{c.line}); len(records) != 0 {
				t.Errorf("line %q should yield no record, got %+v", c.line, records)
			}
		})
	}
}

func TestExtractRecords_TolerantOfExtraTokens(t *testing.T) {
	// Only the first three tokens matter; trailing tokens are ignored.
	records := ExtractRecords([]string{"T1\t10.2\tA\textra\ttokens"})
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Group != "A" {
		t.Errorf("group = %q, want A", records[0].Group)
	}
}

func TestExtractRecords_MixedSeparators(t *testing.T) {
	records := ExtractRecords([]string{"  T1 \t 10.2\t  A  "})
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Treatment != "T1" || records[0].Mean != 10.2 {
		t.Errorf("record wrong: %+v", records[0])
	}
}

func TestParse_FullDocument(t *testing.T) {
	raw := []byte(`{\rtf1\ansi T1\tab 10.2\tab A\par T2\tab 10.9\tab A\par T3\tab 15.0\tab B\par}`)

	records, lines := Parse(raw)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d (lines: %v)", len(records), lines)
	}
	if len(lines) == 0 {
		t.Error("normalized lines must be returned for diagnostics")
	}
}

func TestParse_NothingExtractable(t *testing.T) {
	raw := []byte(`{\rtf1\ansi just prose, no measurements\par}`)

	records, lines := Parse(raw)
	if len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
	if len(lines) == 0 {
		t.Error("lines must still be available for the preview")
	}
}

func TestPreview_CapsLineCount(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "line"
	}

	if got := Preview(lines, 30); len(got) != 30 {
		t.Errorf("preview length = %d, want 30", len(got))
	}
	short := []string{"a", "b"}
	if got := Preview(short, 30); len(got) != 2 {
		t.Errorf("short preview length = %d, want 2", len(got))
	}
}
