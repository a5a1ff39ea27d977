package trial

import (
	"testing"
)

func TestSignificant_FiltersOnPValue(t *testing.T) {
	result := &ConsolidatedResult{Rows: []MeansRow{
		{Treatment: "A", Parameter: "Yield", Trial: "T1", PValue: 0.01},
		{Treatment: "B", Parameter: "Yield", Trial: "T1", PValue: 0.01},
		{Treatment: "A", Parameter: "Height", Trial: "T1", PValue: 0.20},
	}}

	filtered := result.Significant(0.05)
	if len(filtered.Rows) != 2 {
		t.Fatalf("filtered rows = %d, want 2", len(filtered.Rows))
	}
	for _, row := range filtered.Rows {
		if row.PValue >= 0.05 {
			t.Errorf("row with p=%v survived the filter", row.PValue)
		}
	}
	// The source table is never mutated.
	if len(result.Rows) != 3 {
		t.Errorf("source table mutated, rows = %d", len(result.Rows))
	}
}

func TestSignificant_BoundaryExcluded(t *testing.T) {
	result := &ConsolidatedResult{Rows: []MeansRow{{PValue: 0.05}}}
	if got := result.Significant(0.05); len(got.Rows) != 0 {
		t.Errorf("p exactly at alpha must be excluded, got %d rows", len(got.Rows))
	}
}

func TestParameterTable_Analyzable(t *testing.T) {
	cases := []struct {
		name string
		rows []Observation
		want bool
	}{
		{
			"two treatments three rows",
			[]Observation{{Treatment: "A", Value: 1}, {Treatment: "A", Value: 2}, {Treatment: "B", Value: 3}},
			true,
		},
		{
			"one treatment",
			[]Observation{{Treatment: "A", Value: 1}, {Treatment: "A", Value: 2}, {Treatment: "A", Value: 3}},
			false,
		},
		{
			"two rows",
			[]Observation{{Treatment: "A", Value: 1}, {Treatment: "B", Value: 2}},
			false,
		},
		{"empty", nil, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			table := &ParameterTable{Rows: c.rows}
			if got := table.Analyzable(); got != c.want {
				t.Errorf("Analyzable() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestDistinctTreatments_FirstAppearanceOrder(t *testing.T) {
	table := &ParameterTable{Rows: []Observation{
		{Treatment: "C", Value: 1},
		{Treatment: "A", Value: 2},
		{Treatment: "C", Value: 3},
		{Treatment: "B", Value: 4},
	}}

	got := table.DistinctTreatments()
	want := []string{"C", "A", "B"}
	if len(got) != len(want) {
		t.Fatalf("levels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("level %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCombinations_RowOrder(t *testing.T) {
	result := &ConsolidatedResult{Rows: []MeansRow{
		{Trial: "T1", Parameter: "Yield"},
		{Trial: "T1", Parameter: "Yield"},
		{Trial: "T1", Parameter: "Height"},
		{Trial: "T2", Parameter: "Yield"},
	}}

	combos := result.Combinations()
	if len(combos) != 3 {
		t.Fatalf("combinations = %d, want 3", len(combos))
	}
	if combos[0] != [2]string{"T1", "Yield"} || combos[2] != [2]string{"T2", "Yield"} {
		t.Errorf("combination order wrong: %v", combos)
	}
}

func TestNewRunID_Unique(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == b {
		t.Error("run IDs must be unique")
	}
	if a.String() == "" {
		t.Error("run ID must not be empty")
	}
}
