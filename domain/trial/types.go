package trial

import (
	"github.com/google/uuid"
)

// RunID identifies one processing run (one uploaded document or workbook).
type RunID string

// NewRunID creates a new unique run identifier using UUID v7 for time-ordered generation
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return RunID(id.String())
}

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// Record is one parsed summary row recovered from a rich-text report:
// a treatment name, its reported mean, and the group label printed next to it.
type Record struct {
	Treatment string  `json:"treatment"`
	Mean      float64 `json:"mean"`
	Group     string  `json:"group"`
}

// Observation is one raw measurement: a treatment replicate's value for a
// single parameter.
type Observation struct {
	Treatment string  `json:"treatment"`
	Value     float64 `json:"value"`
}

// ParameterTable holds all observations for one parameter within one trial.
type ParameterTable struct {
	Trial     string        `json:"trial"`
	Parameter string        `json:"parameter"`
	Rows      []Observation `json:"rows"`
}

// DistinctTreatments returns the treatment levels in first-appearance order.
func (t *ParameterTable) DistinctTreatments() []string {
	seen := make(map[string]bool, len(t.Rows))
	levels := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !seen[row.Treatment] {
			seen[row.Treatment] = true
			levels = append(levels, row.Treatment)
		}
	}
	return levels
}

// Analyzable reports whether the table carries enough data for a one-way
// ANOVA: at least 2 distinct treatments and at least 3 rows total.
func (t *ParameterTable) Analyzable() bool {
	return len(t.Rows) >= 3 && len(t.DistinctTreatments()) >= 2
}

// PairwiseComparison is the outcome of one Tukey HSD comparison between an
// unordered pair of treatment levels. Reject means the pair is statistically
// distinguishable at the configured significance level.
type PairwiseComparison struct {
	Treatment1 string  `json:"treatment_1"`
	Treatment2 string  `json:"treatment_2"`
	MeanDiff   float64 `json:"mean_diff"`
	QStatistic float64 `json:"q_statistic"`
	PValue     float64 `json:"p_value"`
	Reject     bool    `json:"reject"`
}

// MeansRow is one row of the consolidated output: a treatment's mean for one
// (trial, parameter) combination, the group letter it was assigned, and the
// ANOVA model p-value shared by every row of the combination.
type MeansRow struct {
	Treatment string  `json:"treatment" db:"treatment"`
	Mean      float64 `json:"mean" db:"mean"`
	Group     string  `json:"group" db:"group_letter"`
	Parameter string  `json:"parameter" db:"parameter"`
	Trial     string  `json:"trial" db:"trial"`
	PValue    float64 `json:"p_value" db:"p_value"`
}

// ConsolidatedResult is the concatenation of every MeansRow produced across
// all (trial, parameter) combinations of one run. Created once, never mutated.
type ConsolidatedResult struct {
	Rows []MeansRow `json:"rows"`
}

// Significant returns the filtered view retaining only rows whose ANOVA
// p-value is below alpha.
func (r *ConsolidatedResult) Significant(alpha float64) *ConsolidatedResult {
	filtered := make([]MeansRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		if row.PValue < alpha {
			filtered = append(filtered, row)
		}
	}
	return &ConsolidatedResult{Rows: filtered}
}

// Combinations returns the distinct (trial, parameter) pairs present, in row
// order.
func (r *ConsolidatedResult) Combinations() [][2]string {
	seen := make(map[[2]string]bool)
	combos := make([][2]string, 0)
	for _, row := range r.Rows {
		key := [2]string{row.Trial, row.Parameter}
		if !seen[key] {
			seen[key] = true
			combos = append(combos, key)
		}
	}
	return combos
}

// Header is the stable column order of the export-ready table.
func Header() []string {
	return []string{"Treatment", "Mean", "Group", "Parameter", "Trial", "p_value"}
}
