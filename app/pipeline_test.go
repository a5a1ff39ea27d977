package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trialstat/domain/trial"
	"trialstat/internal/errors"
	"trialstat/internal/testkit"
)

func TestPipeline_RunConsolidatesAcrossCombinations(t *testing.T) {
	gen := testkit.NewTrialGenerator(42)
	tables := []*trial.ParameterTable{
		gen.SeparatedTable("Trial1", "Yield", []string{"T1", "T2", "T3"}, 4),
		gen.OverlappingTable("Trial1", "Height", []string{"T1", "T2", "T3"}, 4),
		gen.SeparatedTable("Trial2", "Yield", []string{"T1", "T2"}, 5),
	}

	pipeline := NewPipeline(2)
	outcome, err := pipeline.Run(context.Background(), tables)
	require.NoError(t, err)

	// 3+3+2 treatments across the three combinations.
	assert.Len(t, outcome.Consolidated.Rows, 8)
	assert.Empty(t, outcome.Skipped)

	// Output order is deterministic: table order, treatment order within.
	assert.Equal(t, "Trial1", outcome.Consolidated.Rows[0].Trial)
	assert.Equal(t, "Yield", outcome.Consolidated.Rows[0].Parameter)
	assert.Equal(t, "T1", outcome.Consolidated.Rows[0].Treatment)
	assert.Equal(t, "Height", outcome.Consolidated.Rows[3].Parameter)
	assert.Equal(t, "Trial2", outcome.Consolidated.Rows[6].Trial)
}

func TestPipeline_PValueSharedWithinCombination(t *testing.T) {
	gen := testkit.NewTrialGenerator(7)
	tables := []*trial.ParameterTable{
		gen.SeparatedTable("T", "Yield", []string{"A", "B", "C"}, 4),
	}

	outcome, err := NewPipeline(1).Run(context.Background(), tables)
	require.NoError(t, err)
	require.Len(t, outcome.Consolidated.Rows, 3)

	p := outcome.Consolidated.Rows[0].PValue
	for _, row := range outcome.Consolidated.Rows {
		assert.Equal(t, p, row.PValue, "every row of a combination carries the model p-value")
	}
}

func TestPipeline_SignificanceFilter(t *testing.T) {
	gen := testkit.NewTrialGenerator(13)
	tables := []*trial.ParameterTable{
		// Widely separated groups: p far below 0.05.
		gen.SeparatedTable("T", "Yield", []string{"A", "B"}, 6),
		// Same distribution for both groups: p almost surely above 0.05.
		gen.OverlappingTable("T", "Height", []string{"A", "B"}, 6),
	}

	outcome, err := NewPipeline(2).Run(context.Background(), tables)
	require.NoError(t, err)

	for _, row := range outcome.Significant.Rows {
		assert.Less(t, row.PValue, 0.05)
	}
	// The separated combination must survive the filter.
	params := map[string]bool{}
	for _, row := range outcome.Significant.Rows {
		params[row.Parameter] = true
	}
	assert.True(t, params["Yield"], "separated groups should be significant")
}

func TestPipeline_SkipsDegenerateCombination(t *testing.T) {
	tables := []*trial.ParameterTable{
		{
			Trial:     "T",
			Parameter: "Yield",
			Rows: []trial.Observation{
				{Treatment: "A", Value: 5},
				{Treatment: "A", Value: 5},
				{Treatment: "B", Value: 7},
				{Treatment: "B", Value: 7},
			},
		},
	}

	outcome, err := NewPipeline(1).Run(context.Background(), tables)
	require.NoError(t, err)

	assert.Empty(t, outcome.Consolidated.Rows)
	require.Len(t, outcome.Skipped, 1)
	assert.Equal(t, "Yield", outcome.Skipped[0].Parameter)
}

func TestPipeline_SingleTreatmentNeverReachesAssigner(t *testing.T) {
	tables := []*trial.ParameterTable{
		{
			Trial:     "T",
			Parameter: "Yield",
			Rows: []trial.Observation{
				{Treatment: "X", Value: 1},
				{Treatment: "X", Value: 2},
				{Treatment: "X", Value: 3},
			},
		},
	}

	outcome, err := NewPipeline(1).Run(context.Background(), tables)
	require.NoError(t, err)
	assert.Empty(t, outcome.Consolidated.Rows, "single-level combination must be absent from output")
	assert.Len(t, outcome.Skipped, 1)
}

func TestPipeline_NoTablesIsNoDataFound(t *testing.T) {
	_, err := NewPipeline(1).Run(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsNoDataFound(err))
}

func TestPipeline_DeterministicAcrossWorkerCounts(t *testing.T) {
	gen := testkit.NewTrialGenerator(99)
	var tables []*trial.ParameterTable
	for _, trialName := range []string{"T1", "T2", "T3"} {
		for _, param := range []string{"Yield", "Height", "Vigor"} {
			tables = append(tables, gen.SeparatedTable(trialName, param, []string{"A", "B", "C"}, 4))
		}
	}

	serial, err := NewPipeline(1).Run(context.Background(), tables)
	require.NoError(t, err)
	parallel, err := NewPipeline(8).Run(context.Background(), tables)
	require.NoError(t, err)

	assert.Equal(t, serial.Consolidated.Rows, parallel.Consolidated.Rows)
}
