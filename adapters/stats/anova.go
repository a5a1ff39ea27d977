package stats

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"trialstat/domain/trial"
)

// AnovaResult holds a fitted one-way ANOVA model: per-treatment means in
// table order, the pooled within-group variance, and the overall F test.
type AnovaResult struct {
	Treatments []string
	Means      map[string]float64
	Sizes      map[string]int
	MSWithin   float64
	DFWithin   int
	FStatistic float64
	PValue     float64
}

// FitOneWay fits a one-way ANOVA model (value explained by categorical
// treatment) over a parameter table. Degenerate inputs — fewer than 2
// treatment levels, fewer than 3 rows, no residual degrees of freedom, zero
// within-group variance, or non-finite values — are fitting failures; the
// caller skips the combination rather than aborting the batch.
func FitOneWay(table *trial.ParameterTable) (*AnovaResult, error) {
	if !table.Analyzable() {
		return nil, fmt.Errorf("insufficient data: %d rows, %d treatments",
			len(table.Rows), len(table.DistinctTreatments()))
	}

	groups := make(map[string][]float64)
	treatments := table.DistinctTreatments()
	for _, row := range table.Rows {
		if math.IsNaN(row.Value) || math.IsInf(row.Value, 0) {
			return nil, fmt.Errorf("non-finite value for treatment %q", row.Treatment)
		}
		groups[row.Treatment] = append(groups[row.Treatment], row.Value)
	}

	total := len(table.Rows)
	k := len(treatments)
	dfBetween := k - 1
	dfWithin := total - k
	if dfWithin < 1 {
		return nil, fmt.Errorf("no residual degrees of freedom (%d rows, %d treatments)", total, k)
	}

	all := make([]float64, 0, total)
	for _, row := range table.Rows {
		all = append(all, row.Value)
	}
	grandMean, err := stats.Mean(all)
	if err != nil {
		return nil, fmt.Errorf("grand mean: %w", err)
	}

	means := make(map[string]float64, k)
	sizes := make(map[string]int, k)
	ssBetween := 0.0
	ssWithin := 0.0
	for _, treatment := range treatments {
		values := groups[treatment]
		mean, err := stats.Mean(values)
		if err != nil {
			return nil, fmt.Errorf("group mean for %q: %w", treatment, err)
		}
		means[treatment] = mean
		sizes[treatment] = len(values)

		diff := mean - grandMean
		ssBetween += float64(len(values)) * diff * diff
		for _, v := range values {
			dev := v - mean
			ssWithin += dev * dev
		}
	}

	if ssWithin <= 0 {
		return nil, fmt.Errorf("zero within-group variance")
	}

	msBetween := ssBetween / float64(dfBetween)
	msWithin := ssWithin / float64(dfWithin)
	fStat := msBetween / msWithin

	dist := NewDistributions()
	pValue := dist.FTestPValue(fStat, dfBetween, dfWithin)

	return &AnovaResult{
		Treatments: treatments,
		Means:      means,
		Sizes:      sizes,
		MSWithin:   msWithin,
		DFWithin:   dfWithin,
		FStatistic: fStat,
		PValue:     pValue,
	}, nil
}
