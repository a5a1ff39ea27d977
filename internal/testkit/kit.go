package testkit

import (
	"math/rand"

	"trialstat/domain/trial"
)

// TrialGenerator produces synthetic parameter tables with known group
// structure for pipeline and adapter tests. The same seed always yields the
// same tables.
type TrialGenerator struct {
	rng *rand.Rand
}

// NewTrialGenerator creates a generator with a fixed seed
func NewTrialGenerator(seed int64) *TrialGenerator {
	return &TrialGenerator{rng: rand.New(rand.NewSource(seed))}
}

// SeparatedTable builds a table whose treatment means are spaced ten units
// apart with small noise, so ANOVA and every pairwise comparison are
// decisively significant.
func (g *TrialGenerator) SeparatedTable(trialName, parameter string, treatments []string, replicates int) *trial.ParameterTable {
	table := &trial.ParameterTable{Trial: trialName, Parameter: parameter}
	for i, treatment := range treatments {
		center := 10.0 + float64(i)*10.0
		for r := 0; r < replicates; r++ {
			table.Rows = append(table.Rows, trial.Observation{
				Treatment: treatment,
				Value:     center + g.rng.NormFloat64()*0.3,
			})
		}
	}
	return table
}

// OverlappingTable builds a table whose treatments all share one
// distribution, so group differences are pure noise.
func (g *TrialGenerator) OverlappingTable(trialName, parameter string, treatments []string, replicates int) *trial.ParameterTable {
	table := &trial.ParameterTable{Trial: trialName, Parameter: parameter}
	for _, treatment := range treatments {
		for r := 0; r < replicates; r++ {
			table.Rows = append(table.Rows, trial.Observation{
				Treatment: treatment,
				Value:     50.0 + g.rng.NormFloat64(),
			})
		}
	}
	return table
}
