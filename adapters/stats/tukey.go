package stats

import (
	"math"

	"trialstat/domain/trial"
)

// DefaultAlpha is the family-wise significance level for all pairwise
// comparisons. No other level is supported.
const DefaultAlpha = 0.05

// TukeyHSD computes all pairwise Tukey honestly-significant-difference
// comparisons over a fitted one-way ANOVA model at significance level alpha.
// The q statistic uses the Tukey-Kramer standard error so unbalanced group
// sizes are handled.
func TukeyHSD(model *AnovaResult, alpha float64) []trial.PairwiseComparison {
	k := len(model.Treatments)
	dist := NewDistributions()

	comparisons := make([]trial.PairwiseComparison, 0, k*(k-1)/2)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			t1 := model.Treatments[i]
			t2 := model.Treatments[j]

			n1 := float64(model.Sizes[t1])
			n2 := float64(model.Sizes[t2])
			se := math.Sqrt(model.MSWithin / 2 * (1/n1 + 1/n2))

			diff := model.Means[t1] - model.Means[t2]
			q := math.Abs(diff) / se
			p := dist.TukeyPValue(q, k, model.DFWithin)

			comparisons = append(comparisons, trial.PairwiseComparison{
				Treatment1: t1,
				Treatment2: t2,
				MeanDiff:   diff,
				QStatistic: q,
				PValue:     p,
				Reject:     p < alpha,
			})
		}
	}
	return comparisons
}
