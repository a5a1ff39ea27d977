package app

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/semaphore"

	"trialstat/adapters/stats"
	"trialstat/domain/trial"
	"trialstat/internal/errors"
)

// SkippedCombination records a (trial, parameter) combination that was
// excluded from the consolidated result and why. Skips are expected
// conditions, not errors; they are reported for the run summary only.
type SkippedCombination struct {
	Trial     string
	Parameter string
	Reason    string
}

// Outcome is everything one pipeline run produces: the consolidated table,
// its significance-filtered view, and the skip log.
type Outcome struct {
	Consolidated *trial.ConsolidatedResult
	Significant  *trial.ConsolidatedResult
	Skipped      []SkippedCombination
}

// Pipeline drives the analyzer and the letter-group assigner over every
// eligible (trial, parameter) table and assembles one consolidated result.
type Pipeline struct {
	alpha   float64
	workers int64
}

// NewPipeline creates a pipeline running all comparisons at the fixed
// significance level. Combinations are fully independent, so up to workers
// of them run concurrently; output order is deterministic regardless.
func NewPipeline(workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{alpha: stats.DefaultAlpha, workers: int64(workers)}
}

// Run processes every table and returns the assembled outcome. Tables arrive
// in (trial, parameter) order from the reader and rows are emitted in that
// same order, treatment-table order within each combination. The only error
// is the total-extraction-failure signal: no tables at all.
func (p *Pipeline) Run(ctx context.Context, tables []*trial.ParameterTable) (*Outcome, error) {
	if len(tables) == 0 {
		return nil, errors.NoDataFound("no analyzable (trial, parameter) tables in input")
	}

	type slot struct {
		rows []trial.MeansRow
		skip *SkippedCombination
	}
	slots := make([]slot, len(tables))

	sem := semaphore.NewWeighted(p.workers)
	var wg sync.WaitGroup
	for i, table := range tables {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, errors.Wrap(err, "pipeline cancelled")
		}
		wg.Add(1)
		go func(i int, table *trial.ParameterTable) {
			defer wg.Done()
			defer sem.Release(1)

			rows, err := p.analyze(table)
			if err != nil {
				slots[i] = slot{skip: &SkippedCombination{
					Trial:     table.Trial,
					Parameter: table.Parameter,
					Reason:    err.Error(),
				}}
				return
			}
			slots[i] = slot{rows: rows}
		}(i, table)
	}
	wg.Wait()

	outcome := &Outcome{Consolidated: &trial.ConsolidatedResult{}}
	for _, s := range slots {
		if s.skip != nil {
			log.Printf("[Pipeline] Skipping %s/%s: %s", s.skip.Trial, s.skip.Parameter, s.skip.Reason)
			outcome.Skipped = append(outcome.Skipped, *s.skip)
			continue
		}
		outcome.Consolidated.Rows = append(outcome.Consolidated.Rows, s.rows...)
	}
	outcome.Significant = outcome.Consolidated.Significant(p.alpha)

	log.Printf("[Pipeline] %d combinations processed, %d skipped, %d result rows (%d significant)",
		len(tables), len(outcome.Skipped), len(outcome.Consolidated.Rows), len(outcome.Significant.Rows))
	return outcome, nil
}

// analyze runs one (trial, parameter) combination: fit the one-way model,
// compute pairwise Tukey comparisons, assign group letters, and tag each
// means row with its trial, parameter, and the shared model p-value.
func (p *Pipeline) analyze(table *trial.ParameterTable) ([]trial.MeansRow, error) {
	model, err := stats.FitOneWay(table)
	if err != nil {
		return nil, err
	}

	comparisons := stats.TukeyHSD(model, p.alpha)
	letters := stats.AssignGroupLetters(model.Treatments, comparisons)

	rows := make([]trial.MeansRow, 0, len(model.Treatments))
	for _, treatment := range model.Treatments {
		rows = append(rows, trial.MeansRow{
			Treatment: treatment,
			Mean:      model.Means[treatment],
			Group:     letters[treatment],
			Parameter: table.Parameter,
			Trial:     table.Trial,
			PValue:    model.PValue,
		})
	}
	return rows, nil
}
