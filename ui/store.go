package ui

import (
	"sync"
	"time"

	"trialstat/app"
	"trialstat/domain/trial"
)

// RunKind distinguishes the two upload paths
type RunKind string

const (
	RunKindRecords  RunKind = "records"  // parsed rich-text summary rows
	RunKindAnalysis RunKind = "analysis" // full workbook pipeline output
)

// Run is one completed upload held for the results and download pages.
type Run struct {
	ID         trial.RunID
	Kind       RunKind
	SourceName string
	Records    []trial.Record
	Outcome    *app.Outcome
	CreatedAt  time.Time
}

// RunStore keeps completed runs in memory, keyed by run ID.
type RunStore struct {
	mu   sync.RWMutex
	runs map[trial.RunID]*Run
}

// NewRunStore creates an empty run store
func NewRunStore() *RunStore {
	return &RunStore{runs: make(map[trial.RunID]*Run)}
}

// Put stores a run and returns its ID
func (s *RunStore) Put(run *Run) trial.RunID {
	if run.ID == "" {
		run.ID = trial.NewRunID()
	}
	run.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return run.ID
}

// Get returns a stored run, or false if the ID is unknown
func (s *RunStore) Get(id trial.RunID) (*Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	return run, ok
}

// Len returns the number of stored runs
func (s *RunStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
