package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
	"github.com/mkowalczyk/zus-accident-assistant/internal/core/ports"
)

// ErrRunSuperseded marks a run whose outcome arrived after a newer run had
// already started; its result was discarded instead of overwriting state.
var ErrRunSuperseded = errors.New("analysis run superseded by a newer run")

// TrackerOptions configures a ProcessingTracker. Zero values fall back to
// the default stage map and no-op callbacks.
type TrackerOptions struct {
	StageMap   domain.StageMap
	OnChange   func(domain.ProcessingState)
	OnComplete func(domain.AnalysisResult)
}

// ProcessingTracker translates one analysis run into the three-slot
// processing view. Every Run starts a new generation; stage updates and
// outcomes from an older generation are discarded, so a stale poll can
// never overwrite newer state. Retry is simply another Run.
type ProcessingTracker struct {
	runner  ports.AnalysisRunner
	options TrackerOptions

	mu         sync.Mutex
	generation uint64
	state      domain.ProcessingState
}

func NewProcessingTracker(runner ports.AnalysisRunner, options TrackerOptions) *ProcessingTracker {
	if options.StageMap == nil {
		options.StageMap = domain.DefaultStageMap()
	}
	return &ProcessingTracker{
		runner:  runner,
		options: options,
		state:   domain.NewProcessingState(),
	}
}

// Snapshot returns a copy of the current processing state.
func (t *ProcessingTracker) Snapshot() domain.ProcessingState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Run drives one analysis to a terminal state. On success all three slots
// read completed and the completion callback fires exactly once. On failure
// the analysis and generation slots read error (OCR keeps its last status)
// and the backend's message is recorded, so the caller can retry or walk
// away with the reason.
func (t *ProcessingTracker) Run(ctx context.Context, documents []domain.UploadedDocument) (domain.AnalysisResult, error) {
	gen := t.begin()

	result, err := t.runner.Run(ctx, documents, func(stage string) {
		t.applyStage(gen, stage)
	})
	if err != nil {
		if !t.fail(gen, err) {
			return domain.AnalysisResult{}, ErrRunSuperseded
		}
		return domain.AnalysisResult{}, err
	}

	if !t.complete(gen) {
		return domain.AnalysisResult{}, ErrRunSuperseded
	}
	if t.options.OnComplete != nil {
		t.options.OnComplete(result)
	}
	return result, nil
}

// begin opens a new generation and resets the view. The backend reports a
// single merged stage signal, so OCR and analysis enter in-progress
// together at job start.
func (t *ProcessingTracker) begin() uint64 {
	t.mu.Lock()
	t.generation++
	gen := t.generation
	t.state = domain.NewProcessingState()
	t.state.OCR = domain.StatusInProgress
	t.state.Analysis = domain.StatusInProgress
	state := t.state
	t.mu.Unlock()

	t.notify(state)
	return gen
}

func (t *ProcessingTracker) applyStage(gen uint64, backendStage string) {
	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		return
	}
	changed := t.options.StageMap.Apply(&t.state, backendStage)
	state := t.state
	t.mu.Unlock()

	if changed {
		t.notify(state)
	}
}

func (t *ProcessingTracker) complete(gen uint64) bool {
	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		return false
	}
	t.state = domain.ProcessingState{
		OCR:        domain.StatusCompleted,
		Analysis:   domain.StatusCompleted,
		Generation: domain.StatusCompleted,
	}
	state := t.state
	t.mu.Unlock()

	t.notify(state)
	return true
}

func (t *ProcessingTracker) fail(gen uint64, runErr error) bool {
	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		return false
	}
	t.state.Analysis = domain.StatusError
	t.state.Generation = domain.StatusError
	t.state.Error = runErr.Error()
	state := t.state
	t.mu.Unlock()

	t.notify(state)
	return true
}

func (t *ProcessingTracker) notify(state domain.ProcessingState) {
	if t.options.OnChange != nil {
		t.options.OnChange(state)
	}
}
