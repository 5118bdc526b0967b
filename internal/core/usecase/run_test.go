package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
)

type gatewayFake struct {
	mu sync.Mutex

	triggerResp domain.RunResponse
	triggerErr  error

	statuses  []domain.StatusResponse
	statusErr error

	triggerCalls int
	statusCalls  int
	inFlight     int
	maxInFlight  int
}

func (f *gatewayFake) Trigger(_ context.Context, _ []domain.UploadedDocument) (domain.RunResponse, error) {
	f.mu.Lock()
	f.triggerCalls++
	f.mu.Unlock()
	if f.triggerErr != nil {
		return domain.RunResponse{}, f.triggerErr
	}
	return f.triggerResp, nil
}

func (f *gatewayFake) Status(_ context.Context, _ string) (domain.StatusResponse, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	idx := f.statusCalls
	f.statusCalls++
	f.mu.Unlock()

	// Simulate a slow backend so overlapping polls would be observable.
	time.Sleep(2 * time.Millisecond)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if f.statusErr != nil {
		return domain.StatusResponse{}, f.statusErr
	}
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	return f.statuses[idx], nil
}

func runDocs() []domain.UploadedDocument {
	return []domain.UploadedDocument{{ID: "d1", Name: "zgloszenie.pdf", Type: domain.DocTypeNotification, Form: domain.FormPrinted}}
}

func completedStatus(caseID string) domain.StatusResponse {
	return domain.StatusResponse{
		CaseID: caseID,
		Status: domain.RunStatusCompleted,
		Stage:  "generation",
		Result: json.RawMessage(`{"case":{"case_id":"` + caseID + `"}}`),
	}
}

func TestRunRejectsEmptyDocumentList(t *testing.T) {
	uc := NewRunAnalysisUseCase(&gatewayFake{}, RunConfig{PollInterval: time.Millisecond})
	_, err := uc.Run(context.Background(), nil, nil)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestRunFastPathSkipsPolling(t *testing.T) {
	gateway := &gatewayFake{
		triggerResp: domain.RunResponse{
			CaseID: "CASE-1",
			Status: domain.RunStatusCompleted,
			Stage:  "generation",
			Result: json.RawMessage(`{"case":{"case_id":"CASE-1"}}`),
		},
	}
	uc := NewRunAnalysisUseCase(gateway, RunConfig{PollInterval: time.Millisecond})

	result, err := uc.Run(context.Background(), runDocs(), nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.CaseID != "CASE-1" {
		t.Fatalf("CaseID = %q", result.CaseID)
	}
	if gateway.statusCalls != 0 {
		t.Fatalf("fast path must not poll, got %d status calls", gateway.statusCalls)
	}
}

func TestRunPollsSequentiallyUntilCompleted(t *testing.T) {
	gateway := &gatewayFake{
		triggerResp: domain.RunResponse{CaseID: "CASE-2", Status: domain.RunStatusQueued, Stage: "received"},
		statuses: []domain.StatusResponse{
			{CaseID: "CASE-2", Status: domain.RunStatusRunning, Stage: "ocr"},
			{CaseID: "CASE-2", Status: domain.RunStatusRunning, Stage: "legal_reasoning"},
			completedStatus("CASE-2"),
		},
	}
	uc := NewRunAnalysisUseCase(gateway, RunConfig{PollInterval: time.Millisecond})

	var stages []string
	result, err := uc.Run(context.Background(), runDocs(), func(stage string) {
		stages = append(stages, stage)
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.CaseID != "CASE-2" {
		t.Fatalf("CaseID = %q", result.CaseID)
	}
	if gateway.statusCalls != 3 {
		t.Fatalf("status calls = %d, want 3", gateway.statusCalls)
	}
	if gateway.maxInFlight != 1 {
		t.Fatalf("max in-flight polls = %d, want 1", gateway.maxInFlight)
	}

	want := []string{"received", "ocr", "legal_reasoning", "generation"}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stages[%d] = %q, want %q", i, stages[i], want[i])
		}
	}
}

func TestRunIgnoresUnknownStatusesUntilTerminal(t *testing.T) {
	gateway := &gatewayFake{
		triggerResp: domain.RunResponse{CaseID: "CASE-3", Status: domain.RunStatusQueued},
		statuses: []domain.StatusResponse{
			{CaseID: "CASE-3", Status: domain.RunStatus("warming_up")},
			{CaseID: "CASE-3", Status: domain.RunStatusCompleted},
			completedStatus("CASE-3"),
		},
	}
	uc := NewRunAnalysisUseCase(gateway, RunConfig{PollInterval: time.Millisecond})

	// The second observation is completed without a result yet; polling
	// must continue rather than map an empty payload.
	result, err := uc.Run(context.Background(), runDocs(), nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.CaseID != "CASE-3" {
		t.Fatalf("CaseID = %q", result.CaseID)
	}
	if gateway.statusCalls != 3 {
		t.Fatalf("status calls = %d, want 3", gateway.statusCalls)
	}
}

func TestRunSurfacesBackendFailureMessageVerbatim(t *testing.T) {
	gateway := &gatewayFake{
		triggerResp: domain.RunResponse{CaseID: "CASE-4", Status: domain.RunStatusQueued},
		statuses: []domain.StatusResponse{
			{CaseID: "CASE-4", Status: domain.RunStatusFailed, Error: "OCR nie powiódł się dla dokumentu 2"},
		},
	}
	uc := NewRunAnalysisUseCase(gateway, RunConfig{PollInterval: time.Millisecond})

	_, err := uc.Run(context.Background(), runDocs(), nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "OCR nie powiódł się dla dokumentu 2" {
		t.Fatalf("error = %q", err.Error())
	}
	var pipelineErr *domain.PipelineError
	if !errors.As(err, &pipelineErr) {
		t.Fatalf("expected PipelineError, got %T", err)
	}
	if !errors.Is(err, domain.ErrPipelineFailed) {
		t.Fatalf("expected pipeline failed kind")
	}
}

func TestRunFailureWithoutMessageUsesGenericText(t *testing.T) {
	gateway := &gatewayFake{
		triggerResp: domain.RunResponse{CaseID: "CASE-5", Status: domain.RunStatusQueued},
		statuses: []domain.StatusResponse{
			{CaseID: "CASE-5", Status: domain.RunStatusFailed, Error: "   "},
		},
	}
	uc := NewRunAnalysisUseCase(gateway, RunConfig{PollInterval: time.Millisecond})

	_, err := uc.Run(context.Background(), runDocs(), nil)
	if err == nil || err.Error() != genericFailureMessage {
		t.Fatalf("error = %v, want %q", err, genericFailureMessage)
	}
}

func TestRunCancellationStopsPolling(t *testing.T) {
	gateway := &gatewayFake{
		triggerResp: domain.RunResponse{CaseID: "CASE-6", Status: domain.RunStatusQueued},
		statuses: []domain.StatusResponse{
			{CaseID: "CASE-6", Status: domain.RunStatusRunning},
		},
	}
	uc := NewRunAnalysisUseCase(gateway, RunConfig{PollInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := uc.Run(ctx, runDocs(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunMaxWaitBoundsTheRun(t *testing.T) {
	gateway := &gatewayFake{
		triggerResp: domain.RunResponse{CaseID: "CASE-7", Status: domain.RunStatusQueued},
		statuses: []domain.StatusResponse{
			{CaseID: "CASE-7", Status: domain.RunStatusRunning},
		},
	}
	uc := NewRunAnalysisUseCase(gateway, RunConfig{PollInterval: time.Millisecond, MaxWait: 25 * time.Millisecond})

	_, err := uc.Run(context.Background(), runDocs(), nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

type runMetricsFake struct {
	started  int
	finished int
	outcome  string
	duration time.Duration
	polls    int
}

func (f *runMetricsFake) StartRun() {
	f.started++
}

func (f *runMetricsFake) FinishRun(outcome string, duration time.Duration, polls int) {
	f.finished++
	f.outcome = outcome
	f.duration = duration
	f.polls = polls
}

func TestRunObservesCompletedRunMetrics(t *testing.T) {
	gateway := &gatewayFake{
		triggerResp: domain.RunResponse{CaseID: "CASE-8", Status: domain.RunStatusQueued, Stage: "received"},
		statuses: []domain.StatusResponse{
			{CaseID: "CASE-8", Status: domain.RunStatusRunning, Stage: "ocr"},
			{CaseID: "CASE-8", Status: domain.RunStatusRunning, Stage: "legal_reasoning"},
			completedStatus("CASE-8"),
		},
	}
	observed := &runMetricsFake{}
	uc := NewRunAnalysisUseCase(gateway, RunConfig{PollInterval: time.Millisecond, Metrics: observed})

	if _, err := uc.Run(context.Background(), runDocs(), nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if observed.started != 1 || observed.finished != 1 {
		t.Fatalf("started = %d, finished = %d, want 1 and 1", observed.started, observed.finished)
	}
	if observed.outcome != RunOutcomeCompleted {
		t.Fatalf("outcome = %q, want %q", observed.outcome, RunOutcomeCompleted)
	}
	if observed.polls != 3 {
		t.Fatalf("polls = %d, want 3", observed.polls)
	}
	if observed.duration <= 0 {
		t.Fatalf("duration = %v, want > 0", observed.duration)
	}
}

func TestRunObservesFailureOutcome(t *testing.T) {
	gateway := &gatewayFake{
		triggerResp: domain.RunResponse{CaseID: "CASE-9", Status: domain.RunStatusQueued},
		statuses: []domain.StatusResponse{
			{CaseID: "CASE-9", Status: domain.RunStatusFailed, Error: "OCR nie powiódł się"},
		},
	}
	observed := &runMetricsFake{}
	uc := NewRunAnalysisUseCase(gateway, RunConfig{PollInterval: time.Millisecond, Metrics: observed})

	if _, err := uc.Run(context.Background(), runDocs(), nil); err == nil {
		t.Fatalf("expected error")
	}
	if observed.outcome != RunOutcomeFailed {
		t.Fatalf("outcome = %q, want %q", observed.outcome, RunOutcomeFailed)
	}
	if observed.polls != 1 {
		t.Fatalf("polls = %d, want 1", observed.polls)
	}
}

func TestRunObservesTransportErrorOutcome(t *testing.T) {
	observed := &runMetricsFake{}
	gateway := &gatewayFake{triggerErr: errors.New("connect refused")}
	uc := NewRunAnalysisUseCase(gateway, RunConfig{PollInterval: time.Millisecond, Metrics: observed})

	if _, err := uc.Run(context.Background(), runDocs(), nil); err == nil {
		t.Fatalf("expected error")
	}
	if observed.outcome != RunOutcomeError {
		t.Fatalf("outcome = %q, want %q", observed.outcome, RunOutcomeError)
	}
	if observed.polls != 0 {
		t.Fatalf("polls = %d, want 0", observed.polls)
	}
}

func TestRunTriggerErrorIsWrapped(t *testing.T) {
	gateway := &gatewayFake{triggerErr: errors.New("connect refused")}
	uc := NewRunAnalysisUseCase(gateway, RunConfig{PollInterval: time.Millisecond})

	_, err := uc.Run(context.Background(), runDocs(), nil)
	if err == nil || !errors.Is(err, gateway.triggerErr) {
		t.Fatalf("expected wrapped trigger error, got %v", err)
	}
}
