package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
	"github.com/mkowalczyk/zus-accident-assistant/internal/core/ports"
)

const (
	defaultPollInterval = 1200 * time.Millisecond

	genericFailureMessage = "Pipeline failed"
)

// Run outcomes as reported to RunMetrics. A backend-reported failure is
// "failed"; transport and cancellation problems are "error".
const (
	RunOutcomeCompleted = "completed"
	RunOutcomeFailed    = "failed"
	RunOutcomeError     = "error"
)

// RunMetrics receives lifecycle observations for analysis runs.
type RunMetrics interface {
	StartRun()
	FinishRun(outcome string, duration time.Duration, polls int)
}

// RunConfig bounds one analysis run. MaxWait zero means the run polls until
// the job ends or the caller's context is cancelled. Metrics is optional.
type RunConfig struct {
	PollInterval time.Duration
	MaxWait      time.Duration
	Metrics      RunMetrics
}

// RunAnalysisUseCase owns the full lifecycle of one analysis run: trigger,
// sequential status polling, terminal-state handling and result mapping.
// It performs no automatic retries; retry is a user-initiated action one
// layer up.
type RunAnalysisUseCase struct {
	gateway ports.PipelineGateway
	cfg     RunConfig
}

func NewRunAnalysisUseCase(gateway ports.PipelineGateway, cfg RunConfig) *RunAnalysisUseCase {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return &RunAnalysisUseCase{gateway: gateway, cfg: cfg}
}

func (uc *RunAnalysisUseCase) Run(
	ctx context.Context,
	documents []domain.UploadedDocument,
	onStage func(stage string),
) (domain.AnalysisResult, error) {
	if len(documents) == 0 {
		return domain.AnalysisResult{}, domain.WrapError(domain.ErrInvalidInput, "run analysis", errors.New("no documents provided"))
	}
	if uc.cfg.MaxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.MaxWait)
		defer cancel()
	}

	report := func(stage string) {
		if stage != "" && onStage != nil {
			onStage(stage)
		}
	}

	start := time.Now()
	polls := 0
	finish := func(outcome string) {
		if uc.cfg.Metrics != nil {
			uc.cfg.Metrics.FinishRun(outcome, time.Since(start), polls)
		}
	}
	if uc.cfg.Metrics != nil {
		uc.cfg.Metrics.StartRun()
	}

	runResp, err := uc.gateway.Trigger(ctx, documents)
	if err != nil {
		finish(RunOutcomeError)
		return domain.AnalysisResult{}, fmt.Errorf("trigger analysis: %w", err)
	}
	report(runResp.Stage)

	// Fast path: the backend completed synchronously.
	if runResp.Status == domain.RunStatusCompleted && len(runResp.Result) > 0 {
		finish(RunOutcomeCompleted)
		return MapResult(runResp, documents), nil
	}

	// One token per interval; spending the initial token makes the first
	// status fetch wait a full interval after the trigger. Wait is
	// context-aware, so cancellation interrupts the pause immediately.
	pacer := rate.NewLimiter(rate.Every(uc.cfg.PollInterval), 1)
	pacer.Allow()

	for {
		if err := pacer.Wait(ctx); err != nil {
			finish(RunOutcomeError)
			return domain.AnalysisResult{}, fmt.Errorf("await next poll: %w", err)
		}

		polls++
		status, err := uc.gateway.Status(ctx, runResp.CaseID)
		if err != nil {
			finish(RunOutcomeError)
			return domain.AnalysisResult{}, fmt.Errorf("fetch analysis status: %w", err)
		}
		report(status.Stage)

		switch {
		case status.Status == domain.RunStatusFailed:
			msg := strings.TrimSpace(status.Error)
			if msg == "" {
				msg = genericFailureMessage
			}
			finish(RunOutcomeFailed)
			return domain.AnalysisResult{}, &domain.PipelineError{Message: msg}
		case status.Status == domain.RunStatusCompleted && len(status.Result) > 0:
			finish(RunOutcomeCompleted)
			return MapResult(status.RunResponse(), documents), nil
		}
	}
}
