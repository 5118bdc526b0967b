package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
	"github.com/mkowalczyk/zus-accident-assistant/internal/core/ports"
)

// PersistResultUseCase stores a completed analysis in the case store so the
// review screens can list and reopen it.
type PersistResultUseCase struct {
	repo ports.CaseRepository
}

func NewPersistResultUseCase(repo ports.CaseRepository) *PersistResultUseCase {
	return &PersistResultUseCase{repo: repo}
}

func (uc *PersistResultUseCase) Persist(ctx context.Context, result domain.AnalysisResult) error {
	if result.CaseID == "" {
		return domain.WrapError(domain.ErrInvalidInput, "persist result", errors.New("empty case id"))
	}
	if err := uc.repo.Create(ctx, domain.NewCaseRecord(result)); err != nil {
		return fmt.Errorf("save case record: %w", err)
	}
	return nil
}
