package ports

import (
	"context"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
)

// AnalysisRunner is the inbound contract for driving one analysis run to a
// terminal state. onStage receives every backend stage observation in order;
// it may be nil.
type AnalysisRunner interface {
	Run(ctx context.Context, documents []domain.UploadedDocument, onStage func(stage string)) (domain.AnalysisResult, error)
}

// CaseReader is the inbound read model the case list/detail views consume.
type CaseReader interface {
	GetByID(ctx context.Context, caseID string) (*domain.CaseRecord, error)
	List(ctx context.Context, limit int) ([]domain.CaseRecord, error)
}

// ResultPersister stores a completed analysis for later review.
type ResultPersister interface {
	Persist(ctx context.Context, result domain.AnalysisResult) error
}
