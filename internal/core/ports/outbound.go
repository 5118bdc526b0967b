package ports

import (
	"context"
	"io"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
)

// PipelineGateway talks to the external analysis backend.
type PipelineGateway interface {
	Trigger(ctx context.Context, documents []domain.UploadedDocument) (domain.RunResponse, error)
	Status(ctx context.Context, caseID string) (domain.StatusResponse, error)
}

// CaseRepository persists and reads completed cases.
type CaseRepository interface {
	Create(ctx context.Context, record domain.CaseRecord) error
	GetByID(ctx context.Context, caseID string) (*domain.CaseRecord, error)
	List(ctx context.Context, limit int) ([]domain.CaseRecord, error)
	UpdateStatus(ctx context.Context, caseID string, status domain.CaseStatus) error
}

// EventPublisher announces completed analysis runs.
type EventPublisher interface {
	PublishAnalysisCompleted(ctx context.Context, result domain.AnalysisResult) error
}

// EventSubscriber consumes completed-run announcements. The handler is
// invoked once per event; the call blocks until ctx is done.
type EventSubscriber interface {
	SubscribeAnalysisCompleted(ctx context.Context, handler func(context.Context, domain.AnalysisResult) error) error
}

// ObjectStorage keeps staged source files and exported reports.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// DocumentProber inspects a source file before submission.
type DocumentProber interface {
	Probe(name string, payload []byte) domain.DocumentProbe
}

// ResultExporter renders a mapped result into a reviewable report file.
type ResultExporter interface {
	Export(result domain.AnalysisResult) ([]byte, error)
}
