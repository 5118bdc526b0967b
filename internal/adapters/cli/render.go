package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
)

var stageLabels = map[domain.ProcessingStage]string{
	domain.StageOCR:        "OCR dokumentów",
	domain.StageAnalysis:   "Analiza prawna",
	domain.StageGeneration: "Generowanie karty i opinii",
}

var statusLabels = map[domain.ProcessingStatus]string{
	domain.StatusPending:    "oczekuje",
	domain.StatusInProgress: "w toku",
	domain.StatusCompleted:  "zakończono",
	domain.StatusError:      "błąd",
}

// StageRenderer prints processing view transitions to a terminal. It is
// handed to the tracker as the OnChange callback and only prints slots
// whose status actually moved since the previous notification.
type StageRenderer struct {
	mu   sync.Mutex
	out  io.Writer
	last domain.ProcessingState
}

func NewStageRenderer(out io.Writer) *StageRenderer {
	return &StageRenderer{
		out:  out,
		last: domain.NewProcessingState(),
	}
}

func (r *StageRenderer) OnChange(state domain.ProcessingState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stage := range domain.Stages {
		status := state.Status(stage)
		if status == r.last.Status(stage) {
			continue
		}
		fmt.Fprintf(r.out, "%-28s %s\n", stageLabels[stage], statusLabels[status])
	}
	if state.Error != "" && state.Error != r.last.Error {
		fmt.Fprintf(r.out, "Błąd analizy: %s\n", state.Error)
	}
	r.last = state
}
