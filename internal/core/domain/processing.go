package domain

// ProcessingStage is one of the three display slots of the processing view.
type ProcessingStage string

const (
	StageOCR        ProcessingStage = "ocr"
	StageAnalysis   ProcessingStage = "analysis"
	StageGeneration ProcessingStage = "generation"
)

// Stages lists the display slots in visual order.
var Stages = []ProcessingStage{StageOCR, StageAnalysis, StageGeneration}

type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusInProgress ProcessingStatus = "in_progress"
	StatusCompleted  ProcessingStatus = "completed"
	StatusError      ProcessingStatus = "error"
)

// ProcessingState holds one status per display slot plus the user-visible
// error message of a failed run.
type ProcessingState struct {
	OCR        ProcessingStatus `json:"ocr"`
	Analysis   ProcessingStatus `json:"analysis"`
	Generation ProcessingStatus `json:"generation"`
	Error      string           `json:"error,omitempty"`
}

func NewProcessingState() ProcessingState {
	return ProcessingState{
		OCR:        StatusPending,
		Analysis:   StatusPending,
		Generation: StatusPending,
	}
}

func (s ProcessingState) Status(stage ProcessingStage) ProcessingStatus {
	switch stage {
	case StageOCR:
		return s.OCR
	case StageAnalysis:
		return s.Analysis
	case StageGeneration:
		return s.Generation
	}
	return StatusPending
}

func (s *ProcessingState) set(stage ProcessingStage, status ProcessingStatus) {
	switch stage {
	case StageOCR:
		s.OCR = status
	case StageAnalysis:
		s.Analysis = status
	case StageGeneration:
		s.Generation = status
	}
}

// StageMap translates the backend's single stage signal into statuses for
// the three display slots. The backend does not report the slots
// independently, so ingestion-phase stages collapse into a simultaneous
// ocr+analysis in-progress. Unknown stages leave the state untouched,
// which keeps the table forward-compatible with new backend stages.
type StageMap map[string]map[ProcessingStage]ProcessingStatus

// DefaultStageMap covers the stage strings the backend pipeline emits
// between receiving the files and generating the opinion.
func DefaultStageMap() StageMap {
	ingesting := map[ProcessingStage]ProcessingStatus{
		StageOCR:      StatusInProgress,
		StageAnalysis: StatusInProgress,
	}
	generating := map[ProcessingStage]ProcessingStatus{
		StageOCR:        StatusCompleted,
		StageAnalysis:   StatusCompleted,
		StageGeneration: StatusInProgress,
	}
	return StageMap{
		"received":           ingesting,
		"ocr":                ingesting,
		"classified_pending": ingesting,
		"classified":         ingesting,
		"extracting":         ingesting,
		"legal_reasoning":    ingesting,
		"opinion":            generating,
		"generation":         generating,
	}
}

// Apply folds one backend stage observation into the state. Returns true
// when the observation changed anything.
func (m StageMap) Apply(state *ProcessingState, backendStage string) bool {
	updates, ok := m[backendStage]
	if !ok {
		return false
	}
	changed := false
	for stage, status := range updates {
		if state.Status(stage) != status {
			state.set(stage, status)
			changed = true
		}
	}
	return changed
}
