package domain

import "time"

// CaseStatus tracks a stored case through its lifecycle. Persisted cases
// start completed; a re-submission moves the row back to processing until
// the new result lands.
type CaseStatus string

const (
	CaseStatusProcessing CaseStatus = "processing"
	CaseStatusCompleted  CaseStatus = "completed"
	CaseStatusFailed     CaseStatus = "failed"
)

// CaseRecord is the persisted view of a completed analysis, as served to
// the case list/detail screens.
type CaseRecord struct {
	CaseID             string         `json:"case_id"`
	Status             CaseStatus     `json:"status"`
	Qualified          bool           `json:"qualified"`
	HandwritingWarning bool           `json:"handwriting_warning"`
	Result             AnalysisResult `json:"result"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func NewCaseRecord(result AnalysisResult) CaseRecord {
	now := time.Now().UTC()
	return CaseRecord{
		CaseID:             result.CaseID,
		Status:             CaseStatusCompleted,
		Qualified:          result.AccidentCard.Qualification.IsWorkAccident,
		HandwritingWarning: len(result.QualityWarnings) > 0,
		Result:             result,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
