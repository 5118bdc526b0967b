package domain

import (
	"encoding/json"
	"strings"
)

// RunStatus values reported by the analysis backend. The set is open: the
// backend may add statuses, so consumers must only branch on the terminal
// ones and treat everything else as still running.
type RunStatus string

const (
	RunStatusQueued    RunStatus = "queued"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

func (s RunStatus) Terminal() bool {
	return s == RunStatusCompleted || s == RunStatusFailed
}

// RunResponse is the backend's reply to starting an analysis job.
type RunResponse struct {
	CaseID string          `json:"case_id"`
	Status RunStatus       `json:"status"`
	Stage  string          `json:"stage,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// StatusResponse is one observation of a running job.
type StatusResponse struct {
	CaseID string          `json:"case_id"`
	Status RunStatus       `json:"status"`
	Stage  string          `json:"stage,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// RunResponse converts a status observation into the run-shaped view the
// mapper consumes, preserving case id, status and stage.
func (s StatusResponse) RunResponse() RunResponse {
	return RunResponse{
		CaseID: s.CaseID,
		Status: s.Status,
		Stage:  s.Stage,
		Result: s.Result,
	}
}

// ResultPayload mirrors the backend's free-form result object. Every field
// is optional; the shape is owned by the backend and only ever read through
// DecodeResultPayload, which tolerates any input.
type ResultPayload struct {
	Case        *CasePayload   `json:"case,omitempty"`
	CardPayload map[string]any `json:"card_payload,omitempty"`
	Opinion     any            `json:"opinion,omitempty"`
}

type CasePayload struct {
	CaseID         string                 `json:"case_id,omitempty"`
	Zdarzenie      *EventPayload          `json:"zdarzenie,omitempty"`
	Poszkodowany   *InjuredPersonPayload  `json:"poszkodowany,omitempty"`
	Uraz           *InjuryPayload         `json:"uraz,omitempty"`
	Swiadkowie     []WitnessPayload       `json:"swiadkowie,omitempty"`
	OcenaDefinicji *AssessmentPayload     `json:"ocena_definicji,omitempty"`
	Rekomendacja   *RecommendationPayload `json:"rekomendacja,omitempty"`
}

type EventPayload struct {
	DataWypadku             string   `json:"data_wypadku,omitempty"`
	GodzinaWypadku          string   `json:"godzina_wypadku,omitempty"`
	MiejsceWypadku          string   `json:"miejsce_wypadku,omitempty"`
	OpisOkolicznosci        string   `json:"opis_okolicznosci,omitempty"`
	CzynnosciPrzedWypadkiem string   `json:"czynnosci_przed_wypadkiem,omitempty"`
	CzynnikiZewnetrzne      []string `json:"czynniki_zewnetrzne,omitempty"`
}

type InjuredPersonPayload struct {
	Imie               string `json:"imie,omitempty"`
	Nazwisko           string `json:"nazwisko,omitempty"`
	PESEL              string `json:"PESEL,omitempty"`
	DataUrodzenia      string `json:"data_urodzenia,omitempty"`
	Adres              string `json:"adres,omitempty"`
	RodzajDzialalnosci string `json:"rodzaj_dzialalnosci,omitempty"`
}

type InjuryPayload struct {
	RodzajUrazu     string                  `json:"rodzaj_urazu,omitempty"`
	NarzadDotkniety string                  `json:"narzad_dotkniety,omitempty"`
	OpisMedyczny    string                  `json:"opis_medyczny,omitempty"`
	Hospitalizacja  *HospitalizationPayload `json:"hospitalizacja,omitempty"`
}

type HospitalizationPayload struct {
	Byla bool `json:"byla,omitempty"`
}

type WitnessPayload struct {
	Imie     string `json:"imie,omitempty"`
	Nazwisko string `json:"nazwisko,omitempty"`
	Adres    string `json:"adres,omitempty"`
}

// AssessmentPayload carries the per-element legal assessment. The backend
// uses the same field both as justification text and as a truthy marker, so
// values stay untyped and go through Truthy.
type AssessmentPayload struct {
	Naglosc             any `json:"naglosc,omitempty"`
	PrzyczynaZewnetrzna any `json:"przyczyna_zewnetrzna,omitempty"`
	Uraz                any `json:"uraz,omitempty"`
	ZwiazekZPraca       any `json:"zwiazek_z_praca,omitempty"`
}

type RecommendationPayload struct {
	UznanieWypadku any `json:"uznanie_wypadku,omitempty"`
}

// Truthy normalizes the backend's heterogeneous yes/no representations.
// Strings count as true only when they spell an affirmative marker; free
// justification text is not an affirmation.
func Truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "tak", "true", "yes", "1":
			return true
		}
		return false
	case float64:
		return value != 0
	case int:
		return value != 0
	}
	return false
}

// DecodeResultPayload parses a raw result payload. Absent, empty or
// malformed input yields an empty payload, never an error: shape problems
// degrade to placeholders downstream.
func DecodeResultPayload(raw json.RawMessage) ResultPayload {
	var payload ResultPayload
	if len(raw) == 0 {
		return payload
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ResultPayload{}
	}
	return payload
}
