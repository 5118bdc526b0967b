package domain

import (
	"encoding/json"
	"testing"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want bool
	}{
		{"nil", nil, false},
		{"bool true", true, true},
		{"bool false", false, false},
		{"tak", "tak", true},
		{"tak uppercase padded", "  TAK ", true},
		{"true string", "true", true},
		{"yes", "yes", true},
		{"one string", "1", true},
		{"nie", "nie", false},
		{"justification text", "zdarzenie miało charakter nagły", false},
		{"empty string", "", false},
		{"float nonzero", float64(2), true},
		{"float zero", float64(0), false},
		{"int nonzero", 3, true},
		{"int zero", 0, false},
		{"unsupported type", []string{"tak"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truthy(tc.in); got != tc.want {
				t.Fatalf("Truthy(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDecodeResultPayloadTolerantInput(t *testing.T) {
	if got := DecodeResultPayload(nil); got.Case != nil {
		t.Fatalf("expected empty payload for nil input")
	}
	if got := DecodeResultPayload(json.RawMessage(`not json`)); got.Case != nil {
		t.Fatalf("expected empty payload for malformed input")
	}
	if got := DecodeResultPayload(json.RawMessage(`{}`)); got.Case != nil {
		t.Fatalf("expected empty payload for empty object")
	}
}

func TestDecodeResultPayloadFullShape(t *testing.T) {
	raw := json.RawMessage(`{
		"case": {
			"case_id": "CASE-7",
			"zdarzenie": {"data_wypadku": "2026-01-12", "czynniki_zewnetrzne": ["śliska posadzka"]},
			"poszkodowany": {"imie": "Jan", "nazwisko": "Kowalski"},
			"uraz": {"rodzaj_urazu": "złamanie", "hospitalizacja": {"byla": true}},
			"swiadkowie": [{"imie": "Anna", "nazwisko": "Nowak"}],
			"ocena_definicji": {"naglosc": "tak", "zwiazek_z_praca": true},
			"rekomendacja": {"uznanie_wypadku": "tak"}
		},
		"opinion": "opinia prawna"
	}`)

	payload := DecodeResultPayload(raw)
	if payload.Case == nil {
		t.Fatalf("expected case payload")
	}
	if payload.Case.CaseID != "CASE-7" {
		t.Fatalf("unexpected case id %q", payload.Case.CaseID)
	}
	if payload.Case.Zdarzenie == nil || payload.Case.Zdarzenie.DataWypadku != "2026-01-12" {
		t.Fatalf("unexpected event payload %+v", payload.Case.Zdarzenie)
	}
	if len(payload.Case.Zdarzenie.CzynnikiZewnetrzne) != 1 {
		t.Fatalf("expected one external factor")
	}
	if payload.Case.Uraz == nil || payload.Case.Uraz.Hospitalizacja == nil || !payload.Case.Uraz.Hospitalizacja.Byla {
		t.Fatalf("unexpected injury payload %+v", payload.Case.Uraz)
	}
	if len(payload.Case.Swiadkowie) != 1 || payload.Case.Swiadkowie[0].Imie != "Anna" {
		t.Fatalf("unexpected witnesses %+v", payload.Case.Swiadkowie)
	}
	if !Truthy(payload.Case.OcenaDefinicji.ZwiazekZPraca) {
		t.Fatalf("expected truthy work relation")
	}
	if got, _ := payload.Opinion.(string); got != "opinia prawna" {
		t.Fatalf("unexpected opinion %v", payload.Opinion)
	}
}

func TestRunStatusTerminal(t *testing.T) {
	if !RunStatusCompleted.Terminal() || !RunStatusFailed.Terminal() {
		t.Fatalf("completed and failed must be terminal")
	}
	if RunStatusQueued.Terminal() || RunStatusRunning.Terminal() || RunStatus("ocr").Terminal() {
		t.Fatalf("non-terminal statuses reported terminal")
	}
}

func TestStatusResponseRunResponse(t *testing.T) {
	status := StatusResponse{
		CaseID: "CASE-1",
		Status: RunStatusCompleted,
		Stage:  "generation",
		Result: json.RawMessage(`{"case":{}}`),
		Error:  "ignored",
	}
	run := status.RunResponse()
	if run.CaseID != "CASE-1" || run.Status != RunStatusCompleted || run.Stage != "generation" {
		t.Fatalf("unexpected run response %+v", run)
	}
	if string(run.Result) != `{"case":{}}` {
		t.Fatalf("result not preserved")
	}
}
