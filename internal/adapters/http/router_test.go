package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
)

type caseReaderFake struct {
	records []domain.CaseRecord
	listErr error

	gotLimit int
}

func (f *caseReaderFake) GetByID(_ context.Context, caseID string) (*domain.CaseRecord, error) {
	for i := range f.records {
		if f.records[i].CaseID == caseID {
			return &f.records[i], nil
		}
	}
	return nil, domain.WrapError(domain.ErrCaseNotFound, "fetch case", errors.New("no rows"))
}

func (f *caseReaderFake) List(_ context.Context, limit int) ([]domain.CaseRecord, error) {
	f.gotLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func newTestHandler(cases *caseReaderFake) http.Handler {
	return NewRouter(cases, nil).Handler()
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(&caseReaderFake{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestListCases(t *testing.T) {
	cases := &caseReaderFake{records: []domain.CaseRecord{{CaseID: "CASE-1"}, {CaseID: "CASE-2"}}}
	rec := httptest.NewRecorder()
	newTestHandler(cases).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cases?limit=10", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if cases.gotLimit != 10 {
		t.Fatalf("limit = %d", cases.gotLimit)
	}

	var got []domain.CaseRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got) != 2 || got[0].CaseID != "CASE-1" {
		t.Fatalf("body = %+v", got)
	}
}

func TestListCasesEmptyIsJSONArray(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(&caseReaderFake{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cases", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "[]\n" {
		t.Fatalf("body = %q, want empty JSON array", rec.Body.String())
	}
}

func TestListCasesInvalidLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(&caseReaderFake{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cases?limit=abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListCasesMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(&caseReaderFake{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cases", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetCaseByID(t *testing.T) {
	cases := &caseReaderFake{records: []domain.CaseRecord{{CaseID: "CASE-1", Qualified: true}}}
	rec := httptest.NewRecorder()
	newTestHandler(cases).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cases/CASE-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got domain.CaseRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.CaseID != "CASE-1" || !got.Qualified {
		t.Fatalf("body = %+v", got)
	}
}

func TestGetCaseByIDNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(&caseReaderFake{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cases/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetCaseByIDMissingID(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(&caseReaderFake{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cases/", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListCasesTemporaryErrorMapsTo503(t *testing.T) {
	cases := &caseReaderFake{listErr: domain.WrapError(domain.ErrTemporary, "list cases", errors.New("db down"))}
	rec := httptest.NewRecorder()
	newTestHandler(cases).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cases", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}
