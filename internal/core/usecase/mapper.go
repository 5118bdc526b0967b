package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
)

// Display placeholders. The mapper guarantees that every string field of the
// result carries either backend data or one of these, so renderers never
// need their own fallbacks.
const (
	placeholder = "-"

	warnHandwriting   = "Niektóre dokumenty są odręczne – OCR może być mniej dokładny."
	autoAssessment    = "Ocena automatyczna"
	legalBasisNote    = "Rekomendacja generowana automatycznie (wymaga weryfikacji)."
	noRecommendation  = "Brak szczegółowej rekomendacji – sprawdź wynik pipeline."
	factualPending    = "Opis zdarzenia zostanie uzupełniony po weryfikacji."
	conclusionPending = "Rekomendacja zostanie uzupełniona po weryfikacji."
)

// MapResult translates a raw backend response into a display-ready
// AnalysisResult. It is total: any payload shape, including an absent or
// malformed result, maps to placeholders rather than an error.
func MapResult(resp domain.RunResponse, docs []domain.UploadedDocument) domain.AnalysisResult {
	return mapResultAt(resp, docs, time.Now().UTC())
}

func mapResultAt(resp domain.RunResponse, docs []domain.UploadedDocument, now time.Time) domain.AnalysisResult {
	payload := domain.DecodeResultPayload(resp.Result)

	caseData := payload.Case
	if caseData == nil {
		caseData = &domain.CasePayload{}
	}
	event := caseData.Zdarzenie
	if event == nil {
		event = &domain.EventPayload{}
	}
	injured := caseData.Poszkodowany
	if injured == nil {
		injured = &domain.InjuredPersonPayload{}
	}
	injury := caseData.Uraz
	if injury == nil {
		injury = &domain.InjuryPayload{}
	}
	assessment := caseData.OcenaDefinicji
	if assessment == nil {
		assessment = &domain.AssessmentPayload{}
	}

	var recommendation any
	if caseData.Rekomendacja != nil {
		recommendation = caseData.Rekomendacja.UznanieWypadku
	}

	card := payload.CardPayload
	opinionText := textOf(payload.Opinion)

	var warnings []string
	if domain.AnyHandwritten(docs) {
		warnings = append(warnings, warnHandwriting)
	}

	isWorkAccident := domain.Truthy(recommendation)

	directEvent := firstNonEmpty(event.CzynnosciPrzedWypadkiem, cardText(card, "opis_okolicznosci"), placeholder)
	externalCause := firstNonEmpty(cardText(card, "rekomendacja"), placeholder)
	if len(event.CzynnikiZewnetrzne) > 0 {
		externalCause = strings.Join(event.CzynnikiZewnetrzne, ", ")
	}

	witnesses := make([]domain.Witness, 0, len(caseData.Swiadkowie))
	for _, w := range caseData.Swiadkowie {
		name := strings.TrimSpace(strings.TrimSpace(w.Imie) + " " + strings.TrimSpace(w.Nazwisko))
		witnesses = append(witnesses, domain.Witness{
			Name:    firstNonEmpty(name, placeholder),
			Address: firstNonEmpty(w.Adres, placeholder),
		})
	}

	evidence := placeholder
	if len(docs) > 0 {
		names := make([]string, 0, len(docs))
		for _, doc := range docs {
			names = append(names, doc.Name)
		}
		evidence = strings.Join(names, "\n")
	}

	return domain.AnalysisResult{
		CaseID:          firstNonEmpty(resp.CaseID, caseData.CaseID, fmt.Sprintf("CASE-%d", now.UnixMilli())),
		Timestamp:       now,
		QualityWarnings: warnings,
		AccidentCard: domain.AccidentCard{
			InjuredPerson: domain.InjuredPerson{
				FirstName: firstNonEmpty(injured.Imie, placeholder),
				LastName:  firstNonEmpty(injured.Nazwisko, placeholder),
				PESEL:     firstNonEmpty(injured.PESEL, placeholder),
				BirthDate: firstNonEmpty(injured.DataUrodzenia, placeholder),
				Address:   firstNonEmpty(injured.Adres, placeholder),
				Position:  firstNonEmpty(injured.RodzajDzialalnosci, placeholder),
			},
			// The backend extracts no employer identity in this version;
			// the section is always emitted as placeholders.
			Employer: domain.Employer{
				Name:    placeholder,
				NIP:     placeholder,
				REGON:   placeholder,
				Address: placeholder,
				PKD:     placeholder,
			},
			Accident: domain.Accident{
				Date:                   firstNonEmpty(event.DataWypadku, cardText(card, "data_wypadku"), placeholder),
				Time:                   firstNonEmpty(event.GodzinaWypadku, placeholder),
				Place:                  firstNonEmpty(event.MiejsceWypadku, cardText(card, "miejsce_wypadku"), placeholder),
				PlaceType:              placeholder,
				ActivityDuringAccident: firstNonEmpty(event.OpisOkolicznosci, directEvent, placeholder),
				DirectEvent:            directEvent,
				ExternalCause:          externalCause,
			},
			Injury: domain.Injury{
				Type:             firstNonEmpty(injury.RodzajUrazu, cardText(card, "rodzaj_urazu"), placeholder),
				BodyPart:         firstNonEmpty(injury.NarzadDotkniety, placeholder),
				Description:      firstNonEmpty(injury.OpisMedyczny, placeholder),
				FirstAidProvided: injury.Hospitalizacja != nil && injury.Hospitalizacja.Byla,
			},
			Witnesses: witnesses,
			Qualification: domain.Qualification{
				IsWorkAccident: isWorkAccident,
				Justification: firstNonEmpty(
					textOf(assessment.ZwiazekZPraca),
					textOf(assessment.PrzyczynaZewnetrzna),
					textOf(assessment.Naglosc),
					textOf(assessment.Uraz),
					opinionText,
					noRecommendation,
				),
				LegalBasis: legalBasisNote,
			},
		},
		Opinion: domain.Opinion{
			FactualState:     firstNonEmpty(event.OpisOkolicznosci, opinionText, factualPending),
			EvidenceMaterial: evidence,
			DefinitionAnalysis: domain.DefinitionAnalysis{
				Suddenness:    definitionElement(assessment.Naglosc),
				ExternalCause: definitionElement(assessment.PrzyczynaZewnetrzna),
				Injury:        definitionElement(assessment.Uraz),
				WorkRelation:  definitionElement(assessment.ZwiazekZPraca),
			},
			Conclusion: domain.Conclusion{
				IsWorkAccident: isWorkAccident,
				Summary:        firstNonEmpty(opinionText, textOf(recommendation), conclusionPending),
			},
		},
	}
}

func definitionElement(v any) domain.DefinitionElement {
	return domain.DefinitionElement{
		Met:           domain.Truthy(v),
		Justification: firstNonEmpty(textOf(v), autoAssessment),
	}
}

// textOf extracts a usable string from an untyped payload value. Only real
// strings count; booleans and numbers carry no justification text.
func textOf(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func cardText(card map[string]any, key string) string {
	if card == nil {
		return ""
	}
	return textOf(card[key])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
