package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
)

const (
	cardSheet    = "Karta wypadku"
	opinionSheet = "Opinia"
)

// ExcelExporter renders a mapped analysis result into an XLSX workbook for
// offline review: one sheet for the accident card, one for the opinion.
// The mapper guarantees non-empty fields, so the export never needs its
// own fallbacks.
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Export(result domain.AnalysisResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", cardSheet)
	if _, err := f.NewSheet(opinionSheet); err != nil {
		return nil, fmt.Errorf("create opinion sheet: %w", err)
	}

	if err := writeRows(f, cardSheet, cardRows(result)); err != nil {
		return nil, err
	}
	if err := writeRows(f, opinionSheet, opinionRows(result)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func cardRows(result domain.AnalysisResult) [][]any {
	card := result.AccidentCard
	rows := [][]any{
		{"Numer sprawy", result.CaseID},
		{"Data analizy", result.Timestamp.Format(time.RFC3339)},
		{},
		{"I. Poszkodowany"},
		{"Imię", card.InjuredPerson.FirstName},
		{"Nazwisko", card.InjuredPerson.LastName},
		{"PESEL", card.InjuredPerson.PESEL},
		{"Data urodzenia", card.InjuredPerson.BirthDate},
		{"Adres", card.InjuredPerson.Address},
		{"Stanowisko / działalność", card.InjuredPerson.Position},
		{},
		{"II. Pracodawca"},
		{"Nazwa", card.Employer.Name},
		{"NIP", card.Employer.NIP},
		{"REGON", card.Employer.REGON},
		{"Adres", card.Employer.Address},
		{"PKD", card.Employer.PKD},
		{},
		{"III. Wypadek"},
		{"Data", card.Accident.Date},
		{"Godzina", card.Accident.Time},
		{"Miejsce", card.Accident.Place},
		{"Rodzaj miejsca", card.Accident.PlaceType},
		{"Czynność w chwili wypadku", card.Accident.ActivityDuringAccident},
		{"Wydarzenie bezpośrednie", card.Accident.DirectEvent},
		{"Przyczyna zewnętrzna", card.Accident.ExternalCause},
		{},
		{"IV. Uraz"},
		{"Rodzaj", card.Injury.Type},
		{"Część ciała", card.Injury.BodyPart},
		{"Opis", card.Injury.Description},
		{"Udzielono pierwszej pomocy", yesNo(card.Injury.FirstAidProvided)},
		{},
		{"V. Świadkowie"},
	}
	if len(card.Witnesses) == 0 {
		rows = append(rows, []any{"Brak świadków"})
	}
	for i, witness := range card.Witnesses {
		rows = append(rows, []any{fmt.Sprintf("Świadek %d", i+1), witness.Name, witness.Address})
	}
	rows = append(rows,
		[]any{},
		[]any{"VI. Kwalifikacja"},
		[]any{"Wypadek przy pracy", yesNo(card.Qualification.IsWorkAccident)},
		[]any{"Uzasadnienie", card.Qualification.Justification},
		[]any{"Podstawa prawna", card.Qualification.LegalBasis},
	)
	if len(result.QualityWarnings) > 0 {
		rows = append(rows,
			[]any{},
			[]any{"Ostrzeżenia", strings.Join(result.QualityWarnings, "\n")},
		)
	}
	return rows
}

func opinionRows(result domain.AnalysisResult) [][]any {
	opinion := result.Opinion
	analysis := opinion.DefinitionAnalysis
	return [][]any{
		{"Stan faktyczny", opinion.FactualState},
		{"Materiał dowodowy", opinion.EvidenceMaterial},
		{},
		{"Analiza definicji wypadku"},
		{"Nagłość", metLabel(analysis.Suddenness.Met), analysis.Suddenness.Justification},
		{"Przyczyna zewnętrzna", metLabel(analysis.ExternalCause.Met), analysis.ExternalCause.Justification},
		{"Uraz", metLabel(analysis.Injury.Met), analysis.Injury.Justification},
		{"Związek z pracą", metLabel(analysis.WorkRelation.Met), analysis.WorkRelation.Justification},
		{},
		{"Wniosek", yesNo(opinion.Conclusion.IsWorkAccident)},
		{"Podsumowanie", opinion.Conclusion.Summary},
	}
}

func yesNo(v bool) string {
	if v {
		return "tak"
	}
	return "nie"
}

func metLabel(met bool) string {
	if met {
		return "spełniona"
	}
	return "niespełniona"
}
