package pipeline

import (
	"encoding/json"
	"log/slog"

	"github.com/getkin/kin-openapi/openapi3"
)

// resultSchema makes the expected shape of the backend's free-form result
// payload explicit. Every field is optional and nullable; the check is
// advisory only: a mismatch is logged and the payload still flows to the
// mapper, which degrades missing or malformed fields to placeholders.
var resultSchema = buildResultSchema()

func buildResultSchema() *openapi3.Schema {
	str := openapi3.NewStringSchema().WithNullable()
	strList := openapi3.NewArraySchema().WithItems(str).WithNullable()

	event := openapi3.NewObjectSchema().
		WithProperty("data_wypadku", str).
		WithProperty("godzina_wypadku", str).
		WithProperty("miejsce_wypadku", str).
		WithProperty("opis_okolicznosci", str).
		WithProperty("czynnosci_przed_wypadkiem", str).
		WithProperty("czynniki_zewnetrzne", strList).
		WithNullable()

	injured := openapi3.NewObjectSchema().
		WithProperty("imie", str).
		WithProperty("nazwisko", str).
		WithProperty("PESEL", str).
		WithProperty("data_urodzenia", str).
		WithProperty("adres", str).
		WithProperty("rodzaj_dzialalnosci", str).
		WithNullable()

	hospitalization := openapi3.NewObjectSchema().
		WithProperty("byla", openapi3.NewBoolSchema().WithNullable()).
		WithNullable()

	injury := openapi3.NewObjectSchema().
		WithProperty("rodzaj_urazu", str).
		WithProperty("narzad_dotkniety", str).
		WithProperty("opis_medyczny", str).
		WithProperty("hospitalizacja", hospitalization).
		WithNullable()

	witness := openapi3.NewObjectSchema().
		WithProperty("imie", str).
		WithProperty("nazwisko", str).
		WithProperty("adres", str).
		WithNullable()

	// ocena_definicji and rekomendacja mix booleans and free text per
	// field, so their properties stay untyped.
	caseSchema := openapi3.NewObjectSchema().
		WithProperty("case_id", str).
		WithProperty("zdarzenie", event).
		WithProperty("poszkodowany", injured).
		WithProperty("uraz", injury).
		WithProperty("swiadkowie", openapi3.NewArraySchema().WithItems(witness).WithNullable()).
		WithProperty("ocena_definicji", openapi3.NewObjectSchema().WithNullable()).
		WithProperty("rekomendacja", openapi3.NewObjectSchema().WithNullable()).
		WithNullable()

	return openapi3.NewObjectSchema().
		WithProperty("case", caseSchema).
		WithProperty("card_payload", openapi3.NewObjectSchema().WithNullable()).
		WithProperty("opinion", str).
		WithNullable()
}

func validateResultPayload(caseID string, raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		slog.Warn("pipeline result is not valid json", "case_id", caseID, "error", err)
		return
	}
	if err := resultSchema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		slog.Warn("pipeline result shape mismatch", "case_id", caseID, "error", err)
	}
}
