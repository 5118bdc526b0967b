package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
	"github.com/mkowalczyk/zus-accident-assistant/internal/core/ports"
)

// DocumentSpec is one parsed positional argument in path[:type[:form]]
// form. Type and Form stay empty when the argument did not set them.
type DocumentSpec struct {
	Path string
	Type domain.DocumentType
	Form domain.DocumentForm
}

var documentTypes = map[string]domain.DocumentType{
	"notification": domain.DocTypeNotification,
	"explanation":  domain.DocTypeExplanation,
	"medical":      domain.DocTypeMedical,
	"police":       domain.DocTypePolice,
	"prosecutor":   domain.DocTypeProsecutor,
	"other":        domain.DocTypeOther,
}

var documentForms = map[string]domain.DocumentForm{
	"handwritten": domain.FormHandwritten,
	"printed":     domain.FormPrinted,
}

// ParseSpec parses a positional document argument. The path may contain
// colons only on Windows drive prefixes, which are not supported here;
// everything after the first colon is treated as type and form.
func ParseSpec(arg string) (DocumentSpec, error) {
	parts := strings.Split(arg, ":")
	if len(parts) > 3 {
		return DocumentSpec{}, fmt.Errorf("argument %q: want path[:type[:form]]", arg)
	}

	spec := DocumentSpec{Path: parts[0]}
	if spec.Path == "" {
		return DocumentSpec{}, fmt.Errorf("argument %q: empty path", arg)
	}

	if len(parts) > 1 && parts[1] != "" {
		docType, ok := documentTypes[strings.ToLower(parts[1])]
		if !ok {
			return DocumentSpec{}, fmt.Errorf("argument %q: unknown document type %q", arg, parts[1])
		}
		spec.Type = docType
	}
	if len(parts) > 2 && parts[2] != "" {
		form, ok := documentForms[strings.ToLower(parts[2])]
		if !ok {
			return DocumentSpec{}, fmt.Errorf("argument %q: unknown document form %q", arg, parts[2])
		}
		spec.Form = form
	}
	return spec, nil
}

// LoadDocuments reads the files named by the specs and fills in missing
// type and form. An unset type defaults to "other"; an unset form follows
// the probe suggestion and falls back to printed.
func LoadDocuments(specs []DocumentSpec, prober ports.DocumentProber) ([]domain.UploadedDocument, error) {
	documents := make([]domain.UploadedDocument, 0, len(specs))
	for _, spec := range specs {
		payload, err := os.ReadFile(spec.Path)
		if err != nil {
			return nil, fmt.Errorf("read document %s: %w", spec.Path, err)
		}

		doc := domain.UploadedDocument{
			ID:      uuid.NewString(),
			Payload: payload,
			Name:    filepath.Base(spec.Path),
			Type:    spec.Type,
			Form:    spec.Form,
		}
		if doc.Type == "" {
			doc.Type = domain.DocTypeOther
		}
		if doc.Form == "" {
			doc.Form = domain.FormPrinted
			if probe := prober.Probe(doc.Name, payload); probe.SuggestedForm != "" {
				doc.Form = probe.SuggestedForm
			}
		}
		documents = append(documents, doc)
	}
	return documents, nil
}
