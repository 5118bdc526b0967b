package domain

// DocumentType classifies a source document supplied by the notifier.
type DocumentType string

const (
	DocTypeNotification DocumentType = "notification"
	DocTypeExplanation  DocumentType = "explanation"
	DocTypeMedical      DocumentType = "medical"
	DocTypePolice       DocumentType = "police"
	DocTypeProsecutor   DocumentType = "prosecutor"
	DocTypeOther        DocumentType = "other"
)

// DocumentForm distinguishes handwritten scans from printed documents.
// Handwritten sources degrade OCR fidelity and produce a quality warning.
type DocumentForm string

const (
	FormHandwritten DocumentForm = "handwritten"
	FormPrinted     DocumentForm = "printed"
)

// UploadedDocument is one user-supplied file awaiting analysis. The payload
// is passed by reference into the pipeline client and never mutated there.
type UploadedDocument struct {
	ID               string       `json:"id"`
	Payload          []byte       `json:"-"`
	Name             string       `json:"name"`
	Type             DocumentType `json:"type"`
	Form             DocumentForm `json:"form"`
	OtherDescription string       `json:"otherDescription,omitempty"`
}

// DocumentMeta is the per-document metadata the pipeline run endpoint
// expects in the documents_meta multipart field.
type DocumentMeta struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	Form             string `json:"form"`
	OtherDescription string `json:"otherDescription,omitempty"`
}

func (d UploadedDocument) Meta() DocumentMeta {
	return DocumentMeta{
		ID:               d.ID,
		Name:             d.Name,
		Type:             string(d.Type),
		Form:             string(d.Form),
		OtherDescription: d.OtherDescription,
	}
}

// AnyHandwritten reports whether at least one document is a handwritten scan.
func AnyHandwritten(docs []UploadedDocument) bool {
	for _, doc := range docs {
		if doc.Form == FormHandwritten {
			return true
		}
	}
	return false
}

// DocumentProbe summarizes what could be learned from a source file without
// submitting it anywhere. A zero probe means the file was not inspectable.
type DocumentProbe struct {
	PDF           bool
	Pages         int
	HasTextLayer  bool
	SuggestedForm DocumentForm
}

// DocumentTypeLabels are the Polish display names used in summaries and exports.
var DocumentTypeLabels = map[DocumentType]string{
	DocTypeNotification: "Zawiadomienie o wypadku",
	DocTypeExplanation:  "Wyjaśnienia poszkodowanego",
	DocTypeMedical:      "Dokumentacja medyczna",
	DocTypePolice:       "Dokumenty policji",
	DocTypeProsecutor:   "Dokumenty prokuratury",
	DocTypeOther:        "Inne",
}

var DocumentFormLabels = map[DocumentForm]string{
	FormHandwritten: "Odręczne",
	FormPrinted:     "Drukowane",
}
