package inspect

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
)

// A scanned page carries essentially no extractable text; anything beyond
// this many characters per document means a real text layer is present.
const textLayerThreshold = 32

// Prober inspects source files before submission. PDFs without a text
// layer are almost always scans, so the probe suggests the handwritten
// form for them and printed otherwise. Non-PDF files and unreadable PDFs
// yield no suggestion; a probe never blocks an upload.
type Prober struct{}

func NewProber() *Prober {
	return &Prober{}
}

func (p *Prober) Probe(name string, payload []byte) domain.DocumentProbe {
	if !isPDF(name, payload) {
		return domain.DocumentProbe{}
	}

	probe := domain.DocumentProbe{PDF: true}
	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return probe
	}

	probe.Pages = reader.NumPage()
	if extractedTextLength(reader) >= textLayerThreshold {
		probe.HasTextLayer = true
		probe.SuggestedForm = domain.FormPrinted
	} else {
		probe.SuggestedForm = domain.FormHandwritten
	}
	return probe
}

func isPDF(name string, payload []byte) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf") || bytes.HasPrefix(payload, []byte("%PDF-"))
}

// extractedTextLength sums plain text across pages. The pdf library panics
// on some malformed cross-reference tables, so the walk is fenced off.
func extractedTextLength(reader *pdf.Reader) (total int) {
	defer func() {
		if recover() != nil {
			total = 0
		}
	}()

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		total += len(strings.TrimSpace(text))
	}
	return total
}
