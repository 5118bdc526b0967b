package inspect

import (
	"testing"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
)

func TestProbeNonPDFYieldsZeroProbe(t *testing.T) {
	prober := NewProber()
	probe := prober.Probe("notatka.txt", []byte("zwykły tekst"))
	if probe.PDF {
		t.Fatalf("plain text must not probe as PDF")
	}
	if probe.SuggestedForm != "" {
		t.Fatalf("non-PDF must carry no suggestion, got %q", probe.SuggestedForm)
	}
}

func TestProbeDetectsPDFByExtension(t *testing.T) {
	prober := NewProber()
	probe := prober.Probe("SKAN.PDF", []byte("not really pdf content"))
	if !probe.PDF {
		t.Fatalf(".pdf extension must probe as PDF")
	}
	if probe.SuggestedForm != "" {
		t.Fatalf("unreadable PDF must carry no suggestion, got %q", probe.SuggestedForm)
	}
}

func TestProbeDetectsPDFByMagicBytes(t *testing.T) {
	prober := NewProber()
	probe := prober.Probe("upload.bin", []byte("%PDF-1.7 broken"))
	if !probe.PDF {
		t.Fatalf("%%PDF- prefix must probe as PDF")
	}
	if probe.Pages != 0 || probe.HasTextLayer {
		t.Fatalf("unreadable PDF must not report pages or text layer: %+v", probe)
	}
}

func TestProbeNeverSuggestsForUnreadablePDF(t *testing.T) {
	prober := NewProber()
	probe := prober.Probe("skan.pdf", []byte("%PDF-1.4\nxref\ngarbage"))
	if probe.SuggestedForm == domain.FormHandwritten || probe.SuggestedForm == domain.FormPrinted {
		t.Fatalf("unreadable PDF must not suggest a form, got %q", probe.SuggestedForm)
	}
}
