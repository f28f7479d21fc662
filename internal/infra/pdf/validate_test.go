package pdf

import (
	"testing"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/pdftest"
)

func TestValidate_AcceptsWellFormedDocument(t *testing.T) {
	pages, err := Validate(pdftest.Minimal(4))
	if err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}
	if pages != 4 {
		t.Fatalf("expected 4 pages, got %d", pages)
	}
}

func TestValidate_RejectsNonPDF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "plain text", data: []byte("definitely not a pdf document")},
		{name: "png magic", data: []byte("\x89PNG\r\n\x1a\nrest of a png")},
		{name: "pdf magic but garbage body", data: []byte("%PDF-1.4\nnonsense with no xref")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.data)
			if err == nil {
				t.Fatalf("expected rejection")
			}
			if domain.KindOf(err) != domain.KindInvalidDocument {
				t.Fatalf("expected invalid_document, got %q", domain.KindOf(err))
			}
		})
	}
}

func TestValidate_RejectsOversizeDocument(t *testing.T) {
	data := make([]byte, domain.MaxFileBytes+1)
	copy(data, "%PDF-1.4\n")

	_, err := Validate(data)
	if err == nil {
		t.Fatalf("expected rejection")
	}
	if domain.KindOf(err) != domain.KindDocumentTooLarge {
		t.Fatalf("expected document_too_large, got %q", domain.KindOf(err))
	}
}

func TestValidate_AcceptsDocumentAtSizeLimit(t *testing.T) {
	padded := pdftest.Padded(1, domain.MaxFileBytes)
	if len(padded) != domain.MaxFileBytes {
		t.Fatalf("fixture should be exactly at the limit, got %d bytes", len(padded))
	}
	if _, err := Validate(padded); err != nil {
		t.Fatalf("document exactly at the limit should pass, got %v", err)
	}
}

func TestValidate_RejectsTooManyPages(t *testing.T) {
	_, err := Validate(pdftest.Minimal(domain.MaxPages + 1))
	if err == nil {
		t.Fatalf("expected rejection")
	}
	if domain.KindOf(err) != domain.KindTooManyPages {
		t.Fatalf("expected too_many_pages, got %q", domain.KindOf(err))
	}
}

func TestValidate_AcceptsPageLimitExactly(t *testing.T) {
	pages, err := Validate(pdftest.Minimal(domain.MaxPages))
	if err != nil {
		t.Fatalf("document at the page limit should pass, got %v", err)
	}
	if pages != domain.MaxPages {
		t.Fatalf("expected %d pages, got %d", domain.MaxPages, pages)
	}
}
