package pdf

import (
	"bytes"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

// Validate checks the buffered document against the service limits and
// returns its page count. Checks run cheapest first: size, then content
// sniffing, then a structural parse.
func Validate(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, domain.E(domain.KindInvalidDocument, "Document is empty")
	}
	if len(data) > domain.MaxFileBytes {
		return 0, domain.E(domain.KindDocumentTooLarge,
			fmt.Sprintf("Document is %d bytes, limit is %d MB", len(data), domain.MaxFileBytes>>20))
	}

	if mt := mimetype.Detect(data); !mt.Is("application/pdf") {
		return 0, domain.E(domain.KindInvalidDocument, "Document is not a PDF (detected "+mt.String()+")")
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pages, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return 0, domain.Wrap(domain.KindInvalidDocument, "Document is corrupt or not a well-formed PDF", err)
	}
	if pages == 0 {
		return 0, domain.E(domain.KindInvalidDocument, "Document has no pages")
	}
	if pages > domain.MaxPages {
		return pages, domain.E(domain.KindTooManyPages,
			fmt.Sprintf("Document has %d pages, limit is %d", pages, domain.MaxPages))
	}
	return pages, nil
}
