package pdf

import (
	"bytes"
	"image/jpeg"

	"github.com/gen2brain/go-fitz"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

// Renderer rasterizes PDF pages through MuPDF and encodes them as JPEG.
type Renderer struct {
	Quality int
	DPI     float64
}

func NewRenderer(quality int, dpi float64) *Renderer {
	return &Renderer{Quality: quality, DPI: dpi}
}

// RenderAll rasterizes every page of the document at path, in page order.
// Each page is encoded before the next one is rendered, keeping peak memory
// at roughly one bitmap. The first failing page aborts the run.
func (r *Renderer) RenderAll(path string) ([][]byte, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, domain.Wrap(domain.KindRenderError, "Cannot open document for rendering", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	out := make([][]byte, 0, total)
	for i := 0; i < total; i++ {
		img, err := doc.ImageDPI(i, r.DPI)
		if err != nil {
			return nil, domain.PageErr(domain.KindRenderError, i+1, "Page rendering failed", err)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: r.Quality}); err != nil {
			return nil, domain.PageErr(domain.KindEncodeError, i+1, "Page encoding failed", err)
		}
		out = append(out, buf.Bytes())
	}
	return out, nil
}
