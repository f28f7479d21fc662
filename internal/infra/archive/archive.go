package archive

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

// Build packs the page images into a ZIP archive. Entries are named
// page_001.jpg, page_002.jpg, ... in page order, so identical inputs produce
// identical archives.
func Build(pages [][]byte) ([]byte, error) {
	if len(pages) == 0 {
		return nil, domain.E(domain.KindInternal, "Archive assembly failed: no pages")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, page := range pages {
		w, err := zw.Create(EntryName(i + 1))
		if err != nil {
			return nil, domain.Wrap(domain.KindInternal, fmt.Sprintf("Archive assembly failed at page %d", i+1), err)
		}
		if _, err := w.Write(page); err != nil {
			return nil, domain.Wrap(domain.KindInternal, fmt.Sprintf("Archive assembly failed at page %d", i+1), err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, domain.Wrap(domain.KindInternal, "Archive assembly failed", err)
	}
	return buf.Bytes(), nil
}

// EntryName returns the archive entry name for the given 1-based page number.
func EntryName(page int) string {
	return fmt.Sprintf("page_%03d.jpg", page)
}
