package source

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

// FromUpload buffers a multipart file upload.
func (rs *Resolver) FromUpload(fh *multipart.FileHeader) (*domain.Document, error) {
	if fh.Size > domain.MaxFileBytes {
		return nil, domain.E(domain.KindDocumentTooLarge,
			fmt.Sprintf("Uploaded file is %d bytes, limit is %d MB", fh.Size, domain.MaxFileBytes>>20))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, domain.Wrap(domain.KindBadInput, "Cannot read uploaded file", err)
	}
	defer f.Close()

	data, err := readCapped(f)
	if errors.Is(err, errTooLarge) {
		return nil, domain.E(domain.KindDocumentTooLarge,
			fmt.Sprintf("Uploaded file exceeds the %d MB limit", domain.MaxFileBytes>>20))
	}
	if err != nil {
		return nil, domain.Wrap(domain.KindBadInput, "Cannot read uploaded file", err)
	}

	name := filepath.Base(fh.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = ""
	}
	return &domain.Document{Data: data, Filename: name, Source: domain.SourceUpload}, nil
}
