package source

import (
	"errors"
	"io"
	"net/http"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

// Resolver turns the supported input variants (upload, URL, Supabase storage,
// S3) into buffered documents. Every variant enforces the document size cap
// while reading, so an oversize stream is abandoned instead of drained.
type Resolver struct {
	Client *http.Client
}

func NewResolver() *Resolver {
	return &Resolver{Client: &http.Client{}}
}

var errTooLarge = errors.New("document exceeds the size limit")

// readCapped drains r up to the document size cap and reports errTooLarge
// beyond it, leaving classification to the caller.
func readCapped(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, domain.MaxFileBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > domain.MaxFileBytes {
		return nil, errTooLarge
	}
	return data, nil
}
