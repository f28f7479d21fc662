package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	neturl "net/url"
	"path"
	"strings"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

// FromURL downloads the document at rawURL. Only absolute http and https URLs
// are accepted, the download is bounded by the fetch timeout and the size cap.
func (rs *Resolver) FromURL(ctx context.Context, rawURL string) (*domain.Document, error) {
	parsed, err := neturl.ParseRequestURI(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, domain.E(domain.KindBadInput, "Invalid URL: must be absolute HTTP or HTTPS")
	}

	ctx, cancel := context.WithTimeout(ctx, domain.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, domain.Wrap(domain.KindBadInput, "Invalid URL", err)
	}

	resp, err := rs.Client.Do(req)
	if err != nil {
		return nil, domain.Wrap(domain.KindFetchError, "Download failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, domain.E(domain.KindFetchError,
			fmt.Sprintf("Download failed: source returned status %d", resp.StatusCode))
	}

	data, err := readCapped(resp.Body)
	if errors.Is(err, errTooLarge) {
		return nil, domain.E(domain.KindFetchError,
			fmt.Sprintf("Remote document exceeds the %d MB limit", domain.MaxFileBytes>>20))
	}
	if err != nil {
		return nil, domain.Wrap(domain.KindFetchError, "Download failed while reading the response", err)
	}

	return &domain.Document{Data: data, Filename: filenameFromURL(parsed), Source: domain.SourceURL}, nil
}

// filenameFromURL extracts a usable filename from the URL path. Anything that
// does not look like a PDF name is dropped in favor of the default archive
// name downstream.
func filenameFromURL(u *neturl.URL) string {
	base := path.Base(u.Path)
	if base == "/" || base == "." || !strings.HasSuffix(strings.ToLower(base), ".pdf") {
		return ""
	}
	return base
}
