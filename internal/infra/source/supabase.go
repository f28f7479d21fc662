package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

// SupabaseRef identifies an object in a Supabase storage bucket. FileID may be
// either the object name or the storage UUID of the object; FileName, when
// set, skips UUID resolution entirely.
type SupabaseRef struct {
	ProjectURL string
	ServiceKey string
	Bucket     string
	FileID     string
	FileName   string
}

// FromSupabase downloads an object from Supabase storage. A direct download
// by FileID is tried first; if that misses and FileID is a UUID, the object
// name is resolved through the storage list API and the download retried.
func (rs *Resolver) FromSupabase(ctx context.Context, ref SupabaseRef) (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, domain.FetchTimeout)
	defer cancel()

	object := ref.FileName
	if object == "" {
		object = ref.FileID
	}

	data, status, err := rs.supabaseDownload(ctx, ref, object)
	if err == nil {
		return &domain.Document{Data: data, Filename: path.Base(object), Source: domain.SourceSupabase}, nil
	}

	if status == http.StatusNotFound && ref.FileName == "" && isUUID(ref.FileID) {
		name, nerr := rs.supabaseResolveName(ctx, ref)
		if nerr != nil {
			return nil, nerr
		}
		data, _, err = rs.supabaseDownload(ctx, ref, name)
		if err != nil {
			return nil, err
		}
		return &domain.Document{Data: data, Filename: path.Base(name), Source: domain.SourceSupabase}, nil
	}

	return nil, err
}

func (rs *Resolver) supabaseDownload(ctx context.Context, ref SupabaseRef, object string) ([]byte, int, error) {
	endpoint := supabaseBase(ref.ProjectURL) + "/storage/v1/object/" + ref.Bucket + "/" + object

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, domain.Wrap(domain.KindBadInput, "Invalid Supabase project URL", err)
	}
	setSupabaseAuth(req, ref.ServiceKey)

	resp, err := rs.Client.Do(req)
	if err != nil {
		return nil, 0, domain.Wrap(domain.KindStorageError, "Storage download failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, resp.StatusCode, domain.E(domain.KindStorageError,
			fmt.Sprintf("Storage returned status %d for object %q", resp.StatusCode, object))
	}

	data, err := readCapped(resp.Body)
	if errors.Is(err, errTooLarge) {
		return nil, resp.StatusCode, domain.E(domain.KindStorageError,
			fmt.Sprintf("Stored object exceeds the %d MB limit", domain.MaxFileBytes>>20))
	}
	if err != nil {
		return nil, resp.StatusCode, domain.Wrap(domain.KindStorageError, "Storage download failed while reading", err)
	}
	return data, resp.StatusCode, nil
}

// supabaseResolveName maps a storage object UUID to its object name via the
// list endpoint.
func (rs *Resolver) supabaseResolveName(ctx context.Context, ref SupabaseRef) (string, error) {
	endpoint := supabaseBase(ref.ProjectURL) + "/storage/v1/object/list/" + ref.Bucket

	body, _ := json.Marshal(map[string]interface{}{
		"prefix": "",
		"limit":  1000,
		"offset": 0,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", domain.Wrap(domain.KindBadInput, "Invalid Supabase project URL", err)
	}
	setSupabaseAuth(req, ref.ServiceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := rs.Client.Do(req)
	if err != nil {
		return "", domain.Wrap(domain.KindStorageError, "Storage listing failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", domain.E(domain.KindStorageError,
			fmt.Sprintf("Storage listing returned status %d", resp.StatusCode))
	}

	var entries []struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return "", domain.Wrap(domain.KindStorageError, "Storage listing returned an unreadable response", err)
	}

	for _, e := range entries {
		if e.ID == ref.FileID {
			return e.Name, nil
		}
	}
	return "", domain.E(domain.KindStorageError,
		fmt.Sprintf("Object id %q not found in bucket %q", ref.FileID, ref.Bucket))
}

func setSupabaseAuth(req *http.Request, serviceKey string) {
	req.Header.Set("Authorization", "Bearer "+serviceKey)
	req.Header.Set("apikey", serviceKey)
}

func supabaseBase(projectURL string) string {
	return strings.TrimRight(projectURL, "/")
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
