package source

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

// uploadHeader builds a real multipart.FileHeader the way net/http would hand
// it to a handler.
func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(8 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestFromUpload_BuffersFileAndName(t *testing.T) {
	content := []byte("%PDF-1.4 pretend content")
	doc, err := NewResolver().FromUpload(uploadHeader(t, "invoice.pdf", content))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if !bytes.Equal(doc.Data, content) {
		t.Fatalf("buffered content differs from upload")
	}
	if doc.Filename != "invoice.pdf" {
		t.Fatalf("unexpected filename %q", doc.Filename)
	}
	if doc.Source != domain.SourceUpload {
		t.Fatalf("unexpected provenance %q", doc.Source)
	}
}

func TestFromUpload_StripsClientPath(t *testing.T) {
	doc, err := NewResolver().FromUpload(uploadHeader(t, "C:/Users/x/report.pdf", []byte("data")))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if doc.Filename != "report.pdf" {
		t.Fatalf("expected path-stripped filename, got %q", doc.Filename)
	}
}

func TestFromUpload_RejectsOversizeByHeader(t *testing.T) {
	fh := &multipart.FileHeader{Filename: "big.pdf", Size: domain.MaxFileBytes + 1}

	_, err := NewResolver().FromUpload(fh)
	if err == nil {
		t.Fatalf("expected rejection")
	}
	if domain.KindOf(err) != domain.KindDocumentTooLarge {
		t.Fatalf("expected document_too_large, got %q", domain.KindOf(err))
	}
}
