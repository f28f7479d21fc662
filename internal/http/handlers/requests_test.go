package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

// decodeProbe routes a body through decode for the given target and reports
// kind + message.
func decodeProbe(t *testing.T, dst func() interface{}, body string) (string, string) {
	t.Helper()
	cv := testConverter(t)
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		if err := cv.decode(c, dst()); err != nil {
			c.Set("X-Err-Kind", string(domain.KindOf(err)))
			return c.Status(errKindStatus).SendString(err.Error())
		}
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp.Header.Get("X-Err-Kind"), string(raw)
}

func TestDecode_MissingRequiredFieldNamedByJSONTag(t *testing.T) {
	kind, msg := decodeProbe(t, func() interface{} { return &urlRequest{} }, `{}`)
	if kind != string(domain.KindBadInput) {
		t.Fatalf("expected bad_input, got %q", kind)
	}
	if !strings.Contains(msg, `"url"`) {
		t.Fatalf("expected the json field name in %q", msg)
	}
}

func TestDecode_InvalidURLValue(t *testing.T) {
	kind, msg := decodeProbe(t, func() interface{} { return &urlRequest{} }, `{"url":"not a url"}`)
	if kind != string(domain.KindBadInput) {
		t.Fatalf("expected bad_input, got %q", kind)
	}
	if !strings.Contains(msg, "url validation") {
		t.Fatalf("expected a validation message, got %q", msg)
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	kind, msg := decodeProbe(t, func() interface{} { return &urlRequest{} }, `{"url":`)
	if kind != string(domain.KindBadInput) {
		t.Fatalf("expected bad_input, got %q", kind)
	}
	if !strings.Contains(msg, "Malformed request body") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestDecode_SupabaseFieldsReported(t *testing.T) {
	body := `{"supabase_url":"https://demo.supabase.co","service_key":"k","file_id":"f"}`
	kind, msg := decodeProbe(t, func() interface{} { return &supabaseRequest{} }, body)
	if kind != string(domain.KindBadInput) {
		t.Fatalf("expected bad_input, got %q", kind)
	}
	if !strings.Contains(msg, `"bucket"`) {
		t.Fatalf("expected missing bucket to be reported, got %q", msg)
	}
}

func TestDecode_S3RequiredFields(t *testing.T) {
	body := `{"endpoint":"s3.example.com","access_key":"a","secret_key":"s","bucket":"b"}`
	kind, msg := decodeProbe(t, func() interface{} { return &s3Request{} }, body)
	if kind != string(domain.KindBadInput) {
		t.Fatalf("expected bad_input, got %q", kind)
	}
	if !strings.Contains(msg, `"object"`) {
		t.Fatalf("expected missing object to be reported, got %q", msg)
	}
}

func TestDecode_ValidPayloadPasses(t *testing.T) {
	kind, _ := decodeProbe(t, func() interface{} { return &urlRequest{} },
		`{"url":"https://files.example.com/a.pdf","api_key":"whatever"}`)
	if kind != "" {
		t.Fatalf("expected success, got kind %q", kind)
	}
}
