package handlers

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/config"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/http/middleware"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/infra/archive"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/infra/logging"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/infra/pdf"
	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/infra/source"
)

// Converter bundles configuration and dependencies for conversion requests.
type Converter struct {
	Config   config.Config
	Sources  *source.Resolver
	Renderer *pdf.Renderer
	validate *validator.Validate
}

// NewConverter creates a new Converter instance.
func NewConverter(cfg config.Config) *Converter {
	return &Converter{
		Config:   cfg,
		Sources:  source.NewResolver(),
		Renderer: pdf.NewRenderer(cfg.Image.Quality, cfg.Image.DPI),
		validate: newValidate(),
	}
}

// HandleConvert accepts any supported source on one endpoint. A multipart
// upload wins over a url field, which wins over Supabase coordinates.
func (cv *Converter) HandleConvert(c *fiber.Ctx) error {
	doc, err := cv.resolveAny(c)
	if err != nil {
		return cv.fail(c, err)
	}
	return cv.run(c, doc)
}

// HandleConvertURL converts a document fetched from a remote URL.
func (cv *Converter) HandleConvertURL(c *fiber.Ctx) error {
	var req urlRequest
	if err := cv.decode(c, &req); err != nil {
		return cv.fail(c, err)
	}
	doc, err := cv.Sources.FromURL(c.Context(), req.URL)
	if err != nil {
		return cv.fail(c, err)
	}
	return cv.run(c, doc)
}

// HandleConvertSupabase converts an object held in Supabase storage.
func (cv *Converter) HandleConvertSupabase(c *fiber.Ctx) error {
	var req supabaseRequest
	if err := cv.decode(c, &req); err != nil {
		return cv.fail(c, err)
	}
	doc, err := cv.Sources.FromSupabase(c.Context(), source.SupabaseRef{
		ProjectURL: req.SupabaseURL,
		ServiceKey: req.ServiceKey,
		Bucket:     req.Bucket,
		FileID:     req.FileID,
		FileName:   req.FileName,
	})
	if err != nil {
		return cv.fail(c, err)
	}
	return cv.run(c, doc)
}

// HandleConvertS3 converts an object held in any S3-compatible store.
func (cv *Converter) HandleConvertS3(c *fiber.Ctx) error {
	var req s3Request
	if err := cv.decode(c, &req); err != nil {
		return cv.fail(c, err)
	}
	useSSL := true
	if req.UseSSL != nil {
		useSSL = *req.UseSSL
	}
	doc, err := cv.Sources.FromS3(c.Context(), source.S3Ref{
		Endpoint:  req.Endpoint,
		AccessKey: req.AccessKey,
		SecretKey: req.SecretKey,
		Bucket:    req.Bucket,
		Object:    req.Object,
		Region:    req.Region,
		UseSSL:    useSSL,
	})
	if err != nil {
		return cv.fail(c, err)
	}
	return cv.run(c, doc)
}

// resolveAny picks the first source present on the combined endpoint.
func (cv *Converter) resolveAny(c *fiber.Ctx) (*domain.Document, error) {
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		return cv.Sources.FromUpload(fh)
	}

	var req convertRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return nil, domain.Wrap(domain.KindBadInput, "Malformed request body", err)
		}
	}

	if req.URL != "" {
		return cv.Sources.FromURL(c.Context(), req.URL)
	}
	if req.FileID != "" {
		sub := supabaseRequest{
			SupabaseURL: req.SupabaseURL,
			ServiceKey:  req.ServiceKey,
			Bucket:      req.Bucket,
			FileID:      req.FileID,
			FileName:    req.FileName,
		}
		if err := cv.validate.Struct(&sub); err != nil {
			return nil, domain.E(domain.KindBadInput, "Incomplete Supabase reference: file_id requires supabase_url, service_key and bucket")
		}
		return cv.Sources.FromSupabase(c.Context(), source.SupabaseRef{
			ProjectURL: sub.SupabaseURL,
			ServiceKey: sub.ServiceKey,
			Bucket:     sub.Bucket,
			FileID:     sub.FileID,
			FileName:   sub.FileName,
		})
	}
	return nil, domain.E(domain.KindBadInput, "No PDF source provided")
}

// run drives a resolved document through validation, rasterization and
// archiving, and writes the ZIP response.
func (cv *Converter) run(c *fiber.Ctx, doc *domain.Document) error {
	cid := middleware.RequestID(c)
	logging.Info("Conversion started",
		"cid", cid, "source", string(doc.Source), "filename", doc.Filename, "bytes", len(doc.Data))

	pages, err := pdf.Validate(doc.Data)
	if err != nil {
		return cv.fail(c, err)
	}

	// go-fitz opens from a path, so the buffer is spooled into a private
	// per-conversion workspace that is removed on every exit path.
	dir := filepath.Join(cv.Config.TempDir, "pdf2jpg-"+cid)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return cv.fail(c, domain.Wrap(domain.KindInternal, "Workspace setup failed", err))
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(input, doc.Data, 0o600); err != nil {
		return cv.fail(c, domain.Wrap(domain.KindInternal, "Workspace setup failed", err))
	}

	images, err := cv.Renderer.RenderAll(input)
	if err != nil {
		return cv.fail(c, err)
	}

	zipBuf, err := archive.Build(images)
	if err != nil {
		return cv.fail(c, err)
	}

	logging.Info("Conversion finished", "cid", cid, "pages", pages, "zip_bytes", len(zipBuf))

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+archiveName(doc.Filename))
	return c.Send(zipBuf)
}

// fail logs the failure with the conversion id and hands the error to the
// app-level error handler. Server-side kinds are also reported to Sentry.
func (cv *Converter) fail(c *fiber.Ctx, err error) error {
	cid := middleware.RequestID(c)
	kind := domain.KindOf(err)
	logging.Error("Conversion failed", "cid", cid, "kind", string(kind), "error", err.Error())

	switch kind {
	case domain.KindInternal, domain.KindRenderError, domain.KindEncodeError:
		if hub := sentry.CurrentHub(); hub.Client() != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("cid", cid)
				hub.CaptureException(err)
			})
		}
	}
	return err
}

var archiveNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// archiveName derives the download filename from the source document name.
func archiveName(original string) string {
	stem := strings.TrimSuffix(original, filepath.Ext(original))
	stem = archiveNameSanitizer.ReplaceAllString(stem, "_")
	stem = strings.Trim(stem, "._")
	if stem == "" {
		return "converted.zip"
	}
	return stem + "_images.zip"
}
