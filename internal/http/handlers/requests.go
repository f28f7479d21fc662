package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

// convertRequest is the combined request body for the auto-detecting
// endpoint. Every field is optional here; presence decides the source.
type convertRequest struct {
	APIKey      string `json:"api_key" form:"api_key"`
	URL         string `json:"url" form:"url"`
	FileID      string `json:"file_id" form:"file_id"`
	FileName    string `json:"file_name" form:"file_name"`
	SupabaseURL string `json:"supabase_url" form:"supabase_url"`
	ServiceKey  string `json:"service_key" form:"service_key"`
	Bucket      string `json:"bucket" form:"bucket"`
}

type urlRequest struct {
	APIKey string `json:"api_key" form:"api_key"`
	URL    string `json:"url" form:"url" validate:"required,url"`
}

type supabaseRequest struct {
	APIKey      string `json:"api_key" form:"api_key"`
	SupabaseURL string `json:"supabase_url" form:"supabase_url" validate:"required,url"`
	ServiceKey  string `json:"service_key" form:"service_key" validate:"required"`
	Bucket      string `json:"bucket" form:"bucket" validate:"required"`
	FileID      string `json:"file_id" form:"file_id" validate:"required"`
	FileName    string `json:"file_name" form:"file_name"`
}

type s3Request struct {
	APIKey    string `json:"api_key" form:"api_key"`
	Endpoint  string `json:"endpoint" form:"endpoint" validate:"required"`
	AccessKey string `json:"access_key" form:"access_key" validate:"required"`
	SecretKey string `json:"secret_key" form:"secret_key" validate:"required"`
	Bucket    string `json:"bucket" form:"bucket" validate:"required"`
	Object    string `json:"object" form:"object" validate:"required"`
	Region    string `json:"region" form:"region"`
	UseSSL    *bool  `json:"use_ssl" form:"use_ssl"`
}

// newValidate returns a validator that reports fields by their json tag, so
// error messages match what the client actually sent.
func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode parses the request body into dst and validates it.
func (cv *Converter) decode(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.Wrap(domain.KindBadInput, "Malformed request body", err)
	}
	if err := cv.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			if f.Tag() == "required" {
				return domain.E(domain.KindBadInput, fmt.Sprintf("Missing required field %q", f.Field()))
			}
			return domain.E(domain.KindBadInput, fmt.Sprintf("Field %q failed %s validation", f.Field(), f.Tag()))
		}
		return domain.Wrap(domain.KindBadInput, "Invalid request", err)
	}
	return nil
}
