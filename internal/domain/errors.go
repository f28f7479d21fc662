package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP layer can map it to a status code and
// clients can branch on a stable string.
type Kind string

const (
	KindUnauthorized     Kind = "unauthorized"
	KindForbidden        Kind = "forbidden"
	KindRateLimited      Kind = "rate_limited"
	KindBadInput         Kind = "bad_input"
	KindInvalidDocument  Kind = "invalid_document"
	KindDocumentTooLarge Kind = "document_too_large"
	KindTooManyPages     Kind = "too_many_pages"
	KindFetchError       Kind = "fetch_error"
	KindStorageError     Kind = "storage_error"
	KindRenderError      Kind = "render_error"
	KindEncodeError      Kind = "encode_error"
	KindNotFound         Kind = "not_found"
	KindInternal         Kind = "internal_error"
)

// Error is a classified conversion failure. Page is the 1-based page number
// when the failure is scoped to a single page, 0 otherwise. Message is safe to
// return to clients; Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Page    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Page > 0 {
		msg = fmt.Sprintf("%s (page %d)", msg, e.Page)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a classified error with a client-facing message.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a classified error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// PageErr builds a classified error scoped to a single page.
func PageErr(kind Kind, page int, message string, err error) *Error {
	return &Error{Kind: kind, Page: page, Message: message, Err: err}
}

// KindOf extracts the classification from an error chain. Unclassified errors
// report KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
