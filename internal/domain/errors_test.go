package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_MessageFormatting(t *testing.T) {
	plain := E(KindBadInput, "No document source provided")
	if plain.Error() != "No document source provided" {
		t.Fatalf("unexpected message: %q", plain.Error())
	}

	wrapped := Wrap(KindFetchError, "Download failed", errors.New("connection refused"))
	if wrapped.Error() != "Download failed: connection refused" {
		t.Fatalf("unexpected wrapped message: %q", wrapped.Error())
	}

	paged := PageErr(KindRenderError, 7, "Page rendering failed", errors.New("boom"))
	if paged.Error() != "Page rendering failed (page 7): boom" {
		t.Fatalf("unexpected page message: %q", paged.Error())
	}
}

func TestError_UnwrapAndKindOf(t *testing.T) {
	cause := errors.New("tcp reset")
	err := Wrap(KindStorageError, "Object download failed", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the cause")
	}

	outer := fmt.Errorf("conversion aborted: %w", err)
	if KindOf(outer) != KindStorageError {
		t.Fatalf("expected KindStorageError through wrapping, got %q", KindOf(outer))
	}

	if KindOf(errors.New("anonymous")) != KindInternal {
		t.Fatalf("expected unclassified errors to map to KindInternal")
	}
	if KindOf(nil) != KindInternal {
		t.Fatalf("expected nil to map to KindInternal")
	}
}

func TestKinds_AreDistinctStrings(t *testing.T) {
	kinds := []Kind{
		KindUnauthorized, KindForbidden, KindRateLimited, KindBadInput,
		KindInvalidDocument, KindDocumentTooLarge, KindTooManyPages,
		KindFetchError, KindStorageError, KindRenderError, KindEncodeError,
		KindNotFound, KindInternal,
	}
	seen := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		if k == "" {
			t.Fatalf("kind must not be empty")
		}
		if seen[k] {
			t.Fatalf("duplicate kind %q", k)
		}
		seen[k] = true
	}
}
