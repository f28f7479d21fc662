package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/CastorPolux2050/PDF2JPG-SupabaseService/internal/domain"
)

func TestBuild_NamesEntriesInPageOrder(t *testing.T) {
	pages := [][]byte{
		[]byte("first page bytes"),
		[]byte("second page bytes"),
		[]byte("third page bytes"),
	}

	data, err := Build(pages)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a readable zip: %v", err)
	}
	if len(zr.File) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(zr.File))
	}

	want := []string{"page_001.jpg", "page_002.jpg", "page_003.jpg"}
	for i, f := range zr.File {
		if f.Name != want[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, want[i], f.Name)
		}
		if f.Method != zip.Deflate {
			t.Fatalf("entry %q should be deflated", f.Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %q: %v", f.Name, err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %q: %v", f.Name, err)
		}
		if !bytes.Equal(got, pages[i]) {
			t.Fatalf("entry %q content does not round-trip", f.Name)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	pages := [][]byte{[]byte("alpha"), []byte("beta")}

	a, err := Build(pages)
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	b, err := Build(pages)
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("identical inputs must produce identical archives")
	}
}

func TestBuild_RejectsEmptyInput(t *testing.T) {
	_, err := Build(nil)
	if err == nil {
		t.Fatalf("expected error for empty input")
	}
	if domain.KindOf(err) != domain.KindInternal {
		t.Fatalf("expected internal kind, got %q", domain.KindOf(err))
	}
}

func TestEntryName_Padding(t *testing.T) {
	tests := []struct {
		page int
		want string
	}{
		{1, "page_001.jpg"},
		{42, "page_042.jpg"},
		{100, "page_100.jpg"},
	}
	for _, tc := range tests {
		if got := EntryName(tc.page); got != tc.want {
			t.Fatalf("EntryName(%d) = %q, want %q", tc.page, got, tc.want)
		}
	}
}
