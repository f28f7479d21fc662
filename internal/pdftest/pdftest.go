// Package pdftest builds tiny but structurally valid PDF documents for tests,
// so fixtures never have to be checked in as binaries.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Minimal returns a well-formed PDF with the given number of empty pages.
// Object offsets in the cross-reference table are computed from the actual
// byte positions, which keeps strict parsers happy.
func Minimal(pages int) []byte {
	return build(pages, 0)
}

// Padded returns a well-formed PDF with the given number of pages, inflated
// to exactly totalSize bytes via an unreferenced stream object. Useful for
// exercising size limits without shipping large fixtures.
func Padded(pages, totalSize int) []byte {
	fill := 0
	doc := build(pages, fill)
	// The digit width of /Length shifts offsets, so converge in a few rounds.
	for i := 0; i < 5 && len(doc) != totalSize; i++ {
		fill += totalSize - len(doc)
		if fill < 0 {
			fill = 0
		}
		doc = build(pages, fill)
	}
	return doc
}

func build(pages, fill int) []byte {
	if pages < 1 {
		pages = 1
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")

	// Objects: 1 catalog, 2 page tree, 3..pages+2 page objects, plus an
	// optional filler stream.
	size := pages + 3
	if fill > 0 {
		size++
	}
	offsets := make([]int, size)
	addObj := func(num int, body string) {
		offsets[num] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	kids := make([]string, 0, pages)
	for i := 0; i < pages; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+i))
	}

	addObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	addObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		addObj(3+i, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] >>")
	}
	if fill > 0 {
		addObj(pages+3, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", fill, strings.Repeat("x", fill)))
	}

	xrefPos := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", size)
	b.WriteString("0000000000 65535 f \n")
	for num := 1; num < size; num++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xrefPos)

	return b.Bytes()
}
