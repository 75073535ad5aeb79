// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package testutil provides fixtures shared by pipeline tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// WriteSamplePDF writes a minimal but well-formed PDF with the given
// number of empty pages to path. The cross-reference table carries real
// byte offsets, so strict parsers accept the file.
func WriteSamplePDF(t *testing.T, path string, pages int) {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int

	buf.WriteString("%PDF-1.4\n")

	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pages))

	for i := 0; i < pages; i++ {
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n", 3+i))
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefPos)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing sample PDF %s: %v", path, err)
	}
}

// WriteCorruptPDF writes a file that is not parseable as a PDF.
func WriteCorruptPDF(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("this is not a PDF document"), 0o644); err != nil {
		t.Fatalf("writing corrupt PDF %s: %v", path, err)
	}
}
