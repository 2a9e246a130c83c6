package loader

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestDocx builds a minimal DOCX archive with one run per
// paragraph and writes it to path.
func writeTestDocx(t *testing.T, path string, paragraphs []string) {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		sb.WriteString(`<w:p><w:r><w:t>`)
		sb.WriteString(p)
		sb.WriteString(`</w:t></w:r></w:p>`)
	}
	sb.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(sb.String())); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write docx file: %v", err)
	}
}

func TestExtractDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.docx")
	writeTestDocx(t, path, []string{"First paragraph.", "Second paragraph."})

	content, meta, err := extractDocx(path)
	if err != nil {
		t.Fatalf("extractDocx: %v", err)
	}
	// The cleanup pass collapses the newline paragraph join to a space.
	want := "First paragraph. Second paragraph."
	if content != want {
		t.Errorf("content = %q, want %q", content, want)
	}
	if meta["type"] != "docx" {
		t.Errorf("type metadata = %q, want %q", meta["type"], "docx")
	}
}

func TestExtractDocx_MultipleRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.docx")

	// Word frequently splits a sentence into several runs.
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	body := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body><w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t>world</w:t></w:r></w:p></w:body></w:document>`
	if _, err := f.Write([]byte(body)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write docx file: %v", err)
	}

	content, _, err := extractDocx(path)
	if err != nil {
		t.Fatalf("extractDocx: %v", err)
	}
	if content != "Hello world" {
		t.Errorf("content = %q, want %q", content, "Hello world")
	}
}

func TestExtractDocx_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("this is not a zip archive"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, _, err := extractDocx(path); err == nil {
		t.Fatal("expected error for non-zip docx")
	}
}

func TestExtractDocx_MissingDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/other.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := f.Write([]byte("<x/>")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write docx file: %v", err)
	}

	if _, _, err := extractDocx(path); err == nil {
		t.Fatal("expected error when word/document.xml is absent")
	}
}
