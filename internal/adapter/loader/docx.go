package loader

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// documentXML mirrors the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// extractDocx pulls paragraph text out of a DOCX archive. A .docx file
// is a ZIP with the document body in word/document.xml. Paragraphs are
// joined with newlines before cleanup, which collapses them into the
// single whitespace-normalized stream the rest of the pipeline expects.
func extractDocx(path string) (string, map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("not a valid docx archive: %w", err)
	}

	var body []byte
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", nil, err
		}
		body, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", nil, err
		}
		break
	}
	if body == nil {
		return "", nil, fmt.Errorf("word/document.xml not found in archive")
	}

	var doc documentXML
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", nil, fmt.Errorf("failed to parse document xml: %w", err)
	}

	var sb strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, t := range r.Text {
				sb.WriteString(t.Content)
			}
		}
	}

	return Clean(sb.String()), map[string]string{"type": "docx"}, nil
}
