package loader

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates per-page extracted text with blank-line
// separators. Each page is cleaned individually so page boundaries
// survive the whitespace normalization. Records the page count.
func extractPDF(path string) (string, map[string]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	var parts []string
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not sink the document.
			continue
		}
		text = Clean(text)
		if text != "" {
			parts = append(parts, text)
		}
	}

	meta := map[string]string{
		"type":  "pdf",
		"pages": fmt.Sprintf("%d", numPages),
	}

	return strings.Join(parts, "\n\n"), meta, nil
}
