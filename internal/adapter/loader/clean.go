package loader

import (
	"regexp"
	"strings"
)

var (
	reNonASCII   = regexp.MustCompile(`[^\x00-\x7F]+`)
	rePunctRuns  = regexp.MustCompile(`[.:;,!?]{2,}`)
	reWhitespace = regexp.MustCompile(`\s+`)
	reLiteralNL  = regexp.MustCompile(`\\n+`)
	reBlankLines = regexp.MustCompile(`\n\s*\n`)
	reTildeRuns  = regexp.MustCompile("[~`]{2,}")
	reControls   = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
)

// Clean strips OCR artifacts and formatting noise from extracted text.
//
// This is a lossy, ASCII-only cleanup: non-ASCII content (accented
// text, non-Latin scripts) is removed, runs of punctuation collapse to
// a single period, and whitespace runs collapse to a single space.
func Clean(text string) string {
	text = reNonASCII.ReplaceAllString(text, " ")
	text = rePunctRuns.ReplaceAllString(text, ".")
	text = reWhitespace.ReplaceAllString(text, " ")
	text = reLiteralNL.ReplaceAllString(text, "\n")
	text = reBlankLines.ReplaceAllString(text, "\n\n")
	text = reTildeRuns.ReplaceAllString(text, "")
	text = reControls.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
