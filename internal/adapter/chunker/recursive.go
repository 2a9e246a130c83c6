package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"docrag/internal/domain"
)

// defaultSeparators is the split priority: paragraph, line, sentence,
// word, then character level. A coarser separator is always preferred
// when its pieces fit the size budget, so sentences and words are only
// severed as a last resort.
var defaultSeparators = []string{"\n\n", "\n", ". ", "! ", "? ", " ", ""}

// Recursive splits document content into chunks of at most chunkSize
// characters, with consecutive chunks from the same document sharing an
// overlap-sized tail to preserve cross-boundary context.
type Recursive struct {
	chunkSize int
	overlap   int
}

// NewRecursive creates a recursive character splitter. The overlap is
// clamped below the chunk size so splitting always makes progress.
func NewRecursive(chunkSize, overlap int) *Recursive {
	if chunkSize < 1 {
		chunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Recursive{chunkSize: chunkSize, overlap: overlap}
}

// Chunk splits one document. A document that already fits the budget
// yields exactly one chunk with no overlap applied. Chunk metadata is
// the parent document's metadata, unmodified.
func (c *Recursive) Chunk(doc domain.Document) ([]domain.Chunk, error) {
	text := strings.TrimSpace(doc.Content)
	if text == "" {
		return nil, nil
	}

	var parts []string
	if len(text) <= c.chunkSize {
		parts = []string{text}
	} else {
		parts = c.splitText(text, defaultSeparators)
	}

	chunks := make([]domain.Chunk, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimRight(part, " \n")
		if strings.TrimSpace(part) == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			ID:       chunkID(doc.Source(), i, part),
			Text:     part,
			Metadata: copyMetadata(doc.Metadata),
		})
	}

	return chunks, nil
}

// splitText splits text at the first separator whose pieces can be
// packed within the size budget, recursing into pieces that are still
// too large with the remaining, finer separators.
func (c *Recursive) splitText(text string, seps []string) []string {
	if len(text) <= c.chunkSize {
		return []string{text}
	}
	if len(seps) == 0 || seps[0] == "" {
		return c.windows(text)
	}

	sep, rest := seps[0], seps[1:]
	if !strings.Contains(text, sep) {
		return c.splitText(text, rest)
	}

	// SplitAfter keeps the separator attached so no content is lost.
	var pieces []string
	for _, p := range strings.SplitAfter(text, sep) {
		if p == "" {
			continue
		}
		if len(p) > c.chunkSize {
			pieces = append(pieces, c.splitText(p, rest)...)
		} else {
			pieces = append(pieces, p)
		}
	}

	return c.merge(pieces)
}

// merge packs pieces greedily into chunks no longer than chunkSize,
// seeding each new chunk with the tail of the previous one.
func (c *Recursive) merge(pieces []string) []string {
	var out []string
	var cur, seed string

	for _, p := range pieces {
		if cur != "" && len(cur)+len(p) > c.chunkSize {
			if cur != seed {
				out = append(out, cur)
				seed = lastChars(cur, c.overlap)
				cur = seed
			}
			// The seed alone may still not leave room for the piece.
			if len(cur)+len(p) > c.chunkSize {
				cur, seed = "", ""
			}
		}
		cur += p
	}

	if cur != "" && cur != seed {
		out = append(out, cur)
	}

	return out
}

// windows is the character-level fallback: fixed windows advancing by
// chunkSize-overlap, so adjacent windows share exactly overlap
// characters.
func (c *Recursive) windows(text string) []string {
	runes := []rune(text)
	stride := c.chunkSize - c.overlap

	var out []string
	for i := 0; i < len(runes); i += stride {
		end := i + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
		if end >= len(runes) {
			break
		}
	}
	return out
}

// lastChars returns the trailing n characters of s.
func lastChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

func chunkID(source string, seq int, text string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%s", source, seq, text)))
	return hex.EncodeToString(hash[:8])
}

func copyMetadata(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
