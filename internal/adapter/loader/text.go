package loader

import "os"

// extractText reads a plain-text or markdown file whole.
func extractText(path string) (string, map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	return Clean(string(data)), map[string]string{"type": "text"}, nil
}
