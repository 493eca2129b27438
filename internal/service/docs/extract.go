package docs

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	pdf "github.com/ledongthuc/pdf"

	"github.com/willowmind/companion-backend/internal/apperr"
)

// Extract pulls plain text out of an uploaded document. Supported
// extensions are .txt and .pdf; anything else is rejected before any
// parsing is attempted.
func Extract(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("text document is not valid UTF-8")
		}
		return strings.TrimSpace(string(data)), nil
	case ".pdf":
		return extractPDF(data)
	default:
		return "", apperr.ErrUnsupportedFormat
	}
}

// extractPDF concatenates the text of every page, one page per line.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}

	var out strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("pdf page %d: %w", i, err)
		}
		out.WriteString(text)
		out.WriteString("\n")
	}
	return strings.TrimSpace(out.String()), nil
}
