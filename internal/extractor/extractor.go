package extractor

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageText is one PDF page's plain text content
type PageText struct {
	Text       string
	PageNumber int // 1-based
}

// reads a PDF file and returns the text of each non-empty page
func ExtractPDFText(path string) ([]PageText, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}

	defer file.Close() //nolint:errcheck

	var pages []PageText

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// extraction failures on individual pages are common with
			// scanned or malformed PDFs; skip the page, keep the rest
			continue
		}

		text = cleanPageText(text)
		if text == "" {
			continue
		}

		pages = append(pages, PageText{Text: text, PageNumber: i})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no extractable text in %s", path)
	}

	return pages, nil
}

// strips NUL bytes and surrounding whitespace
func cleanPageText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	return strings.TrimSpace(text)
}
