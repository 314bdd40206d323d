// Package extract pulls plain text out of uploaded invoice documents. PDFs
// are read through their text layer; scanned images have no text layer and
// are rejected as unsupported.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"nfscan/internal/domain"
)

// Kind classifies an uploaded document.
type Kind int

const (
	KindUnknown Kind = iota
	KindPDF
	KindText
)

var pdfMagic = []byte("%PDF-")

// DetectKind classifies a document by extension, falling back to the PDF
// magic bytes for files without one.
func DetectKind(name string, data []byte) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return KindPDF
	case ".txt":
		return KindText
	case "":
		if bytes.HasPrefix(data, pdfMagic) {
			return KindPDF
		}
		return KindText
	default:
		return KindUnknown
	}
}

// Extractor implements port.TextExtractor for PDF and plain-text documents.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text content of the named file. Unsupported formats
// (images included) yield domain.ErrUnsupportedFileType; documents with no
// extractable text yield domain.ErrEmptyDocument.
func (e *Extractor) Extract(_ context.Context, name string, data []byte) (string, error) {
	switch DetectKind(name, data) {
	case KindPDF:
		texto, err := extractPDFText(data)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(texto) == "" {
			return "", fmt.Errorf("%w: %s", domain.ErrEmptyDocument, name)
		}
		return texto, nil
	case KindText:
		if strings.TrimSpace(string(data)) == "" {
			return "", fmt.Errorf("%w: %s", domain.ErrEmptyDocument, name)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, name)
	}
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String()), nil
}
