package port

import (
	"context"

	"nfscan/internal/domain"
)

// InvoiceParser turns the raw text of an NFSe document into a structured
// record. Implementations must be total for non-empty text: unrecoverable
// fields get defaults, they never partially fail.
type InvoiceParser interface {
	// Parse extracts a structured NFSe from raw document text.
	Parse(ctx context.Context, texto string) (*domain.NFSe, error)
}

// TextExtractor pulls plain text out of an uploaded document.
type TextExtractor interface {
	// Extract returns the text content of the named file. It returns
	// domain.ErrUnsupportedFileType for formats it cannot handle.
	Extract(ctx context.Context, name string, data []byte) (string, error)
}
