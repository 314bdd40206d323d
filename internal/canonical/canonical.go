// Package canonical fixes the JSON representation of extracted invoices:
// monetary and ratio fields are numbers, timestamps are RFC 3339, absent
// optionals are null. Encode and Decode round-trip.
package canonical

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"nfscan/internal/domain"
)

func init() {
	// Amounts go on the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Encode renders an invoice in the canonical JSON form.
func Encode(nfse *domain.NFSe) ([]byte, error) {
	return json.Marshal(nfse)
}

// EncodeIndent renders the canonical form indented, for files and CLI output.
func EncodeIndent(nfse *domain.NFSe) ([]byte, error) {
	return json.MarshalIndent(nfse, "", "  ")
}

// Decode reads an invoice back from its canonical JSON form.
func Decode(data []byte) (*domain.NFSe, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var nfse domain.NFSe
	if err := dec.Decode(&nfse); err != nil {
		return nil, err
	}
	return &nfse, nil
}
