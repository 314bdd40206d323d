package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfscan/internal/domain"
)

func TestDetectKind(t *testing.T) {
	cases := []struct {
		nome    string
		dados   []byte
		querido Kind
	}{
		{"nota.pdf", []byte("%PDF-1.7"), KindPDF},
		{"NOTA.PDF", nil, KindPDF},
		{"nota.txt", []byte("texto"), KindText},
		{"nota", []byte("%PDF-1.4 ..."), KindPDF},
		{"nota", []byte("texto puro"), KindText},
		{"nota.png", []byte{0x89, 0x50, 0x4e, 0x47}, KindUnknown},
		{"nota.docx", nil, KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.nome, func(t *testing.T) {
			assert.Equal(t, tc.querido, DetectKind(tc.nome, tc.dados))
		})
	}
}

func TestExtract(t *testing.T) {
	e := NewExtractor()
	ctx := context.Background()

	t.Run("plain text passthrough", func(t *testing.T) {
		texto, err := e.Extract(ctx, "nota.txt", []byte("Número da NFS-e 29"))
		require.NoError(t, err)
		assert.Equal(t, "Número da NFS-e 29", texto)
	})

	t.Run("empty text document", func(t *testing.T) {
		_, err := e.Extract(ctx, "vazia.txt", []byte("  \n\t "))
		assert.True(t, errors.Is(err, domain.ErrEmptyDocument))
	})

	t.Run("unsupported image", func(t *testing.T) {
		_, err := e.Extract(ctx, "scan.png", []byte{0x89, 0x50, 0x4e, 0x47})
		assert.True(t, errors.Is(err, domain.ErrUnsupportedFileType))
		assert.Contains(t, err.Error(), "scan.png")
	})

	t.Run("corrupt pdf", func(t *testing.T) {
		_, err := e.Extract(ctx, "quebrada.pdf", []byte("%PDF-1.7 garbage"))
		assert.Error(t, err)
	})
}
