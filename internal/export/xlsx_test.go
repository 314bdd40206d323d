package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"nfscan/internal/domain"
)

func TestWriteXLSX(t *testing.T) {
	numero := "29"
	recs := []domain.ExtractionRecord{
		{
			ID:                   uuid.New(),
			SourceName:           "nota.pdf",
			Strategy:             "text",
			NumeroNFSe:           &numero,
			CodigoVerificacao:    "XYZ123",
			PrestadorRazaoSocial: "EMPRESA FICTÍCIA LTDA",
			PrestadorCNPJ:        "12.345.678/0001-90",
			ValorServicos:        decimal.RequireFromString("1500.00"),
			CreatedAt:            time.Date(2025, 1, 2, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:                   uuid.New(),
			SourceName:           "outra.txt",
			Strategy:             "claude",
			CodigoVerificacao:    "ABC999",
			PrestadorRazaoSocial: "OUTRA EMPRESA",
			PrestadorCNPJ:        "98.765.432/0001-55",
			ValorServicos:        decimal.RequireFromString("42.50"),
			CreatedAt:            time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC),
		},
	}

	data, err := WriteXLSX(recs)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Notas"}, f.GetSheetList())

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		got, err := f.GetCellValue("Notas", cell)
		require.NoError(t, err)
		assert.Equal(t, h, got)
	}

	check := func(cell, querido string) {
		t.Helper()
		got, err := f.GetCellValue("Notas", cell)
		require.NoError(t, err)
		assert.Equal(t, querido, got)
	}
	check("A2", "nota.pdf")
	check("B2", "text")
	check("C2", "29")
	check("D2", "XYZ123")
	check("E2", "EMPRESA FICTÍCIA LTDA")
	check("F2", "12.345.678/0001-90")
	check("G2", "1500")
	check("H2", "02/01/2025 10:30")

	check("A3", "outra.txt")
	check("C3", "")
	check("G3", "42.5")
}

func TestWriteXLSXEmpty(t *testing.T) {
	data, err := WriteXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetCellValue("Notas", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Arquivo", got)

	got, err = f.GetCellValue("Notas", "A2")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
