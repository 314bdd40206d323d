// Package export renders stored extractions as spreadsheet files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"nfscan/internal/domain"
)

const sheetName = "Notas"

var headers = []string{
	"Arquivo",
	"Estratégia",
	"Número NFSe",
	"Código de Verificação",
	"Prestador",
	"CNPJ Prestador",
	"Valor dos Serviços",
	"Extraído em",
}

// WriteXLSX builds an XLSX workbook with one row per extraction record.
func WriteXLSX(recs []domain.ExtractionRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for row, rec := range recs {
		numeroNFSe := ""
		if rec.NumeroNFSe != nil {
			numeroNFSe = *rec.NumeroNFSe
		}
		valorServicos, _ := rec.ValorServicos.Float64()

		values := []interface{}{
			rec.SourceName,
			rec.Strategy,
			numeroNFSe,
			rec.CodigoVerificacao,
			rec.PrestadorRazaoSocial,
			rec.PrestadorCNPJ,
			valorServicos,
			rec.CreatedAt.Format("02/01/2006 15:04"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", row+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
