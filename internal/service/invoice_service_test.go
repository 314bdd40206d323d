package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nfscan/internal/domain"
	"nfscan/mocks"
)

func nfseDeTeste() *domain.NFSe {
	numero := "29"
	return &domain.NFSe{
		CodigoVerificacao: "XYZ123",
		NumeroNFSe:        &numero,
		Prestador: domain.Empresa{
			RazaoSocial: "EMPRESA FICTÍCIA LTDA",
			CNPJ:        "12.345.678/0001-90",
		},
		Tomador: domain.Empresa{RazaoSocial: "CLIENTE", CNPJ: "98.765.432/0001-55"},
		Servico: domain.ServicoDetalhe{Descricao: "Serviços"},
		Valores: domain.Valores{ValorServicos: decimal.NewFromInt(1500)},
	}
}

func TestExtractFromText(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	parser := new(mocks.MockInvoiceParser)
	repo := new(mocks.MockExtractionRepo)

	parser.On("Parse", mock.Anything, "texto da nota").Return(nfseDeTeste(), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.ExtractionRecord")).Return(nil)

	svc := NewInvoiceService(extractor, parser, repo, "text", 20)
	rec, err := svc.ExtractFromText(context.Background(), "nota.txt", "texto da nota")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, "nota.txt", rec.SourceName)
	assert.Equal(t, "text", rec.Strategy)
	require.NotNil(t, rec.NumeroNFSe)
	assert.Equal(t, "29", *rec.NumeroNFSe)
	assert.Equal(t, "XYZ123", rec.CodigoVerificacao)
	assert.Equal(t, "EMPRESA FICTÍCIA LTDA", rec.PrestadorRazaoSocial)
	assert.Equal(t, "12.345.678/0001-90", rec.PrestadorCNPJ)
	assert.True(t, rec.ValorServicos.Equal(decimal.NewFromInt(1500)))
	assert.Contains(t, string(rec.Payload), `"codigo_verificacao":"XYZ123"`)

	repo.AssertExpectations(t)
}

func TestExtractFromTextParserError(t *testing.T) {
	parser := new(mocks.MockInvoiceParser)
	repo := new(mocks.MockExtractionRepo)

	parser.On("Parse", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("boom"))

	svc := NewInvoiceService(new(mocks.MockTextExtractor), parser, repo, "text", 20)
	_, err := svc.ExtractFromText(context.Background(), "nota.txt", "texto")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing invoice")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestExtractFromTextSaveError(t *testing.T) {
	parser := new(mocks.MockInvoiceParser)
	repo := new(mocks.MockExtractionRepo)

	parser.On("Parse", mock.Anything, mock.Anything).Return(nfseDeTeste(), nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(fmt.Errorf("db down"))

	svc := NewInvoiceService(new(mocks.MockTextExtractor), parser, repo, "text", 20)
	_, err := svc.ExtractFromText(context.Background(), "nota.txt", "texto")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving extraction")
}

func TestExtractFromFile(t *testing.T) {
	t.Run("delegates extraction then parses", func(t *testing.T) {
		extractor := new(mocks.MockTextExtractor)
		parser := new(mocks.MockInvoiceParser)
		repo := new(mocks.MockExtractionRepo)

		dados := []byte("%PDF-1.7 ...")
		extractor.On("Extract", mock.Anything, "nota.pdf", dados).Return("texto extraído", nil)
		parser.On("Parse", mock.Anything, "texto extraído").Return(nfseDeTeste(), nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := NewInvoiceService(extractor, parser, repo, "text", 20)
		rec, err := svc.ExtractFromFile(context.Background(), "nota.pdf", dados)

		require.NoError(t, err)
		assert.Equal(t, "nota.pdf", rec.SourceName)
		extractor.AssertExpectations(t)
	})

	t.Run("file too large", func(t *testing.T) {
		extractor := new(mocks.MockTextExtractor)

		svc := NewInvoiceService(extractor, new(mocks.MockInvoiceParser), new(mocks.MockExtractionRepo), "text", 1)
		_, err := svc.ExtractFromFile(context.Background(), "grande.pdf", make([]byte, 2*1024*1024))

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrFileTooLarge))
		extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("extractor error propagates", func(t *testing.T) {
		extractor := new(mocks.MockTextExtractor)
		extractor.On("Extract", mock.Anything, "scan.png", mock.Anything).
			Return("", fmt.Errorf("%w: scan.png", domain.ErrUnsupportedFileType))

		svc := NewInvoiceService(extractor, new(mocks.MockInvoiceParser), new(mocks.MockExtractionRepo), "text", 20)
		_, err := svc.ExtractFromFile(context.Background(), "scan.png", []byte{1, 2, 3})

		assert.True(t, errors.Is(err, domain.ErrUnsupportedFileType))
	})
}

func TestListClampsLimit(t *testing.T) {
	repo := new(mocks.MockExtractionRepo)
	repo.On("List", mock.Anything, 20, 0).Return([]domain.ExtractionRecord{}, 0, nil)

	svc := NewInvoiceService(new(mocks.MockTextExtractor), new(mocks.MockInvoiceParser), repo, "text", 20)

	_, _, err := svc.List(context.Background(), 0, -5)
	require.NoError(t, err)
	_, _, err = svc.List(context.Background(), 500, 0)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "List", 2)
}

func TestGetByID(t *testing.T) {
	repo := new(mocks.MockExtractionRepo)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	svc := NewInvoiceService(new(mocks.MockTextExtractor), new(mocks.MockInvoiceParser), repo, "text", 20)
	_, err := svc.GetByID(context.Background(), id)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
