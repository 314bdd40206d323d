package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"nfscan/internal/canonical"
	"nfscan/internal/domain"
	"nfscan/internal/port"
)

// InvoiceService orchestrates extraction: pull text out of a document, parse
// it into a structured record, store the canonical result.
type InvoiceService interface {
	ExtractFromFile(ctx context.Context, name string, data []byte) (*domain.ExtractionRecord, error)
	ExtractFromText(ctx context.Context, name, texto string) (*domain.ExtractionRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionRecord, error)
	List(ctx context.Context, limit, offset int) ([]domain.ExtractionRecord, int, error)
}

type invoiceService struct {
	extractor   port.TextExtractor
	parser      port.InvoiceParser
	repo        port.ExtractionRepository
	strategy    string
	maxFileSize int64
}

// NewInvoiceService creates an InvoiceService. strategy names the configured
// parser for bookkeeping; maxFileSizeMB caps uploads.
func NewInvoiceService(extractor port.TextExtractor, parser port.InvoiceParser, repo port.ExtractionRepository, strategy string, maxFileSizeMB int64) InvoiceService {
	return &invoiceService{
		extractor:   extractor,
		parser:      parser,
		repo:        repo,
		strategy:    strategy,
		maxFileSize: maxFileSizeMB * 1024 * 1024,
	}
}

func (s *invoiceService) ExtractFromFile(ctx context.Context, name string, data []byte) (*domain.ExtractionRecord, error) {
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: %s (%d bytes)", domain.ErrFileTooLarge, name, len(data))
	}

	texto, err := s.extractor.Extract(ctx, name, data)
	if err != nil {
		return nil, err
	}

	return s.ExtractFromText(ctx, name, texto)
}

func (s *invoiceService) ExtractFromText(ctx context.Context, name, texto string) (*domain.ExtractionRecord, error) {
	nfse, err := s.parser.Parse(ctx, texto)
	if err != nil {
		return nil, fmt.Errorf("parsing invoice: %w", err)
	}

	payload, err := canonical.Encode(nfse)
	if err != nil {
		return nil, fmt.Errorf("encoding invoice: %w", err)
	}

	rec := &domain.ExtractionRecord{
		ID:                   uuid.New(),
		SourceName:           name,
		Strategy:             s.strategy,
		NumeroNFSe:           nfse.NumeroNFSe,
		CodigoVerificacao:    nfse.CodigoVerificacao,
		PrestadorRazaoSocial: nfse.Prestador.RazaoSocial,
		PrestadorCNPJ:        nfse.Prestador.CNPJ,
		ValorServicos:        nfse.Valores.ValorServicos,
		Payload:              payload,
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving extraction: %w", err)
	}

	log.Printf("service.InvoiceService: extracted %s (nfse=%s, strategy=%s)", name, rec.CodigoVerificacao, s.strategy)
	return rec, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, limit, offset int) ([]domain.ExtractionRecord, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
