package port

import (
	"context"

	"github.com/google/uuid"

	"nfscan/internal/domain"
)

// ExtractionRepository persists extraction results.
type ExtractionRepository interface {
	Save(ctx context.Context, rec *domain.ExtractionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionRecord, error)
	List(ctx context.Context, limit, offset int) ([]domain.ExtractionRecord, int, error)
}
