package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nfscan/internal/domain"
)

// MockInvoiceParser is a mock implementation of port.InvoiceParser.
type MockInvoiceParser struct {
	mock.Mock
}

func (m *MockInvoiceParser) Parse(ctx context.Context, texto string) (*domain.NFSe, error) {
	args := m.Called(ctx, texto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NFSe), args.Error(1)
}
