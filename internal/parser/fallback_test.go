package parser

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nfscan/internal/domain"
	"nfscan/internal/port"
	"nfscan/mocks"
)

func TestFallbackParserFirstSucceeds(t *testing.T) {
	primario := new(mocks.MockInvoiceParser)
	secundario := new(mocks.MockInvoiceParser)

	querido := &domain.NFSe{CodigoVerificacao: "ABC"}
	primario.On("Parse", mock.Anything, "texto").Return(querido, nil)

	fp := NewFallbackParser([]port.InvoiceParser{primario, secundario}, []string{"claude", "text"})
	nfse, err := fp.Parse(context.Background(), "texto")

	require.NoError(t, err)
	assert.Equal(t, querido, nfse)
	primario.AssertExpectations(t)
	secundario.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything)
}

func TestFallbackParserFallsThrough(t *testing.T) {
	primario := new(mocks.MockInvoiceParser)
	secundario := new(mocks.MockInvoiceParser)

	querido := &domain.NFSe{CodigoVerificacao: "DEF"}
	primario.On("Parse", mock.Anything, "texto").Return(nil, fmt.Errorf("boom"))
	secundario.On("Parse", mock.Anything, "texto").Return(querido, nil)

	fp := NewFallbackParser([]port.InvoiceParser{primario, secundario}, []string{"claude", "text"})
	nfse, err := fp.Parse(context.Background(), "texto")

	require.NoError(t, err)
	assert.Equal(t, querido, nfse)
}

func TestFallbackParserOpensCircuitOnRateLimit(t *testing.T) {
	primario := new(mocks.MockInvoiceParser)
	secundario := new(mocks.MockInvoiceParser)

	querido := &domain.NFSe{CodigoVerificacao: "GHI"}
	primario.On("Parse", mock.Anything, "texto").Return(nil, NewRateLimitError("claude", fmt.Errorf("429"), 60))
	secundario.On("Parse", mock.Anything, "texto").Return(querido, nil)

	fp := NewFallbackParser([]port.InvoiceParser{primario, secundario}, []string{"claude", "text"})

	nfse, err := fp.Parse(context.Background(), "texto")
	require.NoError(t, err)
	assert.Equal(t, querido, nfse)

	// The circuit stays open, so the second call skips the primary entirely.
	nfse, err = fp.Parse(context.Background(), "texto")
	require.NoError(t, err)
	assert.Equal(t, querido, nfse)
	primario.AssertNumberOfCalls(t, "Parse", 1)
	secundario.AssertNumberOfCalls(t, "Parse", 2)
}

func TestFallbackParserAllRateLimited(t *testing.T) {
	primario := new(mocks.MockInvoiceParser)
	secundario := new(mocks.MockInvoiceParser)

	primario.On("Parse", mock.Anything, "texto").Return(nil, NewRateLimitError("claude", fmt.Errorf("429"), 30))
	secundario.On("Parse", mock.Anything, "texto").Return(nil, NewRateLimitError("other", fmt.Errorf("429"), 45))

	fp := NewFallbackParser([]port.InvoiceParser{primario, secundario}, []string{"claude", "other"})
	_, err := fp.Parse(context.Background(), "texto")

	require.Error(t, err)
	var rlErr *RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Strategy)
	assert.LessOrEqual(t, rlErr.RetryAfter, 30*time.Second)
}

func TestFallbackParserAllFail(t *testing.T) {
	primario := new(mocks.MockInvoiceParser)
	secundario := new(mocks.MockInvoiceParser)

	primario.On("Parse", mock.Anything, "texto").Return(nil, fmt.Errorf("first broken"))
	secundario.On("Parse", mock.Anything, "texto").Return(nil, fmt.Errorf("second broken"))

	fp := NewFallbackParser([]port.InvoiceParser{primario, secundario}, []string{"a", "b"})
	_, err := fp.Parse(context.Background(), "texto")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all parsers failed")
	assert.Contains(t, err.Error(), "second broken")
}
