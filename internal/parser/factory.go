package parser

import (
	"fmt"

	"nfscan/internal/config"
	"nfscan/internal/port"
)

// StrategyFactory is a function that creates an InvoiceParser from a parser config.
type StrategyFactory func(cfg *config.ParserConfig) (port.InvoiceParser, error)

// registry of parser strategy factories, populated by init() in each strategy
// package or explicitly via RegisterStrategy.
var strategies = map[string]StrategyFactory{}

// RegisterStrategy registers a parser strategy factory by name.
func RegisterStrategy(name string, factory StrategyFactory) {
	strategies[name] = factory
}

// NewParser creates an InvoiceParser from a parser config using the registered factory.
func NewParser(cfg *config.ParserConfig) (port.InvoiceParser, error) {
	factory, ok := strategies[cfg.Strategy]
	if !ok {
		return nil, fmt.Errorf("unknown parser strategy: %s", cfg.Strategy)
	}
	return factory(cfg)
}
