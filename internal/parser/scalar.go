package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ausente is the placeholder municipal layouts print for empty fields.
const ausente = "---"

var (
	moedaRuidoRe = regexp.MustCompile(`[^\d,]`)
	percentualRe = regexp.MustCompile(`\d+(?:[,.]\d+)?`)
	dataHoraRe   = regexp.MustCompile(`\d{2}/\d{2}/\d{4} \d{2}:\d{2}`)
	dataRe       = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	cnpjRe       = regexp.MustCompile(`\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}`)
	cpfRe        = regexp.MustCompile(`\d{3}\.\d{3}\.\d{3}-\d{2}`)
	naoDigitoRe  = regexp.MustCompile(`[^\d]`)
)

// ParseMoeda reads a Brazilian currency literal ("R$ 1.500,00") into a
// decimal (1500.00). Empty input, the "---" placeholder and garbage all
// yield zero.
func ParseMoeda(texto string) decimal.Decimal {
	texto = Normalize(texto)
	if texto == "" || texto == ausente {
		return decimal.Zero
	}

	// Drop R$, thousand separators and stray text; the comma is the
	// decimal mark.
	valor := strings.ReplaceAll(moedaRuidoRe.ReplaceAllString(texto, ""), ",", ".")
	if valor == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(valor)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParsePercentual reads a percentage literal ("2%", "2,5 %") into a ratio
// (0.02, 0.025). Empty input and the "---" placeholder yield zero.
func ParsePercentual(texto string) decimal.Decimal {
	texto = Normalize(texto)
	if texto == "" || texto == ausente {
		return decimal.Zero
	}

	m := percentualRe.FindString(texto)
	if m == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(m, ",", "."))
	if err != nil {
		return decimal.Zero
	}
	return d.Div(decimal.NewFromInt(100))
}

// ParseDataHora finds the first Brazilian date in the text, with or without a
// time component ("01/01/2025 09:00", "01/01/2025"). Returns nil when none
// parses.
func ParseDataHora(texto string) *time.Time {
	texto = Normalize(texto)
	if texto == "" || texto == ausente {
		return nil
	}

	if m := dataHoraRe.FindString(texto); m != "" {
		if t, err := time.Parse("02/01/2006 15:04", m); err == nil {
			return &t
		}
	}
	if m := dataRe.FindString(texto); m != "" {
		if t, err := time.Parse("02/01/2006", m); err == nil {
			return &t
		}
	}
	return nil
}

// ParseCNPJCPF finds a tax id in the text: a formatted CNPJ
// (12.345.678/0001-90), a formatted CPF (123.456.789-00), or a bare 14- or
// 11-digit run after stripping punctuation. Returns nil when none is found.
func ParseCNPJCPF(texto string) *string {
	texto = Normalize(texto)
	if texto == "" || texto == ausente {
		return nil
	}

	if m := cnpjRe.FindString(texto); m != "" {
		return &m
	}
	if m := cpfRe.FindString(texto); m != "" {
		return &m
	}

	nums := SomenteDigitos(texto)
	if len(nums) == 11 || len(nums) == 14 {
		return &nums
	}
	return nil
}

// SomenteDigitos strips everything but digits.
func SomenteDigitos(texto string) string {
	return naoDigitoRe.ReplaceAllString(texto, "")
}
