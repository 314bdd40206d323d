package parser

import (
	"regexp"
	"strings"
)

// proximoRotuloRe matches the start of the next "Label:" token in a
// normalized line. It is the boundary every label-anchored value stops at.
var proximoRotuloRe = regexp.MustCompile(`\s+[A-Z][a-zA-Z]*:`)

// Secao cuts the window that starts at the inicio anchor (inclusive) and ends
// at the earliest of the fim anchors, or at the end of the text when none
// occurs. A missing start anchor means the section is absent, never an error.
func Secao(texto, inicio string, fims ...string) (string, bool) {
	idx := strings.Index(texto, inicio)
	if idx < 0 {
		return "", false
	}

	resto := texto[idx:]
	fim := len(resto)
	for _, f := range fims {
		if pos := strings.Index(resto[len(inicio):], f); pos >= 0 && len(inicio)+pos < fim {
			fim = len(inicio) + pos
		}
	}
	return strings.TrimSpace(resto[:fim]), true
}

// ValorEntre cuts the value between a label and the earliest of the fim
// anchors (or end of text). The label itself, an optional colon after it and
// surrounding whitespace are stripped. The bool reports whether the label was
// present at all; a present label with nothing before the next anchor yields
// "".
func ValorEntre(texto, rotulo string, fims ...string) (string, bool) {
	idx := strings.Index(texto, rotulo)
	if idx < 0 {
		return "", false
	}
	return cortarAte(texto[idx+len(rotulo):], fims), true
}

// valorEntreRe is ValorEntre for labels that need a pattern (case-insensitive
// anchors, flexible internal whitespace). The window starts where the label
// match ends.
func valorEntreRe(texto string, rotulo *regexp.Regexp, fims ...string) (string, bool) {
	loc := rotulo.FindStringIndex(texto)
	if loc == nil {
		return "", false
	}
	return cortarAte(texto[loc[1]:], fims), true
}

func cortarAte(resto string, fims []string) string {
	fim := len(resto)
	for _, f := range fims {
		if pos := strings.Index(resto, f); pos >= 0 && pos < fim {
			fim = pos
		}
	}
	valor := strings.TrimSpace(resto[:fim])
	valor = strings.TrimPrefix(valor, ":")
	return strings.TrimSpace(valor)
}

// ValorAposRotulo cuts the value that follows a label inside a window,
// stopping at the next capitalized "Label:" token. The value of a field never
// contains a colon; when the cut still holds one the label's own value is
// absent and nil is returned.
func ValorAposRotulo(janela, rotulo string) *string {
	rotuloRe := regexp.MustCompile(regexp.QuoteMeta(rotulo) + `[\s:]*`)
	loc := rotuloRe.FindStringIndex(janela)
	if loc == nil {
		return nil
	}

	resto := janela[loc[1]:]
	if prox := proximoRotuloRe.FindStringIndex(resto); prox != nil {
		resto = resto[:prox[0]]
	}

	valor := Normalize(resto)
	if valor == "" || strings.Contains(valor, ":") {
		return nil
	}
	return &valor
}
