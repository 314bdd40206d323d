package parser

import (
	"regexp"
	"strings"
)

var (
	// Zero-width space, non-joiner, joiner and BOM. PDF text layers leak
	// these into the middle of labels.
	zeroWidthRe  = regexp.MustCompile("[\u200B\u200C\u200D\uFEFF]")
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize strips zero-width characters, collapses whitespace runs (including
// line breaks) into single spaces and trims the ends. It is idempotent; every
// extraction rule in this package assumes its input went through it.
func Normalize(texto string) string {
	if texto == "" {
		return ""
	}
	limpo := zeroWidthRe.ReplaceAllString(texto, "")
	limpo = whitespaceRe.ReplaceAllString(limpo, " ")
	return strings.TrimSpace(limpo)
}
