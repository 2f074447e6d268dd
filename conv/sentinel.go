package conv

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// normalizeSentinel trims, composes (NFC) and case folds text, so "N/A" matches " n/a ".
func normalizeSentinel(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	//cases.Caser is stateful, do not share
	return cases.Fold().String(norm.NFC.String(text))
}

func matchAny(values []string, text string) bool {
	if len(values) == 0 {
		return false
	}
	candidate := normalizeSentinel(text)
	for _, value := range values {
		if value == text || normalizeSentinel(value) == candidate {
			return true
		}
	}
	return false
}
