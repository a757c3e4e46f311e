package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName trims surrounding whitespace, collapses inner runs of
// whitespace and title-cases every word ("  whole  MILK " -> "Whole Milk").
func NormalizeName(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return cases.Title(language.Und).String(strings.Join(fields, " "))
}

// FoldName returns the comparison key of a name: whitespace collapsed and
// case-folded, so "Über  Flat" and "über flat" share a key.
func FoldName(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
