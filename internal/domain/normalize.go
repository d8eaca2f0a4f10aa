package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// WordKey returns the identity under which two spellings of a word count as
// the same word: NFC-composed, case-folded, with runs of whitespace collapsed
// to one space and the ends trimmed. Diacritics, hyphens and apostrophes are kept.
func WordKey(word string) string {
	fields := strings.Fields(word)
	if len(fields) == 0 {
		return ""
	}
	return folder.String(norm.NFC.String(strings.Join(fields, " ")))
}
