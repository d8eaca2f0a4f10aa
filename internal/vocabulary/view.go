package vocabulary

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/heartmarshall/vocabook/internal/domain"
)

// View filters entries by a case-insensitive substring of Word and orders
// the result by sort. It never modifies entries and always returns a new
// slice. Ties, and unknown criteria, keep the input order.
func View(entries []domain.VocabularyEntry, filter string, sort domain.SortCriteria, locale language.Tag) []domain.VocabularyEntry {
	out := make([]domain.VocabularyEntry, 0, len(entries))

	if filter == "" {
		out = append(out, entries...)
	} else {
		fold := cases.Fold()
		needle := fold.String(filter)
		for _, e := range entries {
			if strings.Contains(fold.String(e.Word), needle) {
				out = append(out, e)
			}
		}
	}

	switch sort {
	case domain.SortByDate:
		slices.SortStableFunc(out, func(a, b domain.VocabularyEntry) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case domain.SortByWord:
		c := collate.New(locale)
		slices.SortStableFunc(out, func(a, b domain.VocabularyEntry) int {
			return c.CompareString(a.Word, b.Word)
		})
	}

	return out
}
