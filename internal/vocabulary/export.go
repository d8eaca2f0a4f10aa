package vocabulary

import (
	"fmt"
	"os"
	"strings"

	"github.com/heartmarshall/vocabook/internal/domain"
)

var exportLabels = [...]string{"Word", "Definition", "Part of Speech", "Example", "Note"}

// ExportRecord is one entry as it appears in the export file. Absent
// optional fields are empty strings.
type ExportRecord struct {
	Word         string
	Definition   string
	PartOfSpeech string
	Example      string
	Note         string
}

// RecordOf returns the export form of e.
func RecordOf(e domain.VocabularyEntry) ExportRecord {
	return ExportRecord{
		Word:         e.Word,
		Definition:   e.Definition,
		PartOfSpeech: domain.ValueOrEmpty(e.PartOfSpeech),
		Example:      domain.ValueOrEmpty(e.Example),
		Note:         domain.ValueOrEmpty(e.Note),
	}
}

func (r ExportRecord) values() [len(exportLabels)]string {
	return [...]string{r.Word, r.Definition, r.PartOfSpeech, r.Example, r.Note}
}

// Serialize renders entries in the given order, five labeled lines and a
// blank line per entry. Values are written verbatim.
func Serialize(entries []domain.VocabularyEntry) string {
	var b strings.Builder
	for _, e := range entries {
		for i, v := range RecordOf(e).values() {
			b.WriteString(exportLabels[i])
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse reads text produced by Serialize. Values containing line breaks
// cannot be read back.
func Parse(text string) ([]ExportRecord, error) {
	var (
		records []ExportRecord
		cur     []string
	)

	for i, line := range strings.Split(text, "\n") {
		if len(cur) == len(exportLabels) {
			if line != "" {
				return nil, fmt.Errorf("line %d: expected blank line after record", i+1)
			}
			records = append(records, recordFrom(cur))
			cur = nil
			continue
		}
		if len(cur) == 0 && line == "" {
			continue
		}

		label := exportLabels[len(cur)]
		v, ok := strings.CutPrefix(line, label+": ")
		if !ok && line == label+":" {
			v, ok = "", true
		}
		if !ok {
			return nil, fmt.Errorf("line %d: expected %q field", i+1, label)
		}
		cur = append(cur, v)
	}

	switch len(cur) {
	case 0:
	case len(exportLabels):
		records = append(records, recordFrom(cur))
	default:
		return nil, fmt.Errorf("truncated record: missing %q field", exportLabels[len(cur)])
	}

	return records, nil
}

func recordFrom(vals []string) ExportRecord {
	return ExportRecord{
		Word:         vals[0],
		Definition:   vals[1],
		PartOfSpeech: vals[2],
		Example:      vals[3],
		Note:         vals[4],
	}
}

// WriteFile serializes entries to path, replacing any existing file.
func WriteFile(path string, entries []domain.VocabularyEntry) error {
	if err := os.WriteFile(path, []byte(Serialize(entries)), 0o644); err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}
	return nil
}
