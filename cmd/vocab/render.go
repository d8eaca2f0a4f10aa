package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/heartmarshall/vocabook/internal/domain"
	"github.com/heartmarshall/vocabook/internal/provider"
)

var (
	bold   = color.New(color.Bold)
	italic = color.New(color.Italic)
	faint  = color.New(color.Faint)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

func printDefinition(w io.Writer, word string, res provider.DefinitionResult) {
	bold.Fprint(w, word)
	if res.PartOfSpeech != nil {
		italic.Fprintf(w, " (%s)", *res.PartOfSpeech)
	}
	fmt.Fprintln(w)

	if res.IsFallback() {
		yellow.Fprintf(w, "  %s\n", res.Definition)
		return
	}
	fmt.Fprintf(w, "  %s\n", res.Definition)
	if res.Example != nil {
		faint.Fprintf(w, "  e.g. %s\n", *res.Example)
	}
}

func printEntries(w io.Writer, entries []domain.VocabularyEntry) {
	if len(entries) == 0 {
		faint.Fprintln(w, "no words yet")
		return
	}

	for _, e := range entries {
		faint.Fprintf(w, "#%-5d ", e.ID)
		bold.Fprint(w, e.Word)
		if e.PartOfSpeech != nil {
			italic.Fprintf(w, " (%s)", *e.PartOfSpeech)
		}
		fmt.Fprintf(w, "  %s\n", e.Definition)
		if e.Note != nil {
			faint.Fprintf(w, "       note: %s\n", *e.Note)
		}
	}
	faint.Fprintf(w, "%d words\n", len(entries))
}

func printAddResult(w io.Writer, r addResult) {
	switch {
	case r.err != nil:
		red.Fprintf(w, "✗ %s: %s\n", r.word, domain.Message(r.err))
	case !r.found:
		yellow.Fprintf(w, "✓ #%d %s: %s\n", r.entry.ID, r.entry.Word, r.entry.Definition)
	default:
		green.Fprintf(w, "✓ #%d %s: %s\n", r.entry.ID, r.entry.Word, r.entry.Definition)
	}
}
