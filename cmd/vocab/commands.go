package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/vocabook/internal/domain"
	"github.com/heartmarshall/vocabook/internal/vocabulary"
)

// sortFlag accepts the names understood by domain.ParseSortCriteria.
type sortFlag domain.SortCriteria

var _ pflag.Value = (*sortFlag)(nil)

func (s *sortFlag) Set(val string) error {
	c, err := domain.ParseSortCriteria(val)
	if err != nil {
		return errors.New("must be one of: date, word")
	}
	*s = sortFlag(c)
	return nil
}

func (s sortFlag) String() string { return string(s) }

func (s *sortFlag) Type() string { return "sort" }

func newLookupCommand(build envFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>",
		Short: "Show the dictionary definition of a word without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := build(cmd)
			if err != nil {
				return err
			}
			res := e.resolver.Resolve(cmd.Context(), args[0])
			printDefinition(e.out, args[0], res)
			return nil
		},
	}
}

func newListCommand(build envFactory) *cobra.Command {
	var (
		filter string
		sort   = sortFlag(domain.SortByDate)
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := build(cmd)
			if err != nil {
				return err
			}
			if _, err := e.store.Load(cmd.Context()); err != nil {
				return errors.New(domain.Message(err))
			}
			printEntries(e.out, e.store.View(filter, domain.SortCriteria(sort)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "case-insensitive substring of the word")
	cmd.Flags().VarP(&sort, "sort", "s", "order: date (newest first) or word")
	return cmd
}

func newAddCommand(build envFactory) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "add <word>...",
		Short: "Look words up and save them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := build(cmd)
			if err != nil {
				return err
			}
			return addWords(cmd, e, args, note)
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "personal note attached to every added word")
	return cmd
}

type addResult struct {
	word  string
	entry domain.VocabularyEntry
	found bool
	err   error
}

// addWords resolves and saves words concurrently, bounded by the configured
// lookup concurrency. One failing word does not stop the others.
func addWords(cmd *cobra.Command, e *env, words []string, note string) error {
	ctx := cmd.Context()
	results := make([]addResult, len(words))

	var g errgroup.Group
	g.SetLimit(max(e.concurrency, 1))

	for i, word := range words {
		g.Go(func() error {
			res := e.resolver.Resolve(ctx, word)
			entry, err := e.store.Add(ctx, domain.Draft{
				Word:         word,
				Definition:   res.Definition,
				PartOfSpeech: res.PartOfSpeech,
				Example:      res.Example,
				Note:         domain.OptionalString(note),
			})
			results[i] = addResult{word: word, entry: entry, found: !res.IsFallback(), err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
		}
		printAddResult(e.out, r)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d words were not saved", failed, len(words))
	}
	return nil
}

func newRemoveCommand(build envFactory) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a saved word by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[0])
			}

			e, err := build(cmd)
			if err != nil {
				return err
			}
			if err := e.store.Remove(cmd.Context(), id); err != nil {
				return errors.New(domain.Message(err))
			}
			fmt.Fprintf(e.out, "removed #%d\n", id)
			return nil
		},
	}
}

func newExportCommand(build envFactory) *cobra.Command {
	var (
		output string
		filter string
		sort   = sortFlag(domain.SortByDate)
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write saved words to a text file (\"-\" for stdout)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := build(cmd)
			if err != nil {
				return err
			}
			if _, err := e.store.Load(cmd.Context()); err != nil {
				return errors.New(domain.Message(err))
			}

			entries := e.store.View(filter, domain.SortCriteria(sort))
			path := output
			if path == "" {
				path = e.exportPath
			}

			if path == "-" {
				_, err := fmt.Fprint(e.out, vocabulary.Serialize(entries))
				return err
			}
			if err := vocabulary.WriteFile(path, entries); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "exported %d entries to %s\n", len(entries), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default from vocabulary.export_path)")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "case-insensitive substring of the word")
	cmd.Flags().VarP(&sort, "sort", "s", "order: date (newest first) or word")
	return cmd
}
