// Command vocab manages a personal vocabulary from the terminal: look words
// up, save them through the persistence gateway, list, remove and export.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/heartmarshall/vocabook/internal/adapter/gateway"
	"github.com/heartmarshall/vocabook/internal/adapter/provider/merriam"
	"github.com/heartmarshall/vocabook/internal/app"
	"github.com/heartmarshall/vocabook/internal/config"
	"github.com/heartmarshall/vocabook/internal/provider"
	"github.com/heartmarshall/vocabook/internal/vocabulary"
)

type resolver interface {
	Resolve(ctx context.Context, word string) provider.DefinitionResult
}

// env is what every subcommand runs against.
type env struct {
	resolver    resolver
	store       *vocabulary.Store
	concurrency int
	exportPath  string
	out         io.Writer
}

type envFactory func(cmd *cobra.Command) (*env, error)

func main() {
	if err := newRootCommand(loadEnv).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(build envFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "vocab",
		Short:         "Look up, save and export vocabulary words",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "config file path (overrides CONFIG_PATH)")

	root.AddCommand(
		newLookupCommand(build),
		newListCommand(build),
		newAddCommand(build),
		newRemoveCommand(build),
		newExportCommand(build),
	)
	return root
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := os.Setenv("CONFIG_PATH", path); err != nil {
			return nil, fmt.Errorf("set CONFIG_PATH: %w", err)
		}
	}

	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}

	logger := app.NewLogger(cfg.Log)

	tag, err := language.Parse(cfg.Vocabulary.Locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale: %w", err)
	}

	client := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Token, logger,
		gateway.WithTimeout(cfg.Gateway.Timeout),
		gateway.WithUserAgent(app.UserAgent()),
	)

	return &env{
		resolver: merriam.NewResolver(cfg.Lookup.APIKey, logger,
			merriam.WithBaseURL(cfg.Lookup.BaseURL),
			merriam.WithTimeout(cfg.Lookup.Timeout),
			merriam.WithRetryDelay(cfg.Lookup.RetryDelay),
		),
		store:       vocabulary.NewStore(client, logger, vocabulary.WithLocale(tag)),
		concurrency: cfg.Vocabulary.LookupConcurrency,
		exportPath:  cfg.Vocabulary.ExportPath,
		out:         cmd.OutOrStdout(),
	}, nil
}
