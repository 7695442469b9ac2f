// Package cli contains the ainews command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elix1er/ai-news-aggregator/internal/app"
	"github.com/elix1er/ai-news-aggregator/internal/config"
	"github.com/elix1er/ai-news-aggregator/internal/logging"
)

type rootOptions struct {
	cfgFile   string
	outputDir string
	logLevel  string

	cfg config.Config
	app *app.Application
}

// NewRootCommand builds the ainews command tree. Running it without a
// subcommand performs one aggregation pass.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "ainews",
		Short: "Aggregate AI news from feeds and web pages into markdown documents",
		Long: `ainews fetches the configured feeds and pages, keeps the items that match
the relevance keywords and writes each one as a document with a YAML header.

Example usage:
  ainews                         # Run one aggregation pass
  ainews sources                 # List configured sources
  ainews recent --limit 20       # Show the newest documents`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregation(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default $AINEWS_CONFIG)")
	flags.StringVar(&opts.outputDir, "output", "", "output directory (default ai_news_updates)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newRunCommand(opts),
		newSourcesCommand(opts),
		newRecentCommand(opts),
	)

	return root
}

// init loads configuration, applies flag overrides and wires the application.
func (o *rootOptions) init(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if o.outputDir != "" {
		cfg.Output.Dir = o.outputDir
	}
	if o.logLevel != "" {
		if !logging.ValidLevel(o.logLevel) {
			return fmt.Errorf("invalid log level %q", o.logLevel)
		}
		cfg.Logging.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewWithWriters(cfg.Logging.Level, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger.Debug("configuration loaded",
		"output_dir", cfg.Output.Dir,
		"sources", len(cfg.Sources),
		"keywords", len(cfg.Keywords),
	)

	o.cfg = cfg
	o.app = app.New(cfg, logger, nil)
	return nil
}
