package cli

import (
	"github.com/spf13/cobra"

	"github.com/elix1er/ai-news-aggregator/internal/infrastructure/storage"
	"github.com/elix1er/ai-news-aggregator/internal/output"
)

func newRecentCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the newest written documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := opts.app.Recent(limit)
			if err != nil {
				return err
			}

			printer := output.NewPrinter(cmd.OutOrStdout())
			if len(docs) == 0 {
				printer.Warning("no documents in %s", opts.cfg.Output.Dir)
				return nil
			}

			printer.Header("Recent documents")
			table := output.NewTable(printer.Writer(), []string{"date", "title", "file"})
			for _, doc := range docs {
				table.AddRow(shortDate(doc.Date), doc.Title, doc.Name)
			}
			return table.Render()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", storage.DefaultWindow, "maximum number of documents")
	return cmd
}

func shortDate(iso string) string {
	if len(iso) >= len("2006-01-02") {
		return iso[:len("2006-01-02")]
	}
	return iso
}
