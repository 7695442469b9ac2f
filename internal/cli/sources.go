package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/elix1er/ai-news-aggregator/internal/output"
)

func newSourcesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "sources",
		Aliases: []string{"ls"},
		Short:   "List configured sources",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout())
			printer.Header("Sources")

			table := output.NewTable(printer.Writer(), []string{"#", "kind", "url", "article selector"})
			for i, src := range opts.app.Sources() {
				article := ""
				if src.Selectors != nil {
					article = src.Selectors.Article
				}
				table.AddRow(strconv.Itoa(i+1), printer.Kind(string(src.Kind)), src.URL, article)
			}
			return table.Render()
		},
	}
}
