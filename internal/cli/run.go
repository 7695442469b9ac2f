package cli

import (
	"github.com/spf13/cobra"

	"github.com/elix1er/ai-news-aggregator/internal/output"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one aggregation pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregation(cmd, opts)
		},
	}
}

func runAggregation(cmd *cobra.Command, opts *rootOptions) error {
	report, err := opts.app.Run(cmd.Context())
	if err != nil {
		return err
	}

	printer := output.NewPrinter(cmd.OutOrStdout())
	if report.Failed > 0 {
		printer.Warning("%d of %d documents could not be written", report.Failed, report.Accepted)
	}
	printer.Success("%d documents written to %s", report.Written, opts.cfg.Output.Dir)
	return nil
}
