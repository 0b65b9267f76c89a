package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/enroll/internal/presentation"
)

var (
	requestsLimit  int
	requestsFormat string
)

var requestsListCmd = &cobra.Command{
	Use:   "requests:list",
	Short: "List tracked enrollment requests",
	Long: `List the enrollment requests recorded by the local request tracker, newest first.

Examples:
  enroll requests:list
  enroll requests:list --limit 5 --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := presentation.ValidateFormat(requestsFormat); err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		return listRequests(cmd.Context(), a, cmd.OutOrStdout(), requestsLimit, requestsFormat)
	},
}

func init() {
	requestsListCmd.Flags().IntVarP(&requestsLimit, "limit", "n", 20, "maximum number of requests (0 for all)")
	requestsListCmd.Flags().StringVarP(&requestsFormat, "format", "f", "text", "output format: text or json")
	rootCmd.AddCommand(requestsListCmd)
}

func listRequests(ctx context.Context, a *app, w io.Writer, limit int, format string) error {
	reqs, err := a.db.ListRequests(ctx, limit)
	if err != nil {
		return err
	}
	return presentation.NewFormatterFor(w, format).FormatRequests(presentation.FromTrackedRequests(reqs))
}
