package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/enroll/internal/presentation"
)

var (
	programsLabel  string
	programsFormat string
)

var programsListCmd = &cobra.Command{
	Use:   "programs:list",
	Short: "List training programs",
	Long: `List the training programs in the catalog and whether each can be enrolled into.

Examples:
  enroll programs:list
  enroll programs:list --label front-of-store
  enroll programs:list --format json | jq '.[].id'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := presentation.ValidateFormat(programsFormat); err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		return listPrograms(a, cmd.OutOrStdout(), programsLabel, programsFormat)
	},
}

func init() {
	programsListCmd.Flags().StringVarP(&programsLabel, "label", "l", "", "only programs with this label")
	programsListCmd.Flags().StringVarP(&programsFormat, "format", "f", "text", "output format: text or json")
	rootCmd.AddCommand(programsListCmd)
}

func listPrograms(a *app, w io.Writer, label, format string) error {
	entries := a.catalog.Filter(label)
	registered := a.service.Programs()
	if label != "" {
		// Uncataloged programs carry no labels, so a label filter excludes them.
		registered = nil
		for _, e := range entries {
			if a.service.IsRegistered(e.ID) {
				registered = append(registered, e.ID)
			}
		}
	}
	return presentation.NewFormatterFor(w, format).FormatPrograms(presentation.FromCatalog(entries, registered))
}
