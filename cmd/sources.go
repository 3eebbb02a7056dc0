package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"newsbias/domain"
	"newsbias/utils/output"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured news sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources := domain.NewSourceTable(cfg.Sources).All()

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(cmd, sources)
		}

		printer.Header("News Sources")
		table := output.NewTable(printer.Out(), []string{"KEY", "NAME", "DOMAIN"})
		for _, s := range sources {
			table.AddRow([]string{printer.Bold(s.Key), s.Name, s.Domain})
		}
		return table.Render()
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)

	sourcesCmd.Flags().Bool("json", false, "output as JSON")
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
