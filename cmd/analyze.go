package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsbias/domain"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <source>",
	Short: "Run the full dashboard for a source in the terminal",
	Long: `Select articles for the source, fetch each article's text and print the
summary, bias analysis and devil's advocate reading for every article.
This makes three model calls per article.

Examples:
  newsbias analyze politico
  newsbias analyze cnn --json > cnn.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := buildContainer()
		if err != nil {
			return err
		}
		defer container.Close()

		dashboard, err := container.DashboardUsecase.Execute(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(cmd, dashboard)
		}

		printDashboard(dashboard)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Bool("json", false, "output as JSON")
}

func printDashboard(d *domain.Dashboard) {
	printer.Print("%s", printer.Bold(fmt.Sprintf("%s: %d articles", d.Source.Name, len(d.Items))))
	for i, item := range d.Items {
		printer.Header(fmt.Sprintf("%d. %s", i+1, item.Article.Title))
		printer.Print("%s", printer.Dim(item.Article.URL))
		if item.ContentOrigin == domain.ContentFromPreview {
			printer.Warning("full text unavailable, analyzed title and description only: %s", item.Article.URL)
		}
		printer.Print("")
		for _, a := range item.Analyses {
			printer.Section(a.Title, a.Text, a.Degraded)
		}
	}
}
