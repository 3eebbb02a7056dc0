package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"newsbias/utils/output"
)

var articlesCmd = &cobra.Command{
	Use:   "articles <source>",
	Short: "Show the articles selected for a source",
	Long: `Search the source's domain and print up to five articles, political
ones first.

Examples:
  newsbias articles cnn
  newsbias articles "NBC News" --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := buildContainer()
		if err != nil {
			return err
		}
		defer container.Close()

		batch, err := container.SelectArticlesUsecase.Execute(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(cmd, batch)
		}

		printer.Header(batch.Source.Name + " (" + batch.Source.Domain + ")")
		table := output.NewTable(printer.Out(), []string{"#", "TITLE", "POLITICAL", "PUBLISHED", "URL"}).
			LimitColumn(1, 70)
		for i, a := range batch.Articles {
			published := ""
			if !a.PublishedAt.IsZero() {
				published = a.PublishedAt.UTC().Format("2006-01-02 15:04")
			}
			table.AddRow([]string{
				strconv.Itoa(i + 1),
				a.Title,
				printer.Badge(a.Political, "yes"),
				published,
				printer.Dim(a.URL),
			})
		}
		return table.Render()
	},
}

func init() {
	rootCmd.AddCommand(articlesCmd)

	articlesCmd.Flags().Bool("json", false, "output as JSON")
}
