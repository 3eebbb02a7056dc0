package cmd

import (
	"github.com/spf13/cobra"

	"newsbias/bootstrap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard and JSON API",
	Long: `Start the HTTP server.

Routes:
  GET  /                                  HTML dashboard (?source=cnn)
  GET  /v1/sources                        configured sources
  GET  /v1/sources/:source/articles       selected articles
  GET  /v1/sources/:source/dashboard      articles with all three analyses
  GET  /v1/content?url=                   extracted article text
  POST /v1/analyze                        analyze arbitrary text
  GET  /v1/health, /metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		return bootstrap.Run(cmd.Context(), cfg, version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "listen port (overrides SERVER_PORT)")
}
