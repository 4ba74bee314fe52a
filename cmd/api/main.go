package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site with admin-managed projects",
	Long: `Serves the portfolio site and its projects API.

Available subcommands:
  serve - Run the HTTP server
  seed  - Insert the content file's projects into an empty collection`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logutils.Log.WithField("error", err).Error("command failed")
		os.Exit(1)
	}
}
