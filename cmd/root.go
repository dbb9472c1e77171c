package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig   string
	flagData     string
	flagEndpoint string
	flagID       string
)

var rootCmd = &cobra.Command{
	Use:   "logos",
	Short: "Terminal reader for LogosMaximus quotes",
	Long:  "logos shows quotes from the LogosMaximus endpoint with category and length filters, search, favorites and sharing.",
	RunE:  runTUI,
	// Errors are printed by Execute; usage only for flag mistakes.
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "path to the local database")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "override the quote endpoint")
	rootCmd.Flags().StringVar(&flagID, "id", "", "open the quote with this id")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(offlineCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("logos %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
