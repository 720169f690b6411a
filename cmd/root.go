package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "inkpress",
	Short: "Static notebook site generator with synced lyrics",
	Long: `Inkpress builds a static notebook site from Markdown posts and
self-contained HTML experiments. Experiments can ship LRC timing files,
which are turned into lyric lists that highlight and scroll in step with
the page's audio while served by inkpress.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".inkpress.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

