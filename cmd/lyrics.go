package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkpress/internal/lrc"
)

var lyricsCmd = &cobra.Command{
	Use:   "lyrics <timing-file> <document>",
	Short: "Inject an LRC timing file into an HTML document",
	Long: `Parses the [mm:ss.xx] lines of an LRC timing file and replaces the
contents of the document's lyrics container with one list item per line,
each carrying its start time in milliseconds. The document is rewritten
in place; lines that are not timed are ignored.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		n, err := lrc.Convert(args[0], args[1], cfg.Lyrics.ContainerID)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %d lyric lines to %s\n", n, args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lyricsCmd)
}
