package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkpress/internal/progress"
	"github.com/inkpress/inkpress/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site",
	Long: `Renders posts, experiments and assets into the output directory.
Experiments that declare a prepack timing file have their lyric list
regenerated first. With --watch, the site is rebuilt whenever a post,
layout or asset changes.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Bool("watch", false, "rebuild when sources change")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g := newGenerator(cfg)
	stats, err := g.Build()
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	outDir := cfg.Path(cfg.OutputDir)
	printStats(stats, outDir)

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return nil
	}

	// Rebuilds print one line each instead of redrawing a bar.
	g.Reporter = progress.Discard{}
	g.Log = os.Stdout

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching for changes, press Ctrl+C to stop")
	return g.Watch(ctx, func(stats *site.Stats, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		printStats(stats, outDir)
	})
}
