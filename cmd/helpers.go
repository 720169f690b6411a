package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/inkpress/inkpress/internal/config"
	"github.com/inkpress/inkpress/internal/nav"
	"github.com/inkpress/inkpress/internal/progress"
	"github.com/inkpress/inkpress/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `inkpress init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newGenerator creates a site generator that reports progress on the
// terminal and logs each written file in verbose mode.
func newGenerator(cfg *config.Config) *site.Generator {
	g := site.NewGenerator(cfg)
	g.Reporter = progress.NewReporter()
	g.Log = io.Discard
	if verbose {
		g.Log = os.Stdout
	}
	return g
}

// navOptions maps the nav config section onto toggle options.
func navOptions(cfg *config.Config) nav.Options {
	return nav.Options{
		HideDelay:  cfg.HideDelay(),
		OpenLabel:  cfg.Nav.OpenLabel,
		CloseLabel: cfg.Nav.CloseLabel,
	}
}

// printStats summarizes a finished build.
func printStats(stats *site.Stats, outDir string) {
	fmt.Printf("Site written to %s\n", outDir)
	fmt.Printf("  Posts: %d\n", stats.Posts)
	fmt.Printf("  Experiments: %d (%d lyric lines)\n", stats.Experiments, stats.LyricLines)
	fmt.Printf("  Assets: %d\n", stats.Assets)
	if len(stats.Skipped) > 0 {
		fmt.Printf("  Skipped: %d Sass source(s)\n", len(stats.Skipped))
	}
}
