package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkpress/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the built site with live page sessions",
	Long: `Serves the output directory over HTTP. Pages connect back over a
websocket at /ws, where inkpress drives the lyric highlighting and the
navigation menu.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port from config)")
	serveCmd.Flags().Bool("build", false, "build the site before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port := cfg.Server.Port
	if p, _ := cmd.Flags().GetInt("port"); p != 0 {
		port = p
	}

	outDir := cfg.Path(cfg.OutputDir)
	if build, _ := cmd.Flags().GetBool("build"); build {
		stats, err := newGenerator(cfg).Build()
		if err != nil {
			return fmt.Errorf("building site: %w", err)
		}
		printStats(stats, outDir)
	}
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		return fmt.Errorf("output directory %s not found\nRun `inkpress build` first", outDir)
	}

	srv := server.New(server.Config{
		Port:     port,
		Dir:      outDir,
		AllowAll: cfg.Server.AllowAll,
		Nav:      navOptions(cfg),
	})

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(os.Stderr, "inkpress %s serving at http://localhost:%d\n", Version, port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
