// Command snapshot exports the site content as JSON files, reading either
// the configured store or the content API of a running server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/atech/cms/internal/content"
	"github.com/atech/cms/internal/repository"
	"github.com/atech/cms/pkg/config"
	"github.com/atech/cms/pkg/logger"
)

var (
	outDir  string
	fromURL string
	mode    string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export site content to JSON files",
	Long: `snapshot fetches every content type through the content reader and
writes one JSON file per type into the output directory.

With --from, content is read from the /api/content routes of that server;
otherwise the mode follows CONTENT_MODE and the store configuration.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "snapshot", "output directory")
	rootCmd.Flags().StringVar(&fromURL, "from", "", "base URL of a running server (implies --mode http)")
	rootCmd.Flags().StringVar(&mode, "mode", "", "content mode: auto, direct or http (default CONTENT_MODE)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if verbose {
		level = zapcore.DebugLevel.String()
	}
	log, err := logger.InitWriter(level, "console", zapcore.Lock(os.Stderr))
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	siteURL := cfg.SiteURL
	m := content.Mode(cfg.ContentMode)
	if mode != "" {
		m = content.Mode(mode)
	}
	if fromURL != "" {
		siteURL, m = fromURL, content.ModeHTTP
	}
	m = content.ResolveMode(m, cfg.BuildPhase, cfg.Hosted, siteURL)

	var (
		store  *repository.Store
		remote *content.Remote
	)
	if m == content.ModeHTTP {
		remote = content.NewRemote(siteURL, nil, cfg.ContentTimeout)
	} else {
		store, err = repository.Open(ctx, repository.OptionsFromConfig(cfg))
		if err != nil {
			return fmt.Errorf("open content store: %w", err)
		}
		defer store.Close()
	}

	log.Info("exporting content", zap.String("mode", string(m)), zap.String("out", outDir))
	files, err := content.Export(ctx, content.New(m, store, remote), outDir)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
