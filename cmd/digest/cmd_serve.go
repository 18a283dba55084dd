package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/permitrdu/digest/internal/artifacts"
	"github.com/permitrdu/digest/internal/webserver"
)

var servePort int

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the download and newsletter REST API",
		Long: `Run the HTTP API for downloading meeting media and browsing saved
newsletters. Downloaded files are served under /downloads/.`,
		RunE: serveCommandE,
	}

	cmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (default: 8000)")

	return cmd
}

func serveCommandE(cmd *cobra.Command, _ []string) error {
	downloader, cfg, err := buildDownloader("")
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}

	log := slog.Default()
	store := artifacts.NewStore(cfg.Paths.Output, log)

	srv, err := webserver.New(webserver.Config{
		Port:        port,
		DownloadDir: cfg.Paths.Downloads,
		Fetcher:     downloader,
		Newsletters: store,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}
