package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomkeaney/inbreeding-parental-care/internal/catalog"
	"github.com/tomkeaney/inbreeding-parental-care/internal/figures"
	"github.com/tomkeaney/inbreeding-parental-care/internal/server"
)

var (
	serveAddr      string
	serveCatalog   string
	serveNoCatalog bool
)

// serveCmd starts the local dashboard
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local dashboard",
	Long: `Serve starts an HTTP server with live-rendered figure pages, JSON and
CSV data endpoints, and the recorded run history. Figures are evaluated
on request, so code or parameter changes show up on reload.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.GetListenAddr()
	}

	var store *catalog.Store
	if !serveNoCatalog {
		path := serveCatalog
		if path == "" {
			path = cfg.GetCatalogPath()
		}
		opened, err := catalog.Open(path)
		if err != nil {
			return fmt.Errorf("opening catalog: %w", err)
		}
		defer opened.Close()
		store = opened
		slog.Debug("catalog opened", "path", path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ws := server.NewWebServer(server.WebServerConfig{
		Address: addr,
		Figures: figures.All(),
		Render:  cfg.RenderOptions(),
		Catalog: store,
	})
	return ws.Start(ctx)
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default from config, else \":8080\")")
	serveCmd.Flags().StringVar(&serveCatalog, "catalog", "", "Catalog database path (default from config, else \"runs.db\")")
	serveCmd.Flags().BoolVar(&serveNoCatalog, "no-catalog", false, "Serve without the run history")
}
