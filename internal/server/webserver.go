// Package server provides the local results dashboard: live-rendered figure
// pages, JSON/CSV data endpoints and the run catalog history.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/tomkeaney/inbreeding-parental-care/internal/catalog"
	"github.com/tomkeaney/inbreeding-parental-care/internal/figures"
	"github.com/tomkeaney/inbreeding-parental-care/internal/render"
	"github.com/tomkeaney/inbreeding-parental-care/internal/version"
)

//go:embed status.html
var statusHTML embed.FS

// WebServer serves figure pages and the run history over HTTP.
type WebServer struct {
	address string
	defs    []figures.Definition
	byName  map[string]figures.Definition
	render  render.Options
	catalog *catalog.Store
	server  *http.Server
	started time.Time
}

// WebServerConfig contains configuration options for the web server.
type WebServerConfig struct {
	Address string
	Figures []figures.Definition
	Render  render.Options
	Catalog *catalog.Store // optional; run endpoints return 503 when nil
}

// NewWebServer creates a new web server with the provided configuration.
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address: config.Address,
		defs:    config.Figures,
		byName:  make(map[string]figures.Definition, len(config.Figures)),
		render:  config.Render,
		catalog: config.Catalog,
		started: time.Now(),
	}
	for _, def := range config.Figures {
		ws.byName[def.Name] = def
	}

	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}

	return ws
}

// Start begins the HTTP server in a goroutine and blocks until the context
// is cancelled, then shuts the server down.
func (ws *WebServer) Start(ctx context.Context) error {
	go func() {
		log.Printf("Starting dashboard server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down dashboard server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("dashboard shutdown error: %v", err)
		// Force close the server if graceful shutdown fails
		if err := ws.server.Close(); err != nil {
			log.Printf("dashboard force close error: %v", err)
		}
	}

	log.Printf("dashboard server stopped")
	return nil
}

// Close shuts down the web server.
func (ws *WebServer) Close() error {
	if ws.server != nil {
		return ws.server.Close()
	}
	return nil
}

// setupRoutes configures the HTTP routes and handlers.
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/", ws.handleStatus)
	mux.HandleFunc("/figures/", ws.handleFigurePage)
	mux.HandleFunc("/api/figures", ws.handleListFigures)
	mux.HandleFunc("/api/figures/", ws.handleFigureData)
	mux.HandleFunc("/api/runs", ws.handleRuns)

	return mux
}

// handleHealth handles the health check endpoint.
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "ok", "service": "inbreeding-parental-care", "timestamp": "%s"}`,
		time.Now().UTC().Format(time.RFC3339))
}

// handleStatus handles the main status page.
func (ws *WebServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")

	tmpl, err := template.ParseFS(statusHTML, "status.html")
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}

	type figureLink struct {
		Name  string
		Title string
	}

	var links []figureLink
	for _, def := range ws.defs {
		links = append(links, figureLink{Name: def.Name, Title: def.Title})
	}

	var recentRuns []catalog.Run
	if ws.catalog != nil {
		// Listing failures degrade to an empty run history.
		if runs, err := ws.catalog.ListRuns(5); err == nil {
			recentRuns = runs
		} else {
			log.Printf("listing recent runs: %v", err)
		}
	}

	data := struct {
		HTTPAddress       string
		Version           string
		Uptime            string
		Figures           []figureLink
		CatalogConfigured bool
		RecentRuns        []catalog.Run
	}{
		HTTPAddress:       ws.address,
		Version:           version.Version,
		Uptime:            time.Since(ws.started).Round(time.Second).String(),
		Figures:           links,
		CatalogConfigured: ws.catalog != nil,
		RecentRuns:        recentRuns,
	}

	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Error executing template: "+err.Error(), http.StatusInternalServerError)
		return
	}
}
