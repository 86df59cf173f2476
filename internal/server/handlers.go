package server

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomkeaney/inbreeding-parental-care/internal/httputil"
	"github.com/tomkeaney/inbreeding-parental-care/internal/render"
)

// FigureInfo is the JSON shape of a figure listing entry.
type FigureInfo struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Caption string `json:"caption"`
}

// handleListFigures returns the available figure definitions.
func (ws *WebServer) handleListFigures(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	infos := make([]FigureInfo, 0, len(ws.defs))
	for _, def := range ws.defs {
		infos = append(infos, FigureInfo{Name: def.Name, Title: def.Title, Caption: def.Caption})
	}
	httputil.WriteJSONOK(w, infos)
}

// handleFigurePage serves a live-rendered interactive page for one figure.
// Path: /figures/{name}
func (ws *WebServer) handleFigurePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/figures/"), "/")
	def, ok := ws.byName[name]
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, fmt.Sprintf("unknown figure %q", name))
		return
	}

	fig, err := def.Build()
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("building figure: %v", err))
		return
	}

	// Render into a buffer so a failure can still produce a clean 500.
	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, fig, ws.render); err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("rendering figure: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.Write(buf.Bytes())
}

// handleFigureData serves the computed data behind one figure.
// Path: /api/figures/{name}/data, optionally ?format=csv for the raw table.
func (ws *WebServer) handleFigureData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/figures/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[1] != "data" {
		httputil.WriteError(w, http.StatusNotFound, "expected /api/figures/{name}/data")
		return
	}

	def, ok := ws.byName[parts[0]]
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, fmt.Sprintf("unknown figure %q", parts[0]))
		return
	}

	fig, err := def.Build()
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("building figure: %v", err))
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", fig.Name))
		if err := fig.Table.WriteCSV(w); err != nil {
			// Headers are already out; nothing better to do than log.
			log.Printf("writing csv for %s: %v", fig.Name, err)
		}
		return
	}

	httputil.WriteJSONOK(w, fig)
}

// handleRuns serves the run catalog: the run list by default, or the figure
// records of one run with ?run_id=.
func (ws *WebServer) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if ws.catalog == nil {
		httputil.WriteError(w, http.StatusServiceUnavailable, "run catalog not configured")
		return
	}

	if runID := r.URL.Query().Get("run_id"); runID != "" {
		figs, err := ws.catalog.RunFigures(runID)
		if err != nil {
			httputil.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("listing run figures: %v", err))
			return
		}
		httputil.WriteJSONOK(w, figs)
		return
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	runs, err := ws.catalog.ListRuns(limit)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("listing runs: %v", err))
		return
	}
	httputil.WriteJSONOK(w, runs)
}
