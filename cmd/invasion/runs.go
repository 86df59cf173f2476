package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomkeaney/inbreeding-parental-care/internal/catalog"
	"github.com/tomkeaney/inbreeding-parental-care/internal/httputil"
)

var (
	runsCatalog string
	runsServer  string
	runsLimit   int
)

// runsCmd inspects the run catalog
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded runs",
	Long: `List past report and sweep runs and the figures they produced.

Runs are read from the local catalog database, or from a running
dashboard when --server is given:

  invasion runs list
  invasion runs list --server http://localhost:8080
  invasion runs figures <run-id>`,
	RunE: runRunsList,
}

// runsListCmd lists recent runs
var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE:  runRunsList,
}

// runsFiguresCmd shows the figures one run produced
var runsFiguresCmd = &cobra.Command{
	Use:   "figures <run-id>",
	Short: "Show the figures a run produced",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsFigures,
}

func runRunsList(cmd *cobra.Command, args []string) error {
	var (
		runs []catalog.Run
		err  error
	)
	if runsServer != "" {
		runs, err = fetchRemoteRuns(http.DefaultClient, runsServer, runsLimit)
	} else {
		runs, err = listLocalRuns()
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-36s  %-8s  %7s  %-19s  %s\n", "ID", "KIND", "FIGURES", "CREATED", "OUTPUT")
	for _, run := range runs {
		fmt.Printf("%-36s  %-8s  %7d  %-19s  %s\n",
			run.ID, run.Kind, run.Figures,
			run.CreatedAt.Format("2006-01-02 15:04:05"), run.OutputDir)
	}
	return nil
}

func runRunsFigures(cmd *cobra.Command, args []string) error {
	runID := args[0]

	var (
		figs []catalog.FigureRecord
		err  error
	)
	if runsServer != "" {
		figs, err = fetchRemoteRunFigures(http.DefaultClient, runsServer, runID)
	} else {
		figs, err = listLocalRunFigures(runID)
	}
	if err != nil {
		return err
	}

	if len(figs) == 0 {
		fmt.Printf("No figures recorded for run %s.\n", runID)
		return nil
	}

	fmt.Printf("%-16s  %7s  %s\n", "FIGURE", "ROWS", "ARTIFACTS")
	for _, fig := range figs {
		fmt.Printf("%-16s  %7d  %s, %s, %s\n",
			fig.Name, fig.Rows, fig.HTMLPath, fig.PNGPath, fig.CSVPath)
	}
	return nil
}

func listLocalRuns() ([]catalog.Run, error) {
	store, err := openRunsCatalog()
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.ListRuns(runsLimit)
}

func listLocalRunFigures(runID string) ([]catalog.FigureRecord, error) {
	store, err := openRunsCatalog()
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.RunFigures(runID)
}

func openRunsCatalog() (*catalog.Store, error) {
	path := runsCatalog
	if path == "" {
		path = cfg.GetCatalogPath()
	}

	store, err := catalog.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	return store, nil
}

// fetchRemoteRuns queries a running dashboard for its run list.
func fetchRemoteRuns(client httputil.Getter, baseURL string, limit int) ([]catalog.Run, error) {
	endpoint := fmt.Sprintf("%s/api/runs?limit=%d", strings.TrimRight(baseURL, "/"), limit)

	resp, err := client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var runs []catalog.Run
	if err := json.NewDecoder(resp.Body).Decode(&runs); err != nil {
		return nil, fmt.Errorf("decoding run list: %w", err)
	}
	return runs, nil
}

// fetchRemoteRunFigures queries a running dashboard for one run's figures.
func fetchRemoteRunFigures(client httputil.Getter, baseURL, runID string) ([]catalog.FigureRecord, error) {
	endpoint := fmt.Sprintf("%s/api/runs?run_id=%s",
		strings.TrimRight(baseURL, "/"), url.QueryEscape(runID))

	resp, err := client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var figs []catalog.FigureRecord
	if err := json.NewDecoder(resp.Body).Decode(&figs); err != nil {
		return nil, fmt.Errorf("decoding figure records: %w", err)
	}
	return figs, nil
}

func init() {
	runsCmd.PersistentFlags().StringVar(&runsCatalog, "catalog", "", "Catalog database path (default from config, else \"runs.db\")")
	runsCmd.PersistentFlags().StringVar(&runsServer, "server", "", "Query a running dashboard instead of the local catalog")
	runsCmd.PersistentFlags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")

	runsCmd.AddCommand(runsListCmd, runsFiguresCmd)
}
