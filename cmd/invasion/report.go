package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tomkeaney/inbreeding-parental-care/internal/catalog"
	"github.com/tomkeaney/inbreeding-parental-care/internal/figures"
	"github.com/tomkeaney/inbreeding-parental-care/internal/report"
)

var (
	reportOut      string
	reportCatalog  string
	reportNoRecord bool
)

// reportCmd composes the full HTML report
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compose the full HTML report",
	Long: `Report builds every curated figure, renders it with both backends, and
writes a single report page alongside the figure artifacts:

  <out>/report.html
  <out>/figures/<name>.html and .png
  <out>/data/<name>.csv

The run is recorded in the catalog so it shows up under 'invasion runs'.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	outDir := reportOut
	if outDir == "" {
		outDir = cfg.GetOutputDir()
	}

	composer := report.NewComposer(outDir, report.DefaultTemplates(), cfg.RenderOptions())
	result, err := composer.Compose(figures.All())
	if err != nil {
		return err
	}
	slog.Info("report composed", "path", result.ReportPath, "figures", len(result.Figures))

	if reportNoRecord {
		return nil
	}

	catalogPath := reportCatalog
	if catalogPath == "" {
		catalogPath = cfg.GetCatalogPath()
	}

	store, err := catalog.Open(catalogPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer store.Close()

	run := catalog.NewRun("report", outDir)
	records := make([]catalog.FigureRecord, 0, len(result.Figures))
	for _, fig := range result.Figures {
		records = append(records, catalog.FigureRecord{
			RunID:    run.ID,
			Name:     fig.Name,
			Rows:     fig.Rows,
			HTMLPath: fig.HTMLPath,
			PNGPath:  fig.PNGPath,
			CSVPath:  fig.CSVPath,
		})
	}

	if err := store.RecordRun(run, records); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	slog.Info("run recorded", "run_id", run.ID, "catalog", catalogPath)

	return nil
}

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output directory (default from config, else \"report\")")
	reportCmd.Flags().StringVar(&reportCatalog, "catalog", "", "Catalog database path (default from config, else \"runs.db\")")
	reportCmd.Flags().BoolVar(&reportNoRecord, "no-record", false, "Skip recording the run in the catalog")
}
