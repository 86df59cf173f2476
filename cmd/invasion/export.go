package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tomkeaney/inbreeding-parental-care/internal/grid"
	"github.com/tomkeaney/inbreeding-parental-care/internal/security"
)

var exportDir string

// exportCmd writes figure data tables as CSV
var exportCmd = &cobra.Command{
	Use:   "export [figure ...]",
	Short: "Export figure parameter grids as CSV",
	Long: `Export evaluates the named figures (all four when none are named) and
writes each figure's full parameter grid, parameters and derived
responses alike, as <dir>/<name>.csv, with descriptive statistics of
the derived columns in <dir>/<name>_summary.csv.

Exports may land in the working directory or the temp directory.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	defs, err := selectFigures(args)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	for _, def := range defs {
		fig, err := def.Build()
		if err != nil {
			return err
		}
		name := security.SanitizeFilename(fig.Name)

		path := filepath.Join(exportDir, name+".csv")
		if err := security.ValidateExportPath(path); err != nil {
			return err
		}
		if err := fig.Table.WriteCSVFile(path); err != nil {
			return err
		}

		summaries, err := def.Summaries(fig.Table)
		if err != nil {
			return err
		}
		summaryPath := filepath.Join(exportDir, name+"_summary.csv")
		if err := security.ValidateExportPath(summaryPath); err != nil {
			return err
		}
		if err := writeSummaryFile(summaryPath, summaries); err != nil {
			return err
		}

		slog.Info("exported figure data", "figure", fig.Name, "path", path, "rows", fig.Table.Rows())
	}

	return nil
}

func writeSummaryFile(path string, summaries []grid.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := grid.WriteSummariesCSV(f, summaries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "Directory to write CSV files into")
}
