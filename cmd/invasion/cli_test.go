package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/tomkeaney/inbreeding-parental-care/internal/catalog"
	"github.com/tomkeaney/inbreeding-parental-care/internal/config"
)

func TestSelectFigures(t *testing.T) {
	all, err := selectFigures(nil)
	if err != nil {
		t.Fatalf("selectFigures(nil) failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 curated figures, got %d", len(all))
	}

	one, err := selectFigures([]string{"tolerance"})
	if err != nil {
		t.Fatalf("selectFigures(tolerance) failed: %v", err)
	}
	if len(one) != 1 || one[0].Name != "tolerance" {
		t.Errorf("unexpected selection: %+v", one)
	}

	if _, err := selectFigures([]string{"extinct"}); err == nil {
		t.Error("expected an error for an unknown figure name")
	}
}

func TestExportCmd(t *testing.T) {
	cfg = config.Empty()
	exportDir = t.TempDir()
	defer func() { exportDir = "." }()

	if err := runExport(&cobra.Command{}, []string{"alphathreshold"}); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(exportDir, "alphathreshold.csv"))
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}

	if !strings.HasPrefix(string(data), "male_cost,alpha_threshold\n") {
		t.Errorf("unexpected csv header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}

	// Header plus the 1001 sampled rows.
	if lines := bytes.Count(data, []byte("\n")); lines != 1002 {
		t.Errorf("expected 1002 csv lines, got %d", lines)
	}

	summary, err := os.ReadFile(filepath.Join(exportDir, "alphathreshold_summary.csv"))
	if err != nil {
		t.Fatalf("summary file not written: %v", err)
	}
	if !strings.HasPrefix(string(summary), "column,count,min,max,mean,std_dev\n") {
		t.Errorf("unexpected summary header: %q", strings.SplitN(string(summary), "\n", 2)[0])
	}
	if !strings.Contains(string(summary), "alpha_threshold,1001,0.000000,1.000000") {
		t.Errorf("summary should cover the derived column: %q", summary)
	}
}

func TestRenderCmdHTMLOnly(t *testing.T) {
	cfg = config.Empty()
	renderOut = t.TempDir()
	renderFormat = "html"
	renderNoRecord = true
	defer func() { renderOut, renderFormat, renderNoRecord = "", "both", false }()

	if err := runRender(&cobra.Command{}, []string{"alphathreshold"}); err != nil {
		t.Fatalf("runRender failed: %v", err)
	}

	page, err := os.ReadFile(filepath.Join(renderOut, "alphathreshold.html"))
	if err != nil {
		t.Fatalf("figure page not written: %v", err)
	}
	if !strings.Contains(string(page), "echarts") {
		t.Error("figure page should embed an echarts chart")
	}

	if _, err := os.Stat(filepath.Join(renderOut, "alphathreshold.png")); !os.IsNotExist(err) {
		t.Error("png should not be written in html-only mode")
	}
}

func TestRenderCmdRecordsRun(t *testing.T) {
	cfg = config.Empty()
	renderOut = t.TempDir()
	renderFormat = "html"
	renderCatalog = filepath.Join(t.TempDir(), "runs.db")
	defer func() { renderOut, renderFormat, renderCatalog = "", "both", "" }()

	if err := runRender(&cobra.Command{}, []string{"tolerance", "alphathreshold"}); err != nil {
		t.Fatalf("runRender failed: %v", err)
	}

	store, err := catalog.Open(renderCatalog)
	if err != nil {
		t.Fatalf("opening catalog: %v", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].Kind != "render" || runs[0].Figures != 2 {
		t.Errorf("unexpected run record: %+v", runs[0])
	}

	figs, err := store.RunFigures(runs[0].ID)
	if err != nil {
		t.Fatalf("RunFigures failed: %v", err)
	}
	for _, fig := range figs {
		if fig.HTMLPath == "" {
			t.Errorf("figure %s should record its html path", fig.Name)
		}
		if fig.PNGPath != "" {
			t.Errorf("figure %s should not record a png path in html-only mode", fig.Name)
		}
	}
}

func TestRenderCmdInvalidFormat(t *testing.T) {
	cfg = config.Empty()
	renderFormat = "webp"
	defer func() { renderFormat = "both" }()

	if err := runRender(&cobra.Command{}, nil); err == nil {
		t.Error("expected an error for an invalid format")
	}
}

func TestRenderCmdUnknownFigure(t *testing.T) {
	cfg = config.Empty()
	renderOut = t.TempDir()
	renderFormat = "html"
	defer func() { renderOut, renderFormat = "", "both" }()

	if err := runRender(&cobra.Command{}, []string{"extinct"}); err == nil {
		t.Error("expected an error for an unknown figure")
	}
}

func TestReportCmd(t *testing.T) {
	cfg = config.Empty()
	reportOut = filepath.Join(t.TempDir(), "report")
	reportCatalog = filepath.Join(t.TempDir(), "runs.db")
	defer func() { reportOut, reportCatalog = "", "" }()

	if err := runReport(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runReport failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(reportOut, "report.html")); err != nil {
		t.Errorf("report page not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(reportOut, "figures", "malecare.png")); err != nil {
		t.Errorf("figure image not written: %v", err)
	}

	// The run must be in the catalog.
	store, err := catalog.Open(reportCatalog)
	if err != nil {
		t.Fatalf("opening catalog: %v", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].Kind != "report" || runs[0].Figures != 4 {
		t.Errorf("unexpected run record: %+v", runs[0])
	}
}

func TestReportCmdNoRecord(t *testing.T) {
	cfg = config.Empty()
	reportOut = filepath.Join(t.TempDir(), "report")
	reportCatalog = filepath.Join(t.TempDir(), "runs.db")
	reportNoRecord = true
	defer func() { reportOut, reportCatalog, reportNoRecord = "", "", false }()

	if err := runReport(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runReport failed: %v", err)
	}

	if _, err := os.Stat(reportCatalog); !os.IsNotExist(err) {
		t.Error("catalog should not be created with --no-record")
	}
}

func TestDBMigrationCmds(t *testing.T) {
	cfg = config.Empty()
	dbCatalogPath = filepath.Join(t.TempDir(), "runs.db")
	defer func() { dbCatalogPath = "" }()

	if err := runDBUp(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runDBUp failed: %v", err)
	}

	store, err := catalog.OpenNoMigrate(dbCatalogPath)
	if err != nil {
		t.Fatalf("opening catalog: %v", err)
	}
	version, dirty, err := store.MigrateVersion()
	store.Close()
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("expected clean version 1, got %d (dirty: %v)", version, dirty)
	}

	if err := runDBDown(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runDBDown failed: %v", err)
	}

	if err := runDBVersion(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runDBVersion failed: %v", err)
	}
}
