package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tomkeaney/inbreeding-parental-care/internal/catalog"
	"github.com/tomkeaney/inbreeding-parental-care/internal/render"
	"github.com/tomkeaney/inbreeding-parental-care/internal/security"
)

var (
	renderOut      string
	renderFormat   string
	renderCatalog  string
	renderNoRecord bool
)

// renderCmd renders figures to standalone files
var renderCmd = &cobra.Command{
	Use:   "render [figure ...]",
	Short: "Render figures as interactive HTML and PNG",
	Long: `Render evaluates the named figures and writes an interactive HTML page
and a PNG image for each into the output directory. With no arguments
all curated figures are rendered. The run is recorded in the catalog so
it shows up under 'invasion runs'.

Available figures: fitness, tolerance, malecare, alphathreshold.`,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	switch renderFormat {
	case "html", "png", "both":
	default:
		return fmt.Errorf("invalid format %q (want html, png or both)", renderFormat)
	}

	defs, err := selectFigures(args)
	if err != nil {
		return err
	}

	outDir := renderOut
	if outDir == "" {
		outDir = cfg.GetOutputDir()
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	opts := cfg.RenderOptions()
	run := catalog.NewRun("render", outDir)
	records := make([]catalog.FigureRecord, 0, len(defs))
	for _, def := range defs {
		fig, err := def.Build()
		if err != nil {
			return err
		}

		record := catalog.FigureRecord{
			RunID: run.ID,
			Name:  fig.Name,
			Rows:  fig.Table.Rows(),
		}
		name := security.SanitizeFilename(fig.Name)
		if renderFormat != "png" {
			path := filepath.Join(outDir, name+".html")
			if err := writeArtifact(path, outDir, func(w io.Writer) error {
				return render.WriteHTML(w, fig, opts)
			}); err != nil {
				return err
			}
			record.HTMLPath = path
			slog.Info("wrote figure page", "figure", fig.Name, "path", path)
		}
		if renderFormat != "html" {
			path := filepath.Join(outDir, name+".png")
			if err := writeArtifact(path, outDir, func(w io.Writer) error {
				return render.WritePNG(w, fig, opts)
			}); err != nil {
				return err
			}
			record.PNGPath = path
			slog.Info("wrote figure image", "figure", fig.Name, "path", path)
		}
		records = append(records, record)
	}

	if renderNoRecord {
		return nil
	}

	catalogPath := renderCatalog
	if catalogPath == "" {
		catalogPath = cfg.GetCatalogPath()
	}

	store, err := catalog.Open(catalogPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer store.Close()

	if err := store.RecordRun(run, records); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	slog.Info("run recorded", "run_id", run.ID, "catalog", catalogPath)

	return nil
}

// writeArtifact creates path inside outDir and streams the artifact into it.
func writeArtifact(path, outDir string, write func(w io.Writer) error) error {
	if err := security.ValidatePathWithinDirectory(path, outDir); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output directory (default from config, else \"report\")")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "both", "Artifacts to write: html, png or both")
	renderCmd.Flags().StringVar(&renderCatalog, "catalog", "", "Catalog database path (default from config, else \"runs.db\")")
	renderCmd.Flags().BoolVar(&renderNoRecord, "no-record", false, "Skip recording the run in the catalog")
}
