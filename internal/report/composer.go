package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tomkeaney/inbreeding-parental-care/internal/figures"
	"github.com/tomkeaney/inbreeding-parental-care/internal/grid"
	"github.com/tomkeaney/inbreeding-parental-care/internal/render"
	"github.com/tomkeaney/inbreeding-parental-care/internal/security"
	"github.com/tomkeaney/inbreeding-parental-care/internal/version"
)

// Layout of a composed report directory:
//
//	report.html
//	figures/<name>.html
//	figures/<name>.png
//	data/<name>.csv
const (
	reportFile = "report.html"
	figuresDir = "figures"
	dataDir    = "data"
)

// Composer writes complete report directories from figure definitions.
type Composer struct {
	outDir    string
	templates TemplateProvider
	opts      render.Options
}

// NewComposer returns a composer writing under outDir with the given
// templates and rendering options.
func NewComposer(outDir string, templates TemplateProvider, opts render.Options) *Composer {
	return &Composer{outDir: outDir, templates: templates, opts: opts}
}

// Section is the per-figure block passed to the report template.
type Section struct {
	Name      string
	Title     string
	Caption   string
	HTMLPath  string
	PNGPath   string
	CSVPath   string
	Rows      int
	Summaries []grid.Summary
}

// PageData is the payload of the report template.
type PageData struct {
	Title       string
	GeneratedAt string
	Version     string
	Sections    []Section
}

// FigureArtifacts lists the files written for one figure, relative to the
// report directory.
type FigureArtifacts struct {
	Name     string
	Title    string
	Rows     int
	HTMLPath string
	PNGPath  string
	CSVPath  string
}

// Result describes a composed report.
type Result struct {
	ReportPath string
	Figures    []FigureArtifacts
}

// Compose builds every definition, renders it with both backends, exports
// its data table, and writes the composed report page. Any failure aborts
// the run; partially written directories are left for inspection.
func (c *Composer) Compose(defs []figures.Definition) (*Result, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("nothing to compose")
	}

	for _, dir := range []string{c.outDir, filepath.Join(c.outDir, figuresDir), filepath.Join(c.outDir, dataDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	result := &Result{}
	sections := make([]Section, 0, len(defs))
	for _, def := range defs {
		fig, err := def.Build()
		if err != nil {
			return nil, err
		}

		name := security.SanitizeFilename(fig.Name)
		htmlRel := filepath.Join(figuresDir, name+".html")
		pngRel := filepath.Join(figuresDir, name+".png")
		csvRel := filepath.Join(dataDir, name+".csv")

		if err := c.writeHTML(htmlRel, fig); err != nil {
			return nil, err
		}
		if err := c.writePNG(pngRel, fig); err != nil {
			return nil, err
		}
		csvPath, err := c.securePath(csvRel)
		if err != nil {
			return nil, err
		}
		if err := fig.Table.WriteCSVFile(csvPath); err != nil {
			return nil, err
		}

		summaries, err := def.Summaries(fig.Table)
		if err != nil {
			return nil, err
		}

		sections = append(sections, Section{
			Name:      fig.Name,
			Title:     fig.Title,
			Caption:   fig.Caption,
			HTMLPath:  htmlRel,
			PNGPath:   pngRel,
			CSVPath:   csvRel,
			Rows:      fig.Table.Rows(),
			Summaries: summaries,
		})
		result.Figures = append(result.Figures, FigureArtifacts{
			Name:     fig.Name,
			Title:    fig.Title,
			Rows:     fig.Table.Rows(),
			HTMLPath: htmlRel,
			PNGPath:  pngRel,
			CSVPath:  csvRel,
		})
	}

	data := PageData{
		Title:       "Inbreeding and parental care",
		GeneratedAt: time.Now().Format(time.RFC1123),
		Version:     version.Version,
		Sections:    sections,
	}

	reportPath, err := c.securePath(reportFile)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(reportPath)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", reportPath, err)
	}
	if err := c.templates.ExecuteTemplate(f, reportFile, data); err != nil {
		f.Close()
		return nil, fmt.Errorf("rendering report template: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	result.ReportPath = reportPath
	return result, nil
}

func (c *Composer) writeHTML(rel string, fig *figures.Figure) error {
	path, err := c.securePath(rel)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render.WriteHTML(f, fig, c.opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c *Composer) writePNG(rel string, fig *figures.Figure) error {
	path, err := c.securePath(rel)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render.WritePNG(f, fig, c.opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// securePath resolves a report-relative path and confirms it stays inside
// the output directory.
func (c *Composer) securePath(rel string) (string, error) {
	path := filepath.Join(c.outDir, rel)
	if err := security.ValidatePathWithinDirectory(path, c.outDir); err != nil {
		return "", err
	}
	return path, nil
}
