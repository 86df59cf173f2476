// Package figures declares the curated figures of the parental-care
// invasion model and evaluates them into render-ready panel grids.
//
// A Definition names the parameter sequences to cross, the response
// columns to derive, and how the result fans out into panels: one panel
// per facet value and response row, one curve per value of the grouping
// parameter. Build performs the evaluation; rendering is left to the
// render package so the same built figure feeds both the HTML and the
// PNG backend.
package figures

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/tomkeaney/inbreeding-parental-care/internal/grid"
	"github.com/tomkeaney/inbreeding-parental-care/internal/labels"
)

// DerivedColumn computes a response column row-wise from input columns.
type DerivedColumn struct {
	Name   string
	Inputs []string
	Fn     func(args []float64) float64
}

// Response selects one derived column to plot. In a faceted figure each
// response becomes a row of panels; with ResponsesAcross set the responses
// sit side by side instead.
type Response struct {
	Column string
	Title  string
}

// Overlay draws a dashed reference curve in every panel of one response.
type Overlay struct {
	Response string // column of the response row the overlay belongs to
	Column   string // column holding the reference values
	Label    string
}

// Definition declares how a figure is assembled from the parameter grid.
// Sequences must list the x-axis parameter last so each filtered slice of
// the product comes out in ascending x order.
type Definition struct {
	Name    string
	Title   string
	Caption string

	XParam string
	XLabel string
	YLabel string

	// ColorParam groups rows into one curve per value; ColorSymbol is the
	// display symbol used in curve labels and on the color scale.
	ColorParam  string
	ColorSymbol string

	// FacetParam splits panels into columns by value.
	FacetParam  string
	FacetSymbol string

	Sequences []grid.Sequence
	Derived   []DerivedColumn
	Responses []Response

	// ResponsesAcross lays the responses out side by side in a single row
	// with a shared y-axis label and one legend. It cannot be combined
	// with FacetParam.
	ResponsesAcross bool

	Overlays []Overlay
}

// Series is one plotted curve within a panel.
type Series struct {
	Name       string    `json:"name"`
	ColorValue float64   `json:"color_value"`
	X          []float64 `json:"x"`
	Y          []float64 `json:"y"`
	Dashed     bool      `json:"dashed"`
}

// Panel is a single chart within a figure.
type Panel struct {
	Title      string   `json:"title"`
	XLabel     string   `json:"x_label,omitempty"`
	YLabel     string   `json:"y_label,omitempty"`
	ShowLegend bool     `json:"show_legend"`
	Series     []Series `json:"series"`
}

// Figure is the fully evaluated, render-ready form of a definition.
type Figure struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Caption string `json:"caption"`

	// Rows and Cols give the panel grid shape; Panels is row-major.
	Rows   int     `json:"rows"`
	Cols   int     `json:"cols"`
	Panels []Panel `json:"panels"`

	// Color scale domain, present when the definition groups by a
	// parameter.
	HasColorScale bool    `json:"has_color_scale"`
	ColorSymbol   string  `json:"color_symbol,omitempty"`
	ColorMin      float64 `json:"color_min"`
	ColorMax      float64 `json:"color_max"`

	// Table holds the evaluated parameter grid backing the panels, for
	// CSV export and the data API.
	Table *grid.Table `json:"-"`
}

// Build evaluates the definition into a figure.
func (d Definition) Build() (*Figure, error) {
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("figure %q: %w", d.Name, err)
	}

	table, err := grid.CartesianProduct(d.Sequences...)
	if err != nil {
		return nil, fmt.Errorf("figure %q: %w", d.Name, err)
	}
	for _, dc := range d.Derived {
		table, err = table.Derive(dc.Name, dc.Inputs, dc.Fn)
		if err != nil {
			return nil, fmt.Errorf("figure %q: %w", d.Name, err)
		}
	}
	for _, ov := range d.Overlays {
		if !table.HasColumn(ov.Column) {
			return nil, fmt.Errorf("figure %q: overlay column %q does not exist", d.Name, ov.Column)
		}
	}

	fig := &Figure{
		Name:    d.Name,
		Title:   d.Title,
		Caption: d.Caption,
		Table:   table,
	}

	var colorLab *labels.Labeler
	var colorValues []float64
	if d.ColorParam != "" {
		seq, _ := d.sequence(d.ColorParam)
		colorValues = seq.Values
		colorLab = labels.New(d.ColorSymbol, colorValues)
		fig.HasColorScale = true
		fig.ColorSymbol = d.ColorSymbol
		fig.ColorMin = floats.Min(colorValues)
		fig.ColorMax = floats.Max(colorValues)
	}

	if d.ResponsesAcross {
		fig.Rows = 1
		fig.Cols = len(d.Responses)
		for i, resp := range d.Responses {
			panel, err := d.buildPanel(table, resp, colorLab, colorValues)
			if err != nil {
				return nil, fmt.Errorf("figure %q: %w", d.Name, err)
			}
			panel.Title = resp.Title
			panel.XLabel = d.XLabel
			if i == 0 {
				panel.YLabel = d.YLabel
			}
			panel.ShowLegend = i == len(d.Responses)-1
			fig.Panels = append(fig.Panels, panel)
		}
		return fig, nil
	}

	var facetLab *labels.Labeler
	facetValues := []float64{0}
	hasFacet := d.FacetParam != ""
	if hasFacet {
		seq, _ := d.sequence(d.FacetParam)
		facetValues = seq.Values
		facetLab = labels.New(d.FacetSymbol, facetValues)
	}

	fig.Rows = len(d.Responses)
	fig.Cols = len(facetValues)
	for ri, resp := range d.Responses {
		for fi, fv := range facetValues {
			sub := table
			facetLabel := ""
			if hasFacet {
				sub, err = table.Filter(d.FacetParam, fv)
				if err != nil {
					return nil, fmt.Errorf("figure %q: %w", d.Name, err)
				}
				facetLabel, err = facetLab.Label(fv)
				if err != nil {
					return nil, fmt.Errorf("figure %q: %w", d.Name, err)
				}
			}

			panel, err := d.buildPanel(sub, resp, colorLab, colorValues)
			if err != nil {
				return nil, fmt.Errorf("figure %q: %w", d.Name, err)
			}
			panel.Title = panelTitle(resp.Title, facetLabel)
			if ri == len(d.Responses)-1 {
				panel.XLabel = d.XLabel
			}
			if fi == 0 {
				panel.YLabel = d.YLabel
			}
			panel.ShowLegend = fi == len(facetValues)-1
			fig.Panels = append(fig.Panels, panel)
		}
	}
	return fig, nil
}

// Summaries computes descriptive statistics for each derived column of an
// evaluated table, in definition order.
func (d Definition) Summaries(table *grid.Table) ([]grid.Summary, error) {
	summaries := make([]grid.Summary, 0, len(d.Derived))
	for _, dc := range d.Derived {
		s, err := table.Summarize(dc.Name)
		if err != nil {
			return nil, fmt.Errorf("summarizing %s: %w", dc.Name, err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// buildPanel assembles the series of one panel from an already
// facet-filtered table slice.
func (d Definition) buildPanel(sub *grid.Table, resp Response, colorLab *labels.Labeler, colorValues []float64) (Panel, error) {
	var panel Panel

	if d.ColorParam == "" {
		x, err := sub.Column(d.XParam)
		if err != nil {
			return Panel{}, err
		}
		y, err := sub.Column(resp.Column)
		if err != nil {
			return Panel{}, err
		}
		name := resp.Title
		if name == "" {
			name = d.Name
		}
		panel.Series = append(panel.Series, Series{Name: name, X: x, Y: y})
	} else {
		for _, cv := range colorValues {
			slice, err := sub.Filter(d.ColorParam, cv)
			if err != nil {
				return Panel{}, err
			}
			name, err := colorLab.Label(cv)
			if err != nil {
				return Panel{}, err
			}
			x, err := slice.Column(d.XParam)
			if err != nil {
				return Panel{}, err
			}
			y, err := slice.Column(resp.Column)
			if err != nil {
				return Panel{}, err
			}
			panel.Series = append(panel.Series, Series{Name: name, ColorValue: cv, X: x, Y: y})
		}
	}

	for _, ov := range d.Overlays {
		if ov.Response != resp.Column {
			continue
		}
		base := sub
		if d.ColorParam != "" {
			// The reference curve does not depend on the grouping
			// parameter, so a single group slice carries it without
			// duplicated x values.
			var err error
			base, err = sub.Filter(d.ColorParam, colorValues[0])
			if err != nil {
				return Panel{}, err
			}
		}
		x, err := base.Column(d.XParam)
		if err != nil {
			return Panel{}, err
		}
		y, err := base.Column(ov.Column)
		if err != nil {
			return Panel{}, err
		}
		panel.Series = append(panel.Series, Series{Name: ov.Label, X: x, Y: y, Dashed: true})
	}

	return panel, nil
}

func (d Definition) validate() error {
	if d.Name == "" {
		return fmt.Errorf("definition has no name")
	}
	if len(d.Sequences) == 0 {
		return fmt.Errorf("definition has no sequences")
	}
	if len(d.Responses) == 0 {
		return fmt.Errorf("definition has no responses")
	}
	if d.XParam == "" {
		return fmt.Errorf("definition has no x parameter")
	}
	if last := d.Sequences[len(d.Sequences)-1].Name; last != d.XParam {
		return fmt.Errorf("x parameter %q must be the last sequence, got %q", d.XParam, last)
	}
	if d.ResponsesAcross && d.FacetParam != "" {
		return fmt.Errorf("side-by-side responses cannot be combined with faceting")
	}
	if d.ColorParam != "" {
		if _, ok := d.sequence(d.ColorParam); !ok {
			return fmt.Errorf("color parameter %q is not a sequence", d.ColorParam)
		}
	}
	if d.FacetParam != "" {
		if _, ok := d.sequence(d.FacetParam); !ok {
			return fmt.Errorf("facet parameter %q is not a sequence", d.FacetParam)
		}
	}
	responseCols := make(map[string]bool, len(d.Responses))
	for _, r := range d.Responses {
		responseCols[r.Column] = true
	}
	for _, ov := range d.Overlays {
		if !responseCols[ov.Response] {
			return fmt.Errorf("overlay %q references unknown response %q", ov.Label, ov.Response)
		}
	}
	return nil
}

func (d Definition) sequence(name string) (grid.Sequence, bool) {
	for _, s := range d.Sequences {
		if s.Name == name {
			return s, true
		}
	}
	return grid.Sequence{}, false
}

func panelTitle(respTitle, facetLabel string) string {
	switch {
	case respTitle != "" && facetLabel != "":
		return respTitle + ", " + facetLabel
	case facetLabel != "":
		return facetLabel
	default:
		return respTitle
	}
}
