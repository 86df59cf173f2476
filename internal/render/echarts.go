package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tomkeaney/inbreeding-parental-care/internal/figures"
)

// WriteHTML renders the figure as a single HTML page with one chart per
// panel, laid out left to right in panel order.
func WriteHTML(w io.Writer, fig *figures.Figure, o Options) error {
	if len(fig.Panels) == 0 {
		return fmt.Errorf("figure %q has no panels", fig.Name)
	}

	page := components.NewPage()
	page.PageTitle = fig.Title
	page.AssetsHost = o.AssetsHost
	page.SetLayout(components.PageFlexLayout)

	for i, panel := range fig.Panels {
		page.AddCharts(lineChart(fig, panel, i/fig.Cols, o))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering figure %q: %w", fig.Name, err)
	}
	return nil
}

// lineChart builds the chart for one panel. All panels of a row share the
// same axis window so curves remain comparable across facets.
func lineChart(fig *figures.Figure, panel figures.Panel, row int, o Options) *charts.Line {
	xMin, xMax, yMin, yMax := axisRange(fig, row)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  fig.Title,
			Theme:      o.Theme,
			Width:      fmt.Sprintf("%dpx", o.PanelWidth),
			Height:     fmt.Sprintf("%dpx", o.PanelHeight),
			AssetsHost: o.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: panel.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(panel.ShowLegend)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: xMin, Max: xMax, Name: panel.XLabel, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: yMin, Max: yMax, Name: panel.YLabel, NameLocation: "middle", NameGap: 30}),
	)

	// Single-curve figures carry no grouping parameter, so the curve is
	// gradient-colored by its own value instead.
	if !fig.HasColorScale && len(panel.Series) == 1 && !panel.Series[0].Dashed {
		lo, hi := seriesValueRange(panel.Series[0])
		line.SetGlobalOptions(charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			Dimension:  "1",
			InRange:    &opts.VisualMapInRange{Color: viridisRamp},
		}))
	}

	for _, s := range panel.Series {
		data := make([]opts.LineData, len(s.X))
		for i := range s.X {
			data[i] = opts.LineData{Value: []interface{}{s.X[i], s.Y[i]}}
		}
		hex := seriesHex(fig, s)
		style := opts.LineStyle{Color: hex, Width: 2}
		if s.Dashed {
			style.Type = "dashed"
		}
		line.AddSeries(s.Name, data,
			charts.WithLineStyleOpts(style),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hex}),
		)
	}
	return line
}
