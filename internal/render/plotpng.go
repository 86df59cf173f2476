package render

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/tomkeaney/inbreeding-parental-care/internal/figures"
)

// WritePNG renders the figure's panels as a tiled PNG image, row-major in
// the same layout as the HTML page.
func WritePNG(w io.Writer, fig *figures.Figure, o Options) error {
	if len(fig.Panels) == 0 {
		return fmt.Errorf("figure %q has no panels", fig.Name)
	}

	plots := make([][]*plot.Plot, fig.Rows)
	for r := 0; r < fig.Rows; r++ {
		plots[r] = make([]*plot.Plot, fig.Cols)
		for c := 0; c < fig.Cols; c++ {
			panel := fig.Panels[r*fig.Cols+c]
			p, err := panelPlot(fig, panel, r)
			if err != nil {
				return fmt.Errorf("figure %q panel %q: %w", fig.Name, panel.Title, err)
			}
			plots[r][c] = p
		}
	}

	width := vg.Length(o.PNGPanelWidth*float64(fig.Cols)) * vg.Inch
	height := vg.Length(o.PNGPanelHeight*float64(fig.Rows)) * vg.Inch
	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: fig.Rows,
		Cols: fig.Cols,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("writing png for figure %q: %w", fig.Name, err)
	}
	return nil
}

func panelPlot(fig *figures.Figure, panel figures.Panel, row int) (*plot.Plot, error) {
	xMin, xMax, yMin, yMax := axisRange(fig, row)

	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel
	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min, p.Y.Max = yMin, yMax

	for _, s := range panel.Series {
		pts := make(plotter.XYs, len(s.X))
		for i := range s.X {
			pts[i].X = s.X[i]
			pts[i].Y = s.Y[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = seriesColor(fig, s)
		if s.Dashed {
			line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		}
		p.Add(line)
		if panel.ShowLegend {
			p.Legend.Add(s.Name, line)
		}
	}

	if panel.ShowLegend {
		p.Legend.Top = true
		p.Legend.XOffs = -vg.Points(10)
		p.Legend.YOffs = -vg.Points(10)
	}
	return p, nil
}
