// Package render turns evaluated figures into browsable HTML chart pages
// and static PNG panels. The HTML backend wraps go-echarts; the PNG
// backend wraps gonum/plot. Both read the same figures.Figure, so a
// figure definition never knows which backend will draw it.
package render

import (
	"github.com/tomkeaney/inbreeding-parental-care/internal/figures"
)

// DefaultAssetsHost serves the echarts javascript bundle for rendered
// HTML pages.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// axisPad is the fraction of the axis range left as breathing room beyond
// the data.
const axisPad = 0.05

// Options carries the explicit rendering configuration. Renderers receive
// it on every call rather than consulting package state, so callers with
// different settings can share a process.
type Options struct {
	// Theme is the go-echarts theme of HTML output.
	Theme string
	// PanelWidth and PanelHeight size each HTML chart, in pixels.
	PanelWidth  int
	PanelHeight int
	// AssetsHost is the base URL for the echarts javascript bundle.
	AssetsHost string
	// PNGPanelWidth and PNGPanelHeight size each PNG panel, in inches.
	PNGPanelWidth  float64
	PNGPanelHeight float64
}

// DefaultOptions returns the rendering configuration used when no config
// file overrides it.
func DefaultOptions() Options {
	return Options{
		Theme:          "white",
		PanelWidth:     560,
		PanelHeight:    420,
		AssetsHost:     DefaultAssetsHost,
		PNGPanelWidth:  5,
		PNGPanelHeight: 4,
	}
}

// axisRange computes the shared axis window for one panel row of a figure.
// The x axis always spans at least the unit interval, since every model
// parameter lives there; the y axis grows to fit curves that exceed one,
// padded the same way.
func axisRange(fig *figures.Figure, row int) (xMin, xMax, yMin, yMax float64) {
	xLo, xHi := 0.0, 1.0
	yLo, yHi := 0.0, 1.0

	start := row * fig.Cols
	end := start + fig.Cols
	for _, panel := range fig.Panels[start:end] {
		for _, s := range panel.Series {
			for _, x := range s.X {
				if x < xLo {
					xLo = x
				}
				if x > xHi {
					xHi = x
				}
			}
			for _, y := range s.Y {
				if y < yLo {
					yLo = y
				}
				if y > yHi {
					yHi = y
				}
			}
		}
	}

	xPad := (xHi - xLo) * axisPad
	yPad := (yHi - yLo) * axisPad
	return xLo - xPad, xHi + xPad, yLo - yPad, yHi + yPad
}

// seriesValueRange returns the min and max y value of one series.
func seriesValueRange(s figures.Series) (lo, hi float64) {
	if len(s.Y) == 0 {
		return 0, 1
	}
	lo, hi = s.Y[0], s.Y[0]
	for _, y := range s.Y[1:] {
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	return lo, hi
}
