package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/tomkeaney/inbreeding-parental-care/internal/figures"
)

// viridisRamp is the ten-stop viridis color ramp used for the continuous
// parameter scale in both backends.
var viridisRamp = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// overlayHex is the neutral grey used for dashed reference curves.
const overlayHex = "#9e9e9e"

// overlayColor is overlayHex as an image color for the PNG backend.
var overlayColor = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}

// singleCurveHex colors the only curve of figures without a color scale.
const singleCurveHex = "#31688e"

// seriesColor picks the color of a series: grey for dashed reference
// curves, the ramp position of the grouping value when the figure carries
// a color scale, and a fixed ramp stop for single-curve figures.
func seriesColor(fig *figures.Figure, s figures.Series) color.RGBA {
	switch {
	case s.Dashed:
		return overlayColor
	case fig.HasColorScale:
		return rampColor(unitScale(s.ColorValue, fig.ColorMin, fig.ColorMax))
	default:
		return hexToRGBA(singleCurveHex)
	}
}

// seriesHex is seriesColor formatted for HTML styling.
func seriesHex(fig *figures.Figure, s figures.Series) string {
	c := seriesColor(fig, s)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// unitScale maps v in [min,max] onto [0,1], clamping outside values. A
// collapsed domain maps everything to the middle of the ramp.
func unitScale(v, min, max float64) float64 {
	if max <= min {
		return 0.5
	}
	t := (v - min) / (max - min)
	return math.Min(1, math.Max(0, t))
}

// rampColor interpolates the viridis ramp at t in [0,1].
func rampColor(t float64) color.RGBA {
	t = math.Min(1, math.Max(0, t))
	pos := t * float64(len(viridisRamp)-1)
	lo := int(math.Floor(pos))
	if lo >= len(viridisRamp)-1 {
		return hexToRGBA(viridisRamp[len(viridisRamp)-1])
	}
	frac := pos - float64(lo)
	a := hexToRGBA(viridisRamp[lo])
	b := hexToRGBA(viridisRamp[lo+1])
	return color.RGBA{
		R: lerpByte(a.R, b.R, frac),
		G: lerpByte(a.G, b.G, frac),
		B: lerpByte(a.B, b.B, frac),
		A: 0xff,
	}
}

// rampHex is rampColor formatted for HTML styling.
func rampHex(t float64) string {
	c := rampColor(t)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func hexToRGBA(s string) color.RGBA {
	var r, g, b uint8
	fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
