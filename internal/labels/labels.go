// Package labels maps sampled parameter values to the curve labels shown
// in legends and panel titles.
package labels

import (
	"fmt"
	"math"
	"strconv"
)

// Labeler formats the values of one parameter as display labels such as
// "α = 0.25". It is total over the values it was built with: asking for a
// value outside that set is a programming error and returns an error
// instead of an improvised label.
type Labeler struct {
	param  string
	labels map[int64]string
}

// New builds a labeler for the parameter named by its display symbol.
// Values are keyed at a thousandth of resolution, matching the rounding
// applied when parameter sequences are generated.
func New(param string, values []float64) *Labeler {
	l := &Labeler{
		param:  param,
		labels: make(map[int64]string, len(values)),
	}
	for _, v := range values {
		l.labels[key(v)] = fmt.Sprintf("%s = %s", param, FormatValue(v))
	}
	return l
}

// Param returns the display symbol the labeler was built for.
func (l *Labeler) Param() string { return l.param }

// Label returns the label for v, or an error if v was not among the values
// the labeler was built with.
func (l *Labeler) Label(v float64) (string, error) {
	label, ok := l.labels[key(v)]
	if !ok {
		return "", fmt.Errorf("no label for value %g of parameter %q", v, l.param)
	}
	return label, nil
}

// FormatValue renders v with trailing zeros trimmed, so 0.25 stays "0.25"
// while 1.00 becomes "1".
func FormatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func key(v float64) int64 {
	return int64(math.Round(v * 1000))
}
