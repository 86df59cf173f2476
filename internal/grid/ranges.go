// Package grid builds the parameter tables the figure pipeline evaluates.
//
// A figure starts from a handful of named Sequences (evenly spaced samples
// of one model parameter each), crosses them into a column-oriented Table,
// and derives response columns by applying closed-form expressions row by
// row. Tables are value-oriented: Derive and Filter return new tables and
// never mutate existing columns.
package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// maxSequenceValues caps a single expanded range so a typo in a step size
// cannot allocate an absurd sequence.
const maxSequenceValues = 10000

// RangeSpec defines an evenly spaced, inclusive interval of parameter
// values, parsed from the "min:max:step" syntax used on the command line.
type RangeSpec struct {
	Min  float64
	Max  float64
	Step float64
}

// ParseRangeSpec parses a "min:max:step" string into a RangeSpec.
func ParseRangeSpec(spec string) (RangeSpec, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return RangeSpec{}, fmt.Errorf("invalid range spec %q: expected min:max:step", spec)
	}

	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("invalid min in range spec %q: %w", spec, err)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("invalid max in range spec %q: %w", spec, err)
	}
	step, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return RangeSpec{}, fmt.Errorf("invalid step in range spec %q: %w", spec, err)
	}

	return RangeSpec{Min: min, Max: max, Step: step}, nil
}

// Values expands the spec into its inclusive sequence of samples. Results
// are rounded to three decimals so accumulated floating-point error cannot
// produce values like 0.30000000000000004 in output files or label keys.
func (r RangeSpec) Values() ([]float64, error) {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsNaN(r.Step) {
		return nil, fmt.Errorf("range %v contains NaN", r)
	}
	if r.Step <= 0 {
		return nil, fmt.Errorf("range step must be positive, got %v", r.Step)
	}
	if r.Max < r.Min {
		return nil, fmt.Errorf("range max %v is below min %v", r.Max, r.Min)
	}

	// Tolerate a thousandth of a step of floating-point drift when deciding
	// whether the endpoint is included, so min:max:step with an exact
	// multiple always reaches max.
	nf := math.Floor((r.Max-r.Min)/r.Step + 1e-3)
	if nf >= maxSequenceValues {
		return nil, fmt.Errorf("range %v:%v:%v would generate %.0f values, exceeding limit of %d",
			r.Min, r.Max, r.Step, nf+1, maxSequenceValues)
	}
	n := int(nf) + 1

	var values []float64
	if n < 2 {
		values = []float64{r.Min}
	} else {
		values = floats.Span(make([]float64, n), r.Min, r.Min+r.Step*float64(n-1))
	}
	for i, v := range values {
		values[i] = math.Round(v*1000) / 1000
	}
	return values, nil
}

// Sequence pairs a parameter name with its sampled values. The name becomes
// the column header in tables built from the sequence.
type Sequence struct {
	Name   string
	Values []float64
}

// NewSequence expands spec into a named sequence.
func NewSequence(name string, spec RangeSpec) (Sequence, error) {
	values, err := spec.Values()
	if err != nil {
		return Sequence{}, fmt.Errorf("sequence %q: %w", name, err)
	}
	return Sequence{Name: name, Values: values}, nil
}

// FixedSequence builds a sequence from explicit values, for parameters
// sampled at a few hand-picked points rather than an even range.
func FixedSequence(name string, values ...float64) Sequence {
	return Sequence{Name: name, Values: values}
}

// ParseParamList parses either a comma-separated list of values or a
// min:max:step range into a slice of float64 values. An empty string yields
// the single value 0 so optional sweep flags have a usable default.
func ParseParamList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{0}, nil
	}

	if strings.Contains(s, ":") {
		spec, err := ParseRangeSpec(s)
		if err != nil {
			return nil, err
		}
		return spec.Values()
	}

	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q in list %q: %w", p, s, err)
		}
		values = append(values, v)
	}
	return values, nil
}
