package grid

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MaxRows caps the size of a cartesian product. Two megarows of float64
// columns stay comfortably inside memory while covering the densest grids
// the figure definitions ask for.
const MaxRows = 1 << 21

// matchTolerance is the absolute tolerance used when filtering rows by a
// column value. Sequence values are rounded to three decimals, so anything
// well below half a thousandth distinguishes neighbouring samples.
const matchTolerance = 1e-9

// Table is a column-oriented table of float64 parameter and response
// values. All columns have equal length. Tables are built once and then
// treated as immutable: Derive and Filter return new tables that share
// unchanged column slices with their parent.
type Table struct {
	names []string
	cols  map[string][]float64
	rows  int
}

// CartesianProduct crosses the sequences into the full parameter grid.
// The last sequence cycles fastest, so ordering the x-axis parameter last
// keeps each (group, facet) slice of the table in ascending x order.
func CartesianProduct(seqs ...Sequence) (*Table, error) {
	if len(seqs) == 0 {
		return nil, fmt.Errorf("cartesian product requires at least one sequence")
	}

	total := int64(1)
	names := make([]string, 0, len(seqs))
	seen := make(map[string]bool, len(seqs))
	for _, s := range seqs {
		if s.Name == "" {
			return nil, fmt.Errorf("sequence has empty name")
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate sequence name %q", s.Name)
		}
		if len(s.Values) == 0 {
			return nil, fmt.Errorf("sequence %q has no values", s.Name)
		}
		seen[s.Name] = true
		names = append(names, s.Name)
		total *= int64(len(s.Values))
		if total > MaxRows {
			return nil, fmt.Errorf("parameter grid would exceed %d rows", MaxRows)
		}
	}

	rows := int(total)
	cols := make(map[string][]float64, len(seqs))
	repeat := 1
	for dim := len(seqs) - 1; dim >= 0; dim-- {
		values := seqs[dim].Values
		cycle := len(values)
		col := make([]float64, rows)
		for i := 0; i < rows; i++ {
			col[i] = values[(i/repeat)%cycle]
		}
		cols[seqs[dim].Name] = col
		repeat *= cycle
	}

	return &Table{names: names, cols: cols, rows: rows}, nil
}

// Rows returns the number of rows in the table.
func (t *Table) Rows() int { return t.rows }

// Names returns the column names in insertion order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns the named column. The returned slice is the table's
// backing storage and must not be modified.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, fmt.Errorf("table has no column %q", name)
	}
	return col, nil
}

// Derive returns a new table extended with a column computed row-wise from
// the named input columns. The args slice passed to fn is reused between
// rows and must not be retained.
func (t *Table) Derive(name string, inputs []string, fn func(args []float64) float64) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("derived column needs a name")
	}
	if _, exists := t.cols[name]; exists {
		return nil, fmt.Errorf("table already has a column %q", name)
	}
	if fn == nil {
		return nil, fmt.Errorf("derived column %q has no function", name)
	}

	inCols := make([][]float64, len(inputs))
	for i, in := range inputs {
		col, err := t.Column(in)
		if err != nil {
			return nil, fmt.Errorf("derived column %q: %w", name, err)
		}
		inCols[i] = col
	}

	out := make([]float64, t.rows)
	args := make([]float64, len(inputs))
	for row := 0; row < t.rows; row++ {
		for i, col := range inCols {
			args[i] = col[row]
		}
		out[row] = fn(args)
	}

	names := make([]string, 0, len(t.names)+1)
	names = append(names, t.names...)
	names = append(names, name)
	cols := make(map[string][]float64, len(t.cols)+1)
	for k, v := range t.cols {
		cols[k] = v
	}
	cols[name] = out

	return &Table{names: names, cols: cols, rows: t.rows}, nil
}

// Filter returns a new table containing only the rows where the named
// column matches value within matchTolerance.
func (t *Table) Filter(name string, value float64) (*Table, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	keep := make([]int, 0, t.rows)
	for i, v := range col {
		if math.Abs(v-value) <= matchTolerance {
			keep = append(keep, i)
		}
	}

	cols := make(map[string][]float64, len(t.cols))
	for colName, src := range t.cols {
		dst := make([]float64, len(keep))
		for j, i := range keep {
			dst[j] = src[i]
		}
		cols[colName] = dst
	}

	names := make([]string, len(t.names))
	copy(names, t.names)
	return &Table{names: names, cols: cols, rows: len(keep)}, nil
}

// Distinct returns the sorted distinct values of the named column, merging
// values closer than matchTolerance.
func (t *Table) Distinct(name string) ([]float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if len(col) == 0 {
		return nil, nil
	}

	sorted := make([]float64, len(col))
	copy(sorted, col)
	sort.Float64s(sorted)

	out := []float64{sorted[0]}
	for _, v := range sorted[1:] {
		if v-out[len(out)-1] > matchTolerance {
			out = append(out, v)
		}
	}
	return out, nil
}

// Summary holds descriptive statistics for one column.
type Summary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes descriptive statistics for the named column. The
// standard deviation is the sample deviation and is zero for fewer than
// two rows.
func (t *Table) Summarize(name string) (Summary, error) {
	col, err := t.Column(name)
	if err != nil {
		return Summary{}, err
	}
	if len(col) == 0 {
		return Summary{}, fmt.Errorf("column %q is empty", name)
	}

	s := Summary{
		Column: name,
		Count:  len(col),
		Min:    floats.Min(col),
		Max:    floats.Max(col),
		Mean:   stat.Mean(col, nil),
	}
	if len(col) > 1 {
		s.StdDev = stat.StdDev(col, nil)
	}
	return s, nil
}
