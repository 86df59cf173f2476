package grid

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteCSV writes the table to w with a header row of column names and all
// values formatted as %.6f, matching the precision of the rendered data.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.names); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	record := make([]string, len(t.names))
	cols := make([][]float64, len(t.names))
	for i, name := range t.names {
		cols[i] = t.cols[name]
	}

	for row := 0; row < t.rows; row++ {
		for i, col := range cols {
			record[i] = fmt.Sprintf("%.6f", col[row])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row %d: %w", row, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the table to the named file, creating or truncating
// it.
func (t *Table) WriteCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteSummariesCSV writes one row of descriptive statistics per summary,
// with the same %.6f precision as the data tables.
func WriteSummariesCSV(w io.Writer, summaries []Summary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"column", "count", "min", "max", "mean", "std_dev"}); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}
	for _, s := range summaries {
		record := []string{
			s.Column,
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.6f", s.Min),
			fmt.Sprintf("%.6f", s.Max),
			fmt.Sprintf("%.6f", s.Mean),
			fmt.Sprintf("%.6f", s.StdDev),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing summary for %s: %w", s.Column, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
