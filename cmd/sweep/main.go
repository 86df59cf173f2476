// Command sweep evaluates one model formula over caller-chosen parameter
// ranges and writes the full grid as CSV. It is the free-form counterpart
// to the curated figures of cmd/invasion: any list or range can be crossed,
// not just the published panels.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/tomkeaney/inbreeding-parental-care/internal/figures"
	"github.com/tomkeaney/inbreeding-parental-care/internal/grid"
	"github.com/tomkeaney/inbreeding-parental-care/internal/model"
	"github.com/tomkeaney/inbreeding-parental-care/internal/security"
)

// Default parameter ranges. The cost range stops at 0.9: crossed with the
// full alpha range, a cost of 1 would sample the degenerate (alpha=1,
// cost=1) combination where the male-care thresholds are 0/0.
const (
	defaultDeltaList       = "0:1:0.05"
	defaultAlphaList       = "0:1:0.25"
	defaultCareList        = "0,0.5,1"
	defaultRelatednessList = "0:1:0.25"
	defaultMaleCostList    = "0:0.9:0.1"
)

func main() {
	formula := flag.String("formula", "fitness", "Formula to sweep: 'fitness' (offspring fitness under care), 'tolerance' (depression thresholds without a care trade-off), 'malecare' (thresholds when males care), 'alphathreshold' (care effectiveness threshold)")
	output := flag.String("output", "", "Output CSV filename (defaults to sweep-<formula>-<timestamp>.csv)")

	// Parameter ranges: comma-separated values (e.g. 0.2,0.4) or min:max:step
	deltaList := flag.String("delta", defaultDeltaList, "Inbreeding depression values")
	alphaList := flag.String("alpha", defaultAlphaList, "Care effectiveness values")
	careList := flag.String("care", defaultCareList, "Amount-of-care values")
	relatednessList := flag.String("relatedness", defaultRelatednessList, "Relatedness values")
	maleCostList := flag.String("male-cost", defaultMaleCostList, "Male mating-cost values")

	flag.Parse()

	var (
		table *grid.Table
		err   error
	)
	switch *formula {
	case "fitness":
		table, err = sweepFitness(*deltaList, *alphaList, *careList)
	case "tolerance":
		table, err = sweepTolerance(*relatednessList, *alphaList)
	case "malecare":
		table, err = sweepMaleCare(*relatednessList, *alphaList, *maleCostList)
	case "alphathreshold":
		table, err = sweepAlphaThreshold(*maleCostList)
	default:
		log.Fatalf("Invalid formula: %s (must be fitness, tolerance, malecare, or alphathreshold)", *formula)
	}
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	filename := *output
	if filename == "" {
		filename = fmt.Sprintf("sweep-%s-%s.csv", *formula, time.Now().Format("20060102-150405"))
	}
	if err := security.ValidateExportPath(filename); err != nil {
		log.Fatalf("Invalid output path: %v", err)
	}

	if err := table.WriteCSVFile(filename); err != nil {
		log.Fatalf("Could not write output file %s: %v", filename, err)
	}

	log.Printf("Sweep complete: %d rows x %d columns", table.Rows(), len(table.Names()))
	logResponseStats(table)
	log.Printf("Output: %s", filename)
}

// sequence parses one parameter flag into a named sequence.
func sequence(name, list string) (grid.Sequence, error) {
	values, err := grid.ParseParamList(list)
	if err != nil {
		return grid.Sequence{}, fmt.Errorf("parameter %s: %w", name, err)
	}
	return grid.FixedSequence(name, values...), nil
}

// cross builds the full parameter grid from flag values.
func cross(params ...[2]string) (*grid.Table, error) {
	seqs := make([]grid.Sequence, 0, len(params))
	for _, p := range params {
		seq, err := sequence(p[0], p[1])
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, seq)
	}
	return grid.CartesianProduct(seqs...)
}

func sweepFitness(deltas, alphas, cares string) (*grid.Table, error) {
	table, err := cross(
		[2]string{figures.ColAlpha, alphas},
		[2]string{figures.ColCare, cares},
		[2]string{figures.ColDelta, deltas},
	)
	if err != nil {
		return nil, err
	}
	return table.Derive(figures.ColFitness,
		[]string{figures.ColDelta, figures.ColAlpha, figures.ColCare},
		func(a []float64) float64 { return model.OffspringFitness(a[0], a[1], a[2]) })
}

func sweepTolerance(relatednesses, alphas string) (*grid.Table, error) {
	table, err := cross(
		[2]string{figures.ColRelatedness, relatednesses},
		[2]string{figures.ColAlpha, alphas},
	)
	if err != nil {
		return nil, err
	}

	table, err = table.Derive(figures.ColThresholdFemale,
		[]string{figures.ColRelatedness, figures.ColAlpha},
		func(a []float64) float64 { return model.ToleranceFemale(a[0], a[1]) })
	if err != nil {
		return nil, err
	}
	return table.Derive(figures.ColThresholdMale,
		[]string{figures.ColRelatedness, figures.ColAlpha},
		func(a []float64) float64 { return model.ToleranceMale(a[0], a[1]) })
}

func sweepMaleCare(relatednesses, alphas, maleCosts string) (*grid.Table, error) {
	table, err := cross(
		[2]string{figures.ColMaleCost, maleCosts},
		[2]string{figures.ColAlpha, alphas},
		[2]string{figures.ColRelatedness, relatednesses},
	)
	if err != nil {
		return nil, err
	}

	table, err = table.Derive(figures.ColThresholdFemale,
		[]string{figures.ColRelatedness, figures.ColAlpha, figures.ColMaleCost},
		func(a []float64) float64 { return model.ToleranceFemaleWithCare(a[0], a[1], a[2]) })
	if err != nil {
		return nil, err
	}
	table, err = table.Derive(figures.ColThresholdMale,
		[]string{figures.ColRelatedness, figures.ColAlpha, figures.ColMaleCost},
		func(a []float64) float64 { return model.ToleranceMaleWithCare(a[0], a[1], a[2]) })
	if err != nil {
		return nil, err
	}
	table, err = table.Derive(figures.ColControlFemale,
		[]string{figures.ColRelatedness},
		func(a []float64) float64 { return model.ControlFemale(a[0]) })
	if err != nil {
		return nil, err
	}
	return table.Derive(figures.ColControlMale,
		[]string{figures.ColRelatedness},
		func(a []float64) float64 { return model.ControlMale(a[0]) })
}

func sweepAlphaThreshold(maleCosts string) (*grid.Table, error) {
	table, err := cross([2]string{figures.ColMaleCost, maleCosts})
	if err != nil {
		return nil, err
	}
	return table.Derive(figures.ColAlphaThreshold,
		[]string{figures.ColMaleCost},
		func(a []float64) float64 { return model.CareThreshold(a[0]) })
}

// logResponseStats prints mean and spread for every derived column.
func logResponseStats(table *grid.Table) {
	for _, name := range table.Names() {
		switch name {
		case figures.ColFitness, figures.ColThresholdFemale, figures.ColThresholdMale,
			figures.ColControlFemale, figures.ColControlMale, figures.ColAlphaThreshold:
			summary, err := table.Summarize(name)
			if err != nil {
				log.Printf("WARNING: could not summarize %s: %v", name, err)
				continue
			}
			log.Printf("  %s: %.4f±%.4f (min %.4f, max %.4f)",
				name, summary.Mean, summary.StdDev, summary.Min, summary.Max)
		}
	}
}
