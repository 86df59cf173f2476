package figures

import (
	"fmt"

	"github.com/tomkeaney/inbreeding-parental-care/internal/grid"
	"github.com/tomkeaney/inbreeding-parental-care/internal/model"
)

// Column names shared by the figure tables, CSV exports and the data API.
const (
	ColDelta       = "delta"
	ColAlpha       = "alpha"
	ColCare        = "care"
	ColRelatedness = "relatedness"
	ColMaleCost    = "male_cost"

	ColFitness         = "fitness"
	ColThresholdFemale = "threshold_female"
	ColThresholdMale   = "threshold_male"
	ColControlFemale   = "control_female"
	ColControlMale     = "control_male"
	ColAlphaThreshold  = "alpha_threshold"
)

// mustSequence expands a statically known range. The ranges below are
// compile-time constants of the curated figures, so a failure here is a
// programming error.
func mustSequence(name string, min, max, step float64) grid.Sequence {
	seq, err := grid.NewSequence(name, grid.RangeSpec{Min: min, Max: max, Step: step})
	if err != nil {
		panic(err)
	}
	return seq
}

// Fitness returns the offspring-fitness figure: w = 1 - δ(1 - αc) against
// inbreeding depression, one curve per care effectiveness, faceted by the
// amount of care received.
func Fitness() Definition {
	return Definition{
		Name:  "fitness",
		Title: "Offspring fitness under parental care",
		Caption: "Fitness of inbred offspring, w = 1 - δ(1 - αc), against inbreeding depression δ. " +
			"Curves show care effectiveness α from 0 to 1; panels fix the amount of care c the brood receives. " +
			"Without care the full depression is expressed, while fully effective care cancels it entirely.",
		XParam:      ColDelta,
		XLabel:      "Inbreeding depression, δ",
		YLabel:      "Offspring fitness, w",
		ColorParam:  ColAlpha,
		ColorSymbol: "α",
		FacetParam:  ColCare,
		FacetSymbol: "c",
		Sequences: []grid.Sequence{
			mustSequence(ColAlpha, 0, 1, 0.25),
			grid.FixedSequence(ColCare, 0, 0.5, 1),
			mustSequence(ColDelta, 0, 1, 0.05),
		},
		Derived: []DerivedColumn{
			{
				Name:   ColFitness,
				Inputs: []string{ColDelta, ColAlpha, ColCare},
				Fn:     func(a []float64) float64 { return model.OffspringFitness(a[0], a[1], a[2]) },
			},
		},
		Responses: []Response{{Column: ColFitness}},
	}
}

// Tolerance returns the no-trade-off tolerance figure: the largest
// inbreeding depression at which inbreeding still pays, for females and
// males side by side, one curve per relatedness.
func Tolerance() Definition {
	return Definition{
		Name:  "tolerance",
		Title: "Inbreeding tolerance without a care trade-off",
		Caption: "Largest inbreeding depression at which mating with a relative still pays, " +
			"for females, r/(1 + r - α/2 - rα/2), and males, 1/(1 + r - α/2 - rα/2). " +
			"Curves show relatedness r between the potential mates. " +
			"The α = 0 intercepts recover the classical r/(1+r) and 1/(1+r) thresholds.",
		XParam:      ColAlpha,
		XLabel:      "Care effectiveness, α",
		YLabel:      "Tolerated inbreeding depression",
		ColorParam:  ColRelatedness,
		ColorSymbol: "r",
		Sequences: []grid.Sequence{
			mustSequence(ColRelatedness, 0, 1, 0.25),
			mustSequence(ColAlpha, 0, 1, 0.05),
		},
		Derived: []DerivedColumn{
			{
				Name:   ColThresholdFemale,
				Inputs: []string{ColRelatedness, ColAlpha},
				Fn:     func(a []float64) float64 { return model.ToleranceFemale(a[0], a[1]) },
			},
			{
				Name:   ColThresholdMale,
				Inputs: []string{ColRelatedness, ColAlpha},
				Fn:     func(a []float64) float64 { return model.ToleranceMale(a[0], a[1]) },
			},
		},
		Responses: []Response{
			{Column: ColThresholdFemale, Title: "Females"},
			{Column: ColThresholdMale, Title: "Males"},
		},
		ResponsesAcross: true,
	}
}

// MaleCare returns the male-care tolerance figure: thresholds against
// relatedness, one curve per male mating cost, faceted by care
// effectiveness, with the no-care baselines dashed in every panel.
//
// The cost sequence stops at 0.9: the combination α = 1, ΔN_m = 1 is the
// model's single degenerate point, and at α = 1 the curves have already
// converged so the final step adds nothing.
func MaleCare() Definition {
	return Definition{
		Name:  "malecare",
		Title: "Inbreeding tolerance when males care",
		Caption: "Inbreeding tolerance when the caring male loses a fraction ΔN_m of his outside mating success. " +
			"Columns fix care effectiveness α; dashed curves show the no-care baselines r/(1+r) and 1/(1+r). " +
			"At α = 1 every curve collapses onto 2r/(1+r) or 2/(1+r), whatever the cost.",
		XParam:      ColRelatedness,
		XLabel:      "Relatedness, r",
		YLabel:      "Tolerated inbreeding depression",
		ColorParam:  ColMaleCost,
		ColorSymbol: "ΔN_m",
		FacetParam:  ColAlpha,
		FacetSymbol: "α",
		Sequences: []grid.Sequence{
			mustSequence(ColMaleCost, 0, 0.9, 0.1),
			grid.FixedSequence(ColAlpha, 0, 0.25, 0.5, 0.75, 1),
			mustSequence(ColRelatedness, 0, 1, 0.05),
		},
		Derived: []DerivedColumn{
			{
				Name:   ColThresholdFemale,
				Inputs: []string{ColRelatedness, ColAlpha, ColMaleCost},
				Fn:     func(a []float64) float64 { return model.ToleranceFemaleWithCare(a[0], a[1], a[2]) },
			},
			{
				Name:   ColThresholdMale,
				Inputs: []string{ColRelatedness, ColAlpha, ColMaleCost},
				Fn:     func(a []float64) float64 { return model.ToleranceMaleWithCare(a[0], a[1], a[2]) },
			},
			{
				Name:   ColControlFemale,
				Inputs: []string{ColRelatedness},
				Fn:     func(a []float64) float64 { return model.ControlFemale(a[0]) },
			},
			{
				Name:   ColControlMale,
				Inputs: []string{ColRelatedness},
				Fn:     func(a []float64) float64 { return model.ControlMale(a[0]) },
			},
		},
		Responses: []Response{
			{Column: ColThresholdFemale, Title: "Females"},
			{Column: ColThresholdMale, Title: "Males"},
		},
		Overlays: []Overlay{
			{Response: ColThresholdFemale, Column: ColControlFemale, Label: "no male care"},
			{Response: ColThresholdMale, Column: ColControlMale, Label: "no male care"},
		},
	}
}

// AlphaThreshold returns the care-threshold figure: the minimum care
// effectiveness at which caring pays for the male, as a single fine-grained
// curve over the mating cost.
func AlphaThreshold() Definition {
	return Definition{
		Name:  "alphathreshold",
		Title: "Care effectiveness threshold for male care",
		Caption: "Minimum care effectiveness α* = 2ΔN_m/(1 + ΔN_m) at which providing care pays " +
			"for a male that loses a fraction ΔN_m of his outside matings by caring.",
		XParam: ColMaleCost,
		XLabel: "Male mating cost, ΔN_m",
		YLabel: "Care effectiveness threshold, α*",
		Sequences: []grid.Sequence{
			mustSequence(ColMaleCost, 0, 1, 0.001),
		},
		Derived: []DerivedColumn{
			{
				Name:   ColAlphaThreshold,
				Inputs: []string{ColMaleCost},
				Fn:     func(a []float64) float64 { return model.CareThreshold(a[0]) },
			},
		},
		Responses: []Response{{Column: ColAlphaThreshold, Title: "α*"}},
	}
}

// All returns the curated figures in report order.
func All() []Definition {
	return []Definition{Fitness(), Tolerance(), MaleCare(), AlphaThreshold()}
}

// Names returns the figure names in report order.
func Names() []string {
	defs := All()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

// ByName returns the definition with the given name.
func ByName(name string) (Definition, error) {
	for _, d := range All() {
		if d.Name == name {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("unknown figure %q (available: fitness, tolerance, malecare, alphathreshold)", name)
}
