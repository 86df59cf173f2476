// Package model implements the closed-form expressions for the invasion of
// an inbreeding-tolerance allele in a population with biparental care.
//
// The model tracks four parameters, each dimensionless and confined to the
// unit interval:
//
//   - delta: inbreeding depression, the fractional fitness cost suffered by
//     inbred offspring relative to outbred offspring
//   - alpha: care effectiveness, the fraction of inbreeding depression that
//     parental care compensates for
//   - care: the total amount of parental care an offspring receives
//   - maleCost: the caring male's fractional loss of outside mating success
//     (written ΔN_m in the source material)
//
// All functions are pure. None of them guard against degenerate inputs such
// as a zero denominator: callers sampling parameter grids are responsible
// for avoiding the single degenerate combination alpha = 1, maleCost = 1.
package model

// OffspringFitness returns the fitness w of an inbred offspring,
//
//	w = 1 - delta*(1 - alpha*care)
//
// Outbred offspring have fitness 1 by definition. Care reduces the realised
// depression in proportion to its effectiveness, so full care with alpha = 1
// restores inbred offspring to outbred fitness.
func OffspringFitness(delta, alpha, care float64) float64 {
	return 1 - delta*(1-alpha*care)
}

// ToleranceFemale returns the largest inbreeding depression at which a
// female still gains from mating with a relative instead of a non-relative,
// when no sex-specific care trade-off applies:
//
//	delta_f = r / (1 + r - alpha/2 - r*alpha/2)
//
// where r is the relatedness between the potential mates. With alpha = 0
// this reduces to the classical threshold r/(1+r).
func ToleranceFemale(relatedness, alpha float64) float64 {
	return relatedness / (1 + relatedness - 0.5*alpha - 0.5*relatedness*alpha)
}

// ToleranceMale returns the male counterpart of ToleranceFemale,
//
//	delta_m = 1 / (1 + r - alpha/2 - r*alpha/2)
//
// Males risk less per inbred mating, so their threshold sits above the
// female one. With alpha = 0 this reduces to 1/(1+r).
func ToleranceMale(relatedness, alpha float64) float64 {
	return 1 / (1 + relatedness - 0.5*alpha - 0.5*relatedness*alpha)
}

// careDenominator is the shared denominator of the male-care thresholds.
// It reaches zero only at alpha = 1, maleCost = 1.
func careDenominator(relatedness, alpha, maleCost float64) float64 {
	half := (1 + maleCost) / 2
	return 1 + relatedness - half*alpha - half*relatedness*alpha
}

// ToleranceFemaleWithCare returns the female inbreeding-tolerance threshold
// when the male provides care and pays maleCost in lost outside matings:
//
//	delta_f = (r - r*maleCost) / (1 + r - ((1+maleCost)/2)*alpha*(1 + r))
//
// With maleCost = 0 this collapses to ToleranceFemale. At alpha = 1 the
// maleCost terms cancel and the threshold converges to 2r/(1+r) regardless
// of the cost paid by the male.
func ToleranceFemaleWithCare(relatedness, alpha, maleCost float64) float64 {
	return (relatedness - relatedness*maleCost) / careDenominator(relatedness, alpha, maleCost)
}

// ToleranceMaleWithCare returns the male inbreeding-tolerance threshold when
// the male provides care:
//
//	delta_m = (1 - maleCost) / (1 + r - ((1+maleCost)/2)*alpha*(1 + r))
//
// With maleCost = 0 this collapses to ToleranceMale; at alpha = 1 it
// converges to 2/(1+r) for every maleCost below one.
func ToleranceMaleWithCare(relatedness, alpha, maleCost float64) float64 {
	return (1 - maleCost) / careDenominator(relatedness, alpha, maleCost)
}

// ControlFemale returns the no-care reference threshold r/(1+r) used as the
// dashed baseline in the male-care figures.
func ControlFemale(relatedness float64) float64 {
	return relatedness / (1 + relatedness)
}

// ControlMale returns the no-care reference threshold 1/(1+r).
func ControlMale(relatedness float64) float64 {
	return 1 / (1 + relatedness)
}

// CareThreshold returns the care effectiveness alpha* above which caring is
// worthwhile for the male despite its mating cost:
//
//	alpha* = 2*maleCost / (1 + maleCost)
//
// Below the returned value the male does better abandoning the brood.
func CareThreshold(maleCost float64) float64 {
	return 2 * maleCost / (1 + maleCost)
}
