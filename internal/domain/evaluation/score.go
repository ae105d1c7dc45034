package evaluation

import "math"

// TotalWeight sums the responsibility weights of the detail rows. A zero sum
// falls back to 100 so an empty or mis-weighted catalog cannot divide by
// zero. Weights summing to anything other than 100 are NOT corrected here:
// a catalog that sums to 80 silently inflates every percentage.
func TotalWeight(details []Detail) float64 {
	var total float64
	for _, detail := range details {
		total += detail.Weight
	}
	if total == 0 {
		return 100
	}
	return total
}

// StagePercentage converts one stage's raw points into a 0-100 percentage.
// Unscored rows count as zero points.
func StagePercentage(details []Detail, stage Stage) float64 {
	var points float64
	for _, detail := range details {
		if score := StageScore(detail, stage); score != nil {
			points += *score
		}
	}
	return points / TotalWeight(details) * 100
}

// weightedStagePercentage uses each row's weighted point contribution
// (score × weight / 100) instead of raw points. Only the final blended score
// is computed this way.
func weightedStagePercentage(details []Detail, stage Stage) float64 {
	var points float64
	for _, detail := range details {
		if score := StageScore(detail, stage); score != nil {
			points += *score * detail.Weight / 100
		}
	}
	return points / TotalWeight(details) * 100
}

// FinalScore blends the three weighted stage percentages into one number by
// averaging the non-zero values. A stage that legitimately scored all zeros
// is indistinguishable from one that has not been rated and is excluded from
// the average; this mirrors the established payroll behavior and must not be
// changed without product sign-off.
func FinalScore(details []Detail) float64 {
	stages := []Stage{StageSelf, StageSupervisor1, StageSupervisor2}

	var sum float64
	var count int
	for _, stage := range stages {
		pct := weightedStagePercentage(details, stage)
		if pct != 0 {
			sum += pct
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Round2 rounds to two decimals. Applied at the presentation boundary only;
// everything upstream keeps full float64 precision.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
