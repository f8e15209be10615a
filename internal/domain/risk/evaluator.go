// Package risk scores a social-media account profile against a fixed rule
// table and explains the result.
//
// Evaluate, Reasons and Recommend are pure: the same profile always yields
// the same score, level, confidence, reasons and recommendations.
package risk

// Evaluate runs every rule against p and returns the clamped score with
// its risk band and confidence.
func Evaluate(p AccountProfile) Evaluation {
	var e Evaluation
	sum := 0
	for i, r := range rules {
		if !r.applies(p) {
			continue
		}
		sum += r.points
		if r.describe != nil {
			e.fired = append(e.fired, i)
		}
	}

	e.Score = clamp(sum, MinScore, MaxScore)
	e.Level = LevelFor(e.Score)
	e.Confidence = confidence(p.Populated())
	e.ConfidenceLabel = ConfidenceLabelFor(e.Confidence)
	return e
}

// LevelFor maps a score onto its risk band.
func LevelFor(score int) Level {
	switch {
	case score >= HighRiskThreshold:
		return LevelHigh
	case score >= ModerateRiskThreshold:
		return LevelModerate
	default:
		return LevelLow
	}
}

// ConfidenceLabelFor maps a confidence value onto its label.
func ConfidenceLabelFor(c int) ConfidenceLabel {
	switch {
	case c >= HighConfidenceThreshold:
		return ConfidenceHigh
	case c >= MediumConfidenceThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// confidence grows with every populated optional field: 20 with none, 100 with all.
func confidence(populated int) int {
	return clamp(20+8*populated, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
