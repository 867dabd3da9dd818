package utils

// Score colors match the result pages exactly; visual regression tests key on
// these thresholds.
const (
	ColorGreen = "#27ae60" // score >= 80
	ColorAmber = "#f39c12" // 60 <= score < 80
	ColorRed   = "#e74c3c" // score < 60
)

func ScoreColor(score float64) string {
	if score >= 80 {
		return ColorGreen
	}
	if score >= 60 {
		return ColorAmber
	}
	return ColorRed
}

func ScoreGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

func AverageScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var total float64
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}

func BestScore(scores []float64) float64 {
	var best float64
	for _, s := range scores {
		if s > best {
			best = s
		}
	}
	return best
}
