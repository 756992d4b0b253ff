package services

import "math"

// meanResult is the single $group row produced by the recompute pipelines.
type meanResult struct {
	Value float64 `bson:"value"`
}

// averageCostOf maps the aggregation output to the stored averageCost: the
// mean tuition rounded up to the next multiple of ten, or 0 when the last
// course is gone.
func averageCostOf(results []meanResult) int {
	if len(results) == 0 {
		return 0
	}
	return decileCeil(results[0].Value)
}

// averageRatingOf maps the aggregation output to the stored averageRating,
// one decimal place, 0 when no reviews remain. The decile rule is
// cost-specific and does not apply to ratings.
func averageRatingOf(results []meanResult) float64 {
	if len(results) == 0 {
		return 0
	}
	return roundTenth(results[0].Value)
}

func decileCeil(avg float64) int {
	return int(math.Ceil(avg/10)) * 10
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
