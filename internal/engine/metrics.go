package engine

import (
	"math"
	"math/rand"

	"github.com/campusgrid/timetable-api/internal/models"
)

// evaluate computes the candidate metrics. Utilization is the integer
// percentage of filled cells. Efficiency is a conflict-penalized
// heuristic with a uniform noise term in [0, 10); it deliberately does
// not measure optimality. Score blends the two 0.6/0.4.
func evaluate(rng *rand.Rand, totalCells, occupied, conflicts int) models.ScheduleMetrics {
	utilization := 0
	if totalCells > 0 {
		utilization = int(math.Round(float64(occupied) / float64(totalCells) * 100))
	}
	utilization = clamp(utilization, 0, 100)

	efficiency := clamp(int(math.Round(95-10*float64(conflicts)+rng.Float64()*10)), 0, 100)

	score := clamp(int(math.Round(0.6*float64(efficiency)+0.4*float64(utilization))), 0, 100)

	return models.ScheduleMetrics{
		Utilization: utilization,
		Efficiency:  efficiency,
		Conflicts:   conflicts,
		Score:       score,
	}
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
