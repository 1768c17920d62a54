package engine

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/campusgrid/timetable-api/internal/models"
)

// Strategy is a closed enumeration of the generation policies. Each tag
// carries two behaviours: the subject processing order and the
// instructor-conflict tolerance.
type Strategy int

const (
	StrategyOptimal Strategy = iota
	StrategyBalanced
	StrategyFlexible
)

// Strategies returns all strategies in their fixed declared order. The
// orchestrator emits one candidate per entry, in this order.
func Strategies() []Strategy {
	return []Strategy{StrategyOptimal, StrategyBalanced, StrategyFlexible}
}

func (s Strategy) String() string {
	switch s {
	case StrategyOptimal:
		return "optimal"
	case StrategyBalanced:
		return "balanced"
	case StrategyFlexible:
		return "flexible"
	}
	return "unknown"
}

// Label is the capitalized display name carried on candidates.
func (s Strategy) Label() string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// ToleratesConflicts reports whether a placement is accepted even when
// the chosen instructor is already booked in the target cell.
func (s Strategy) ToleratesConflicts() bool {
	return s == StrategyFlexible
}

// Order returns the subjects in this strategy's processing order. Order
// decides which subjects get first claim on open cells.
func (s Strategy) Order(subjects []models.Subject, rng *rand.Rand) []models.Subject {
	ordered := append([]models.Subject(nil), subjects...)
	switch s {
	case StrategyOptimal:
		sort.SliceStable(ordered, func(i, j int) bool {
			wi, wj := ordered[i].Priority.Weight(), ordered[j].Priority.Weight()
			if wi != wj {
				return wi > wj
			}
			return ordered[i].SessionsPerWeek > ordered[j].SessionsPerWeek
		})
	case StrategyBalanced:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].SessionsPerWeek < ordered[j].SessionsPerWeek
		})
	case StrategyFlexible:
		rng.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}
	return ordered
}
