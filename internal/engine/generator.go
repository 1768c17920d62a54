// Package engine generates ranked weekly timetable candidates from a
// single configuration. It is a pure, synchronous computation: no I/O,
// no global state, and all randomness flows through the injected source
// so seeded runs are reproducible.
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/campusgrid/timetable-api/internal/models"
)

// Generator runs the generation pipeline once per strategy.
type Generator struct {
	rng *rand.Rand
}

// New builds a Generator around the provided random source. A nil source
// gets a time-seeded one; tests inject a fixed seed for determinism.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Generate produces one candidate per strategy, in the fixed strategy
// order. Missing optional configuration degrades to built-in defaults;
// the only hard failure is an empty room inventory with no fallback.
func (g *Generator) Generate(cfg models.TimetableConfig) ([]models.CandidateSchedule, error) {
	days := WorkingDays(cfg.WorkingDays)
	lunch := cfg.LunchBreak
	if lunch == "" {
		lunch = defaultLunchBreak
	}
	slots := BuildTimeSlots(cfg.StartTime, cfg.EndTime, lunch, cfg.MaxSessionsPerDay)

	rooms := cfg.Rooms
	if len(rooms) == 0 {
		rooms = defaultRooms
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("room inventory is empty and no fallback is available")
	}

	instructors := cfg.Instructors
	if len(instructors) == 0 {
		instructors = defaultInstructors
	}

	candidates := make([]models.CandidateSchedule, 0, len(Strategies()))
	for _, strategy := range Strategies() {
		state := newRunState(g.rng, days, slots, lunch, rooms, instructors)
		state.reserveFixedSlots()
		shortfalls := state.placeSubjects(cfg.Subjects, strategy)
		metrics := evaluate(g.rng, state.totalCells(), len(state.grid), state.conflicts)

		candidates = append(candidates, models.CandidateSchedule{
			Strategy:   strategy.Label(),
			Sessions:   state.exportSessions(),
			Metrics:    metrics,
			Shortfalls: shortfalls,
		})
	}
	return candidates, nil
}
