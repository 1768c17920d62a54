package engine

import (
	"math/rand"
	"sort"

	"github.com/campusgrid/timetable-api/internal/models"
)

// placementAttempts bounds the random search per subject. Exhausting the
// budget leaves a shortfall, never an error.
const placementAttempts = 50

// cellKey addresses one grid cell. A value type keeps the grid map free
// of string-concatenation collisions.
type cellKey struct {
	Day  string
	Slot string
}

// runState holds all mutable state for one candidate's construction. It
// is never shared across strategies.
type runState struct {
	rng         *rand.Rand
	days        []string
	slots       []string
	lunch       string
	rooms       []string
	instructors []string

	grid      map[cellKey]models.ScheduledSession
	conflicts int
}

func newRunState(rng *rand.Rand, days, slots []string, lunch string, rooms, instructors []string) *runState {
	return &runState{
		rng:         rng,
		days:        days,
		slots:       slots,
		lunch:       lunch,
		rooms:       rooms,
		instructors: instructors,
		grid:        make(map[cellKey]models.ScheduledSession),
	}
}

// reserveFixedSlots books the lunch interval on every working day and,
// with a per-day coin flip, a short break at the middle teaching slot.
// Runs before subject placement so these cells are never overwritten.
func (s *runState) reserveFixedSlots() {
	mid := s.slots[len(s.slots)/2]
	for _, day := range s.days {
		s.grid[cellKey{Day: day, Slot: s.lunch}] = models.ScheduledSession{
			Day:      day,
			TimeSlot: s.lunch,
			Subject:  "Lunch Break",
			Kind:     models.SessionKindLunch,
		}
		if s.rng.Float64() < 0.5 {
			key := cellKey{Day: day, Slot: mid}
			if _, occupied := s.grid[key]; !occupied {
				s.grid[key] = models.ScheduledSession{
					Day:      day,
					TimeSlot: mid,
					Subject:  "Short Break",
					Kind:     models.SessionKindBreak,
				}
			}
		}
	}
}

// placeSubjects runs the per-subject attempt loop in the strategy's
// processing order and returns the shortfall notices for subjects that
// did not reach their required weekly count.
func (s *runState) placeSubjects(subjects []models.Subject, strategy Strategy) []models.ShortfallNotice {
	var shortfalls []models.ShortfallNotice
	for _, subject := range strategy.Order(subjects, s.rng) {
		placed := s.placeSubject(subject, strategy)
		if placed < subject.SessionsPerWeek {
			shortfalls = append(shortfalls, models.ShortfallNotice{
				SubjectID: subject.ID,
				Required:  subject.SessionsPerWeek,
				Placed:    placed,
			})
		}
	}
	return shortfalls
}

func (s *runState) placeSubject(subject models.Subject, strategy Strategy) int {
	placed := 0
	for attempt := 0; attempt < placementAttempts && placed < subject.SessionsPerWeek; attempt++ {
		day := s.days[s.rng.Intn(len(s.days))]
		slot := s.slots[s.rng.Intn(len(s.slots))]
		key := cellKey{Day: day, Slot: slot}
		if _, occupied := s.grid[key]; occupied {
			// First writer wins; the attempt is simply spent.
			continue
		}

		instructor := subject.Instructor
		if instructor == "" {
			instructor = s.instructors[s.rng.Intn(len(s.instructors))]
		}

		conflict := s.instructorBooked(instructor, day, slot)
		if conflict && !strategy.ToleratesConflicts() {
			continue
		}
		if conflict {
			s.conflicts++
		}

		s.grid[key] = models.ScheduledSession{
			Day:        day,
			TimeSlot:   slot,
			Subject:    subject.Name,
			Instructor: instructor,
			Room:       pickRoom(s.rng, subject.Kind, s.rooms),
			Kind:       subject.Kind,
		}
		placed++
	}
	return placed
}

// instructorBooked scans placed sessions for the same instructor in the
// same (day, slot) cell.
func (s *runState) instructorBooked(instructor, day, slot string) bool {
	for key, session := range s.grid {
		if key.Day == day && key.Slot == slot && session.Instructor == instructor {
			return true
		}
	}
	return false
}

// totalCells is the universe of placement targets: teaching slots plus
// the lunch cell, per working day.
func (s *runState) totalCells() int {
	return len(s.days) * (len(s.slots) + 1)
}

// exportSessions flattens the grid ordered by day then time slot.
func (s *runState) exportSessions() []models.ScheduledSession {
	dayIndex := make(map[string]int, len(s.days))
	for i, day := range s.days {
		dayIndex[day] = i
	}
	sessions := make([]models.ScheduledSession, 0, len(s.grid))
	for _, session := range s.grid {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if dayIndex[sessions[i].Day] != dayIndex[sessions[j].Day] {
			return dayIndex[sessions[i].Day] < dayIndex[sessions[j].Day]
		}
		return sessions[i].TimeSlot < sessions[j].TimeSlot
	})
	return sessions
}
