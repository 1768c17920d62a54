package models

// SessionKind classifies what occupies a grid cell.
type SessionKind string

const (
	SessionKindLecture   SessionKind = "lecture"
	SessionKindPractical SessionKind = "practical"
	SessionKindLab       SessionKind = "lab"
	SessionKindBreak     SessionKind = "break"
	SessionKindLunch     SessionKind = "lunch"
)

// SubjectPriority orders subjects for the optimal strategy.
type SubjectPriority string

const (
	PriorityHigh   SubjectPriority = "high"
	PriorityMedium SubjectPriority = "medium"
	PriorityLow    SubjectPriority = "low"
)

// Weight maps a priority onto its sort weight. Unknown values rank lowest.
func (p SubjectPriority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Subject is one course requiring a weekly number of sessions.
type Subject struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SessionsPerWeek int             `json:"sessions_per_week"`
	DurationMinutes int             `json:"duration_minutes"`
	Kind            SessionKind     `json:"kind"`
	Instructor      string          `json:"instructor,omitempty"`
	Priority        SubjectPriority `json:"priority,omitempty"`
}

// TimetableConfig is the full input to one generation run. Optional fields
// degrade to the built-in defaults in internal/engine.
type TimetableConfig struct {
	Subjects          []Subject `json:"subjects"`
	Department        string    `json:"department"`
	Semester          string    `json:"semester"`
	StartTime         string    `json:"start_time"`
	EndTime           string    `json:"end_time"`
	LunchBreak        string    `json:"lunch_break"`
	WorkingDays       []string  `json:"working_days"`
	Rooms             []string  `json:"rooms"`
	Instructors       []string  `json:"instructors"`
	MaxSessionsPerDay int       `json:"max_sessions_per_day"`
}

// ScheduledSession is the content placed into one (day, slot) grid cell.
type ScheduledSession struct {
	Day        string      `json:"day"`
	TimeSlot   string      `json:"time_slot"`
	Subject    string      `json:"subject"`
	Instructor string      `json:"instructor,omitempty"`
	Room       string      `json:"room,omitempty"`
	Kind       SessionKind `json:"kind"`
}

// ScheduleMetrics holds the evaluation of one candidate.
type ScheduleMetrics struct {
	Utilization int `json:"utilization"`
	Efficiency  int `json:"efficiency"`
	Conflicts   int `json:"conflicts"`
	Score       int `json:"score"`
}

// ShortfallNotice reports a subject that received fewer sessions than
// required within the attempt budget. Non-fatal.
type ShortfallNotice struct {
	SubjectID string `json:"subject_id"`
	Required  int    `json:"required"`
	Placed    int    `json:"placed"`
}

// CandidateSchedule is one complete generated timetable for one strategy.
// Sessions are ordered by day then time slot.
type CandidateSchedule struct {
	Strategy   string             `json:"strategy"`
	Sessions   []ScheduledSession `json:"sessions"`
	Metrics    ScheduleMetrics    `json:"metrics"`
	Shortfalls []ShortfallNotice  `json:"shortfalls,omitempty"`
}

// Pagination describes list metadata in response envelopes.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
