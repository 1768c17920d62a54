package dto

import "github.com/campusgrid/timetable-api/internal/models"

// SubjectRequest captures one course's weekly demand.
type SubjectRequest struct {
	ID              string `json:"id" validate:"required"`
	Name            string `json:"name" validate:"required"`
	SessionsPerWeek int    `json:"sessionsPerWeek" validate:"required,min=1"`
	DurationMinutes int    `json:"durationMinutes" validate:"omitempty,min=30,max=240"`
	Kind            string `json:"kind" validate:"omitempty,oneof=lecture practical lab"`
	Instructor      string `json:"instructor"`
	Priority        string `json:"priority" validate:"omitempty,oneof=high medium low"`
}

// GenerateTimetableRequest instructs the generator to build candidates.
// Every field besides the subject list is optional and degrades to the
// engine's built-in defaults.
type GenerateTimetableRequest struct {
	Subjects          []SubjectRequest `json:"subjects" validate:"required,min=1,dive"`
	Department        string           `json:"department"`
	Semester          string           `json:"semester"`
	StartTime         string           `json:"startTime"`
	EndTime           string           `json:"endTime"`
	LunchBreak        string           `json:"lunchBreak"`
	WorkingDays       []string         `json:"workingDays" validate:"omitempty,max=7"`
	Rooms             []string         `json:"rooms"`
	Instructors       []string         `json:"instructors"`
	MaxSessionsPerDay int              `json:"maxSessionsPerDay" validate:"omitempty,min=1,max=16"`
}

// CandidateView is one generated candidate plus its retrieval id.
type CandidateView struct {
	CandidateID string                    `json:"candidateId"`
	Strategy    string                    `json:"strategy"`
	Sessions    []models.ScheduledSession `json:"sessions"`
	Metrics     models.ScheduleMetrics    `json:"metrics"`
	Shortfalls  []models.ShortfallNotice  `json:"shortfalls,omitempty"`
}

// GenerateTimetableResponse returns the built candidates, one per
// strategy, in the fixed strategy order.
type GenerateTimetableResponse struct {
	Candidates []CandidateView `json:"candidates"`
}

// ApproveTimetableRequest persists one previously generated candidate.
type ApproveTimetableRequest struct {
	CandidateID string `json:"candidateId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Department  string `json:"department"`
	Term        string `json:"term"`
}

// ExportJobView reports the state of an asynchronous PDF export.
type ExportJobView struct {
	JobID      string `json:"jobId"`
	ScheduleID string `json:"scheduleId"`
	Status     string `json:"status"`
	File       string `json:"file,omitempty"`
	Error      string `json:"error,omitempty"`
}
