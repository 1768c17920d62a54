package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/campusgrid/timetable-api/internal/models"
)

// ApprovedScheduleRepository persists accepted timetable candidates. Ids
// are opaque to callers.
type ApprovedScheduleRepository struct {
	db *sqlx.DB
}

// NewApprovedScheduleRepository constructs the repository.
func NewApprovedScheduleRepository(db *sqlx.DB) *ApprovedScheduleRepository {
	return &ApprovedScheduleRepository{db: db}
}

// Create inserts an approved schedule, assigning id and timestamps.
func (r *ApprovedScheduleRepository) Create(ctx context.Context, schedule *models.ApprovedSchedule) error {
	if schedule == nil {
		return fmt.Errorf("schedule payload is nil")
	}
	if schedule.Title == "" {
		return fmt.Errorf("title is required")
	}
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if len(schedule.Sessions) == 0 {
		schedule.Sessions = types.JSONText(`[]`)
	}
	if len(schedule.Metrics) == 0 {
		schedule.Metrics = types.JSONText(`{}`)
	}
	now := time.Now().UTC()
	if schedule.ApprovedAt.IsZero() {
		schedule.ApprovedAt = now
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}

	const query = `
INSERT INTO approved_schedules (id, title, department, term, strategy, sessions, metrics, approved_at, created_at)
VALUES (:id, :title, :department, :term, :strategy, :sessions, :metrics, :approved_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("insert approved schedule: %w", err)
	}
	return nil
}

// List returns summaries of all stored schedules, newest first.
func (r *ApprovedScheduleRepository) List(ctx context.Context) ([]models.ApprovedScheduleSummary, error) {
	const query = `SELECT id, title, department, term, strategy, approved_at
FROM approved_schedules ORDER BY approved_at DESC`
	var schedules []models.ApprovedScheduleSummary
	if err := r.db.SelectContext(ctx, &schedules, query); err != nil {
		return nil, fmt.Errorf("list approved schedules: %w", err)
	}
	return schedules, nil
}

// FindByID returns the full stored schedule.
func (r *ApprovedScheduleRepository) FindByID(ctx context.Context, id string) (*models.ApprovedSchedule, error) {
	const query = `SELECT id, title, department, term, strategy, sessions, metrics, approved_at, created_at
FROM approved_schedules WHERE id = $1`
	var schedule models.ApprovedSchedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, fmt.Errorf("find approved schedule %s: %w", id, err)
	}
	return &schedule, nil
}
