package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ApprovedSchedule is a persisted candidate together with its display
// metadata. The id is opaque to callers.
type ApprovedSchedule struct {
	ID         string         `db:"id" json:"id"`
	Title      string         `db:"title" json:"title"`
	Department string         `db:"department" json:"department"`
	Term       string         `db:"term" json:"term"`
	Strategy   string         `db:"strategy" json:"strategy"`
	Sessions   types.JSONText `db:"sessions" json:"sessions"`
	Metrics    types.JSONText `db:"metrics" json:"metrics"`
	ApprovedAt time.Time      `db:"approved_at" json:"approved_at"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// ApprovedScheduleSummary is the lightweight list-view projection.
type ApprovedScheduleSummary struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Department string    `db:"department" json:"department"`
	Term       string    `db:"term" json:"term"`
	Strategy   string    `db:"strategy" json:"strategy"`
	ApprovedAt time.Time `db:"approved_at" json:"approved_at"`
}
