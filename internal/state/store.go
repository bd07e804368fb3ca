// Package state records the history of analysis runs in SQLite.
//
// History is write-mostly: runs are appended after each analysis and listed
// by the history command. Nothing recorded here feeds back into an analysis.
package state

import (
	"context"
	"time"
)

// Run summarizes one analysis run.
type Run struct {
	ID          string        `json:"id"`
	Root        string        `json:"root"`
	Profile     string        `json:"profile"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	Files       int           `json:"files"`
	Edges       int           `json:"edges"`
	Entities    int           `json:"entities"`
	Cycles      int           `json:"cycles"`
	Orphans     int           `json:"orphans"`
	Diagnostics int           `json:"diagnostics"`
	Errors      int           `json:"errors"`
	Warnings    int           `json:"warnings"`
}

// Store persists run summaries.
type Store interface {
	// RecordRun inserts a run. An empty ID is replaced with a new UUID.
	RecordRun(ctx context.Context, run *Run) error
	// GetRun returns the run with the given ID.
	GetRun(ctx context.Context, id string) (*Run, error)
	// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	Close() error
}
