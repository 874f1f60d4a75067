package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/traversal"
	"github.com/google/uuid"
)

// Session describes an open traversal session.
type Session struct {
	ID     uuid.UUID
	MazeID uuid.UUID
}

// TraversalSessionManager owns one traversal engine per session.
type TraversalSessionManager interface {
	// NewSession opens a session over a stored maze.
	NewSession(ctx context.Context, mazeID uuid.UUID) (Session, traversal.Snapshot, error)

	// Snapshot returns the session and its latest snapshot.
	Snapshot(id uuid.UUID) (Session, traversal.Snapshot, error)

	// Start, Reset and Toggle drive the session's engine and return the
	// snapshot published by the command.
	Start(id uuid.UUID) (Session, traversal.Snapshot, error)
	Reset(id uuid.UUID) (Session, traversal.Snapshot, error)
	Toggle(id uuid.UUID) (Session, traversal.Snapshot, error)

	// Subscribe streams the session's snapshots until the returned cancel
	// function is called or the session closes.
	Subscribe(id uuid.UUID) (Session, <-chan traversal.Snapshot, func(), error)

	// Close tears the session down.
	Close(id uuid.UUID) error
}

// TraversalMetrics receives traversal activity.
type TraversalMetrics interface {
	StepTaken()
	RunFinished(outcome string, steps int)
	SessionOpened()
	SessionClosed()
}
