package i

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// RunRecord summarizes a finished traversal run.
type RunRecord struct {
	SessionID  uuid.UUID      `json:"session_id"`
	MazeID     uuid.UUID      `json:"maze_id"`
	Outcome    string         `json:"outcome"`
	Steps      int            `json:"steps"`
	Visited    int            `json:"visited"`
	FinalAgent *maze.Position `json:"final_agent"`
	FinishedAt time.Time      `json:"finished_at"`
}

// RunStore keeps the history of finished runs per maze.
type RunStore interface {
	// Record appends a finished run to its maze's history.
	Record(ctx context.Context, run RunRecord) error

	// Recent returns up to limit runs of a maze, newest first.
	Recent(ctx context.Context, mazeID uuid.UUID, limit int) ([]RunRecord, error)
}
