// Package traversalapi exposes traversal sessions over HTTP and websockets.
package traversalapi

import (
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/traversal"
	"github.com/google/uuid"
)

// CreateSessionRequest opens a traversal session over a stored maze.
type CreateSessionRequest struct {
	MazeID uuid.UUID `json:"maze_id" binding:"required"`
}

// SessionResponse reports a session and its latest snapshot.
type SessionResponse struct {
	ID       string             `json:"id"`
	MazeID   string             `json:"maze_id"`
	Toggle   string             `json:"toggle"`
	Snapshot traversal.Snapshot `json:"snapshot"`
}

// StreamCommand is sent by websocket clients to drive the session.
type StreamCommand struct {
	Action string `json:"action"` // "start", "reset" or "toggle"
}

// StreamError is sent to websocket clients when a command fails.
type StreamError struct {
	Error string `json:"error"`
}

func newSessionResponse(s i.Session, snap traversal.Snapshot) SessionResponse {
	return SessionResponse{
		ID:       s.ID.String(),
		MazeID:   s.MazeID.String(),
		Toggle:   snap.ToggleLabel(),
		Snapshot: snap,
	}
}
