// Package mazeapi serves stored mazes and their run history.
package mazeapi

import (
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
)

// CreateMazeRequest uploads a new maze.
type CreateMazeRequest struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows" binding:"required"`
}

// MazeResponse describes a stored maze along with its start and goal.
type MazeResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Rows      [][]string     `json:"rows"`
	Height    int            `json:"height"`
	Width     int            `json:"width"`
	Start     *maze.Position `json:"start"`
	End       *maze.Position `json:"end"`
	CreatedAt time.Time      `json:"created_at"`
}

// ListResponse wraps a list of mazes in the "data" envelope maze files use.
type ListResponse struct {
	Data []MazeResponse `json:"data"`
}

// RunsResponse lists the recent runs of a maze, newest first.
type RunsResponse struct {
	Data []i.RunRecord `json:"data"`
}

func toResponse(doc *maze.Document) (MazeResponse, error) {
	grid, err := doc.Grid()
	if err != nil {
		return MazeResponse{}, err
	}
	h, w := grid.Dimensions()
	resp := MazeResponse{
		ID:        doc.ID.String(),
		Name:      doc.Name,
		Rows:      doc.Rows,
		Height:    h,
		Width:     w,
		CreatedAt: doc.CreatedAt,
	}
	if p, ok := grid.Start(); ok {
		resp.Start = &p
	}
	if p, ok := grid.End(); ok {
		resp.End = &p
	}
	return resp, nil
}
