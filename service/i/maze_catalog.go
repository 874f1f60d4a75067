package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeCatalog validates and serves stored mazes.
type MazeCatalog interface {
	List(ctx context.Context, limit int) ([]*maze.Document, error)
	ByID(ctx context.Context, id uuid.UUID) (*maze.Document, error)
	Create(ctx context.Context, name string, rows [][]string) (*maze.Document, error)
	Import(ctx context.Context, docs []*maze.Document) (int, error)
}
