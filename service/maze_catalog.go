package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultListLimit = 3
	maxListLimit     = 100
)

// MazeCatalog validates mazes before storing them and serves them back.
type MazeCatalog struct {
	repo   i.MazeRepo
	logger i.Logger
}

// NewMazeCatalog creates a MazeCatalog over repo.
func NewMazeCatalog(repo i.MazeRepo, logger i.Logger) (*MazeCatalog, error) {
	if repo == nil || logger == nil {
		return nil, errors.New("maze catalog needs a repo and a logger")
	}
	return &MazeCatalog{repo: repo, logger: logger}, nil
}

// List returns up to limit mazes. A non-positive limit selects the default
// of three.
func (c *MazeCatalog) List(ctx context.Context, limit int) ([]*maze.Document, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return c.repo.List(ctx, min(limit, maxListLimit))
}

// ByID returns a single maze.
func (c *MazeCatalog) ByID(ctx context.Context, id uuid.UUID) (*maze.Document, error) {
	return c.repo.ByID(ctx, id)
}

// Create validates rows as a grid and stores them as a new maze.
func (c *MazeCatalog) Create(ctx context.Context, name string, rows [][]string) (*maze.Document, error) {
	grid, err := maze.Parse(rows)
	if err != nil {
		return nil, err
	}

	doc := maze.NewDocument(name, grid)
	if err := c.repo.Save(ctx, doc); err != nil {
		c.logger.Error(fmt.Sprintf("saving maze %q: %s", name, err))
		return nil, err
	}

	c.logger.Info(fmt.Sprintf("stored maze %s (%q)", doc.ID, name))
	return doc, nil
}

// Import stores already decoded documents, skipping invalid ones. It returns
// how many were stored.
func (c *MazeCatalog) Import(ctx context.Context, docs []*maze.Document) (int, error) {
	stored := 0
	for _, doc := range docs {
		if _, err := doc.Grid(); err != nil {
			c.logger.Warning(fmt.Sprintf("skipping maze %s: %s", doc.ID, err))
			continue
		}
		if doc.ID == uuid.Nil {
			doc.ID = uuid.New()
		}
		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = time.Now().UTC()
		}
		if err := c.repo.Save(ctx, doc); err != nil {
			return stored, fmt.Errorf("importing maze %s: %w", doc.ID, err)
		}
		stored++
	}

	c.logger.Info(fmt.Sprintf("imported %d of %d mazes", stored, len(docs)))
	return stored, nil
}
