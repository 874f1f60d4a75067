package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// AccountRepo defines the interface for account persistence operations.
type AccountRepo interface {
	// Save inserts or updates an account in the repository.
	// If the account already exists, it updates the record. Otherwise, it creates a new one.
	Save(account *identity.Account) error

	// ByID retrieves an account by its unique ID.
	// Returns an error if the account is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*identity.Account, error)

	// ByUsername retrieves an account by its username.
	// Returns an error if the account is not found or in case of an unexpected error.
	ByUsername(username string) (*identity.Account, error)
}

// MazeRepo stores maze documents.
type MazeRepo interface {
	// Save inserts or replaces a maze document.
	Save(ctx context.Context, doc *maze.Document) error

	// ByID returns the maze with the given ID or ErrMazeNotFound.
	ByID(ctx context.Context, id uuid.UUID) (*maze.Document, error)

	// List returns up to limit mazes, oldest first.
	List(ctx context.Context, limit int) ([]*maze.Document, error)
}
