package service

import (
	"context"
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMazeCatalog(t *testing.T) {
	_, err := NewMazeCatalog(nil, nopLogger{})
	assert.Error(t, err)
	_, err = NewMazeCatalog(&memMazeRepo{}, nil)
	assert.Error(t, err)
}

func TestMazeCatalogCreate(t *testing.T) {
	repo := &memMazeRepo{}
	c, err := NewMazeCatalog(repo, nopLogger{})
	require.NoError(t, err)

	doc, err := c.Create(context.Background(), "corridor", corridor)
	require.NoError(t, err)
	assert.Equal(t, "corridor", doc.Name)
	assert.NotEqual(t, uuid.Nil, doc.ID)
	assert.Equal(t, corridor, doc.Rows)

	stored, err := c.ByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, stored)

	_, err = c.Create(context.Background(), "ragged", [][]string{{"start", "open"}, {"end"}})
	assert.ErrorIs(t, err, maze.ErrMalformedGrid)

	_, err = c.ByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, i.ErrMazeNotFound)
}

func TestMazeCatalogList(t *testing.T) {
	repo := &memMazeRepo{}
	c, err := NewMazeCatalog(repo, nopLogger{})
	require.NoError(t, err)

	for range 5 {
		_, err := c.Create(context.Background(), "m", corridor)
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "default limit", limit: 0, want: 3},
		{name: "negative limit", limit: -2, want: 3},
		{name: "explicit limit", limit: 4, want: 4},
		{name: "above stored count", limit: 50, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := c.List(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Len(t, docs, tt.want)
		})
	}
}

func TestMazeCatalogImport(t *testing.T) {
	repo := &memMazeRepo{}
	c, err := NewMazeCatalog(repo, nopLogger{})
	require.NoError(t, err)

	docs := []*maze.Document{
		{Name: "good", Rows: corridor},
		{Name: "ragged", Rows: [][]string{{"start"}, {"open", "end"}}},
		{ID: uuid.New(), Name: "kept id", Rows: [][]string{{"start", "end"}}},
	}

	n, err := c.Import(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stored, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, doc := range stored {
		assert.NotEqual(t, uuid.Nil, doc.ID)
		assert.False(t, doc.CreatedAt.IsZero())
	}
	assert.Equal(t, docs[2].ID, stored[1].ID)
}
