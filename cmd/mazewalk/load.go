package main

import (
	"fmt"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// loadGrid reads the maze file at path and returns the grid at index.
func loadGrid(path string, index int) (*maze.Grid, string, error) {
	docs, err := maze.DecodeFile(path)
	if err != nil {
		return nil, "", err
	}
	if index < 0 || index >= len(docs) {
		return nil, "", fmt.Errorf("maze index %d out of range, %s holds %d mazes", index, path, len(docs))
	}
	doc := docs[index]
	grid, err := doc.Grid()
	if err != nil {
		return nil, "", fmt.Errorf("maze %d: %w", index, err)
	}
	name := doc.Name
	if name == "" {
		name = fmt.Sprintf("maze %d", index)
	}
	return grid, name, nil
}
