package traversal

import (
	"encoding/json"
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotJSON(t *testing.T) {
	agent := maze.Position{Row: 1, Col: 2}
	snap := Snapshot{
		State:    Halted,
		Outcome:  GoalReached,
		Agent:    &agent,
		Frontier: []maze.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
		Depth:    4,
		Step:     4,
		Visited:  4,
		Marked:   true,
	}

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"state":"halted"`)
	assert.Contains(t, string(raw), `"outcome":"goal_reached"`)

	var back Snapshot
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, snap, back)

	assert.Error(t, json.Unmarshal([]byte(`{"state":"flying"}`), &back))
	assert.Error(t, json.Unmarshal([]byte(`{"outcome":"lost"}`), &back))
}

func TestToggleLabel(t *testing.T) {
	assert.Equal(t, "Start", Snapshot{State: Idle}.ToggleLabel())
	assert.Equal(t, "Reset", Snapshot{State: Running}.ToggleLabel())
	assert.Equal(t, "Start", Snapshot{State: Halted}.ToggleLabel())
}

func TestOnFrontier(t *testing.T) {
	snap := Snapshot{Frontier: []maze.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}}}
	assert.True(t, snap.OnFrontier(maze.Position{Row: 0, Col: 1}))
	assert.False(t, snap.OnFrontier(maze.Position{Row: 1, Col: 1}))
}
