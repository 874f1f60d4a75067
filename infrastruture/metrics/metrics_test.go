package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraversalMetrics(t *testing.T) {
	m := NewTraversal()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.StepTaken()
	m.StepTaken()
	m.RunFinished("goal_reached", 2)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, "maze_traversal_steps_total 2")
	assert.Contains(t, out, `maze_traversal_runs_total{outcome="goal_reached"} 1`)
	assert.Contains(t, out, "maze_traversal_active_sessions 1")
	assert.Contains(t, out, "maze_traversal_run_steps_count 1")
}
