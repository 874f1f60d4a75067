package traversal

import (
	"fmt"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// State is the run state of an Engine.
type State uint8

const (
	Idle State = iota
	Running
	Halted
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("State(%d)", s)
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{Idle, Running, Halted} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// Outcome tells how a halted run ended.
type Outcome uint8

const (
	Pending     Outcome = iota // Pending means the run has not ended.
	GoalReached                // GoalReached means the agent stands on the end cell.
	Exhausted                  // Exhausted means every reachable cell was explored without finding the goal.
)

// String returns the snake-case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case GoalReached:
		return "goal_reached"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("Outcome(%d)", o)
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an outcome name written by MarshalText.
func (o *Outcome) UnmarshalText(text []byte) error {
	for _, oc := range []Outcome{Pending, GoalReached, Exhausted} {
		if oc.String() == string(text) {
			*o = oc
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Snapshot is the externally observable state of an Engine, published after
// every step and every reset.
type Snapshot struct {
	State    State           `json:"state"`
	Outcome  Outcome         `json:"outcome"`
	Agent    *maze.Position  `json:"agent"`    // nil when the maze has no start
	Frontier []maze.Position `json:"frontier"` // path from start to agent when the step began
	Depth    int             `json:"depth"`    // stack size after the step, 0 once exhausted
	Step     int             `json:"step"`     // steps taken in the current run
	Visited  int             `json:"visited"`  // cells marked visited so far
	Marked   bool            `json:"marked"`   // whether the last step marked a new cell
}

// ToggleLabel is the label of the single start/reset control for this state.
func (s Snapshot) ToggleLabel() string {
	if s.State == Running {
		return "Reset"
	}
	return "Start"
}

// OnFrontier reports whether p is part of the current frontier path.
func (s Snapshot) OnFrontier(p maze.Position) bool {
	for _, f := range s.Frontier {
		if f == p {
			return true
		}
	}
	return false
}
