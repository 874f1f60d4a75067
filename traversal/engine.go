/*
Package traversal replays a depth-first search with backtracking over a maze
grid, one step per tick.

An Engine owns the search stack, the visited set and an Idle/Running/Halted
state machine. Start runs the first step immediately and chains every following
step through a Scheduler after a fixed delay. Reset and Close cancel the pending
step, so a continuation never runs against state it was not scheduled for.
Observers read Snapshots, either on demand or through Subscribe.
*/
package traversal

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// DefaultStepDelay is the pause between two consecutive steps of a run.
const DefaultStepDelay = 300 * time.Millisecond

var ErrNilGrid = errors.New("traversal needs a grid")

// Option configures an Engine.
type Option func(*Engine)

// WithStepDelay sets the pause between two scheduled steps.
func WithStepDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.delay = d
		}
	}
}

// WithScheduler replaces the timer based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// WithSnapshotHook registers fn to receive every published snapshot, in order
// and without drops. fn runs with the engine locked: it must not block or call
// back into the engine.
func WithSnapshotHook(fn func(Snapshot)) Option {
	return func(e *Engine) {
		e.hook = fn
	}
}

// Engine runs a stepwise depth-first traversal of a single grid.
// It is safe for concurrent use; scheduled steps and caller commands are
// serialized on an internal lock.
type Engine struct {
	grid      *maze.Grid
	start     *maze.Position
	delay     time.Duration
	scheduler Scheduler

	state    State
	outcome  Outcome
	frontier []maze.Position // DFS stack, top is the agent's next cell
	visited  [][]bool
	stacked  [][]bool // cells currently on the frontier
	marked   int
	steps    int
	last     Snapshot

	pending    Handle // continuation scheduled by the last step
	generation uint64 // bumped on every cancellation; older continuations are stale
	closed     bool

	subscribers map[int]chan Snapshot
	nextSubID   int
	hook        func(Snapshot)

	mu sync.Mutex
}

// New creates an idle engine bound to grid. A nil start is valid: the engine
// exists but never runs.
func New(grid *maze.Grid, start *maze.Position, opts ...Option) (*Engine, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}

	e := &Engine{
		grid:        grid,
		delay:       DefaultStepDelay,
		scheduler:   TimerScheduler{},
		subscribers: make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(e)
	}

	if start != nil {
		if !grid.InBound(start.Row, start.Col) {
			return nil, fmt.Errorf("start %s: %w", start, maze.ErrOutOfBounds)
		}
		s := *start
		e.start = &s
	}

	height, width := grid.Dimensions()
	e.visited = make([][]bool, height)
	e.stacked = make([][]bool, height)
	for r := range height {
		e.visited[r] = make([]bool, width)
		e.stacked[r] = make([]bool, width)
	}

	e.resetLocked()
	return e, nil
}

// NewFromGrid creates an engine that starts from the grid's own start cell.
func NewFromGrid(grid *maze.Grid, opts ...Option) (*Engine, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	if start, ok := grid.Start(); ok {
		return New(grid, &start, opts...)
	}
	return New(grid, nil, opts...)
}

// Grid returns the grid the engine walks.
func (e *Engine) Grid() *maze.Grid {
	return e.grid
}

// StartPosition returns the cell every run begins from.
func (e *Engine) StartPosition() (maze.Position, bool) {
	if e.start == nil {
		return maze.Position{}, false
	}
	return *e.start, true
}

// State returns the current run state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Snapshot returns the most recently published snapshot. Its Frontier slice
// is shared with subscribers and must not be modified.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Start begins a run. It does nothing while a run is in progress, after Close,
// or when the maze has no start. Starting a halted engine resets it first.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startLocked()
}

// Reset stops any run, clears the search state and returns the engine to Idle.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.resetLocked()
	e.publishLocked(e.last)
}

// Toggle starts the engine when it is not running and resets it otherwise.
func (e *Engine) Toggle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.state == Running {
		e.resetLocked()
		e.publishLocked(e.last)
		return
	}
	e.startLocked()
}

// Step performs one traversal step. Calls made while the engine is not
// running are ignored.
func (e *Engine) Step() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.stepLocked()
}

// Close cancels any pending step and closes every subscription. The engine
// ignores all commands afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.cancelPendingLocked()
	e.closed = true
	for id, ch := range e.subscribers {
		close(ch)
		delete(e.subscribers, id)
	}
}

// Subscribe returns a channel receiving the current snapshot followed by
// every published one, and a function that ends the subscription. Delivery
// never blocks the engine: when the buffer is full the oldest queued snapshot
// is dropped.
func (e *Engine) Subscribe(buffer int) (<-chan Snapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Snapshot, buffer)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		close(ch)
		return ch, func() {}
	}

	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = ch
	ch <- e.last

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if sub, ok := e.subscribers[id]; ok {
				delete(e.subscribers, id)
				close(sub)
			}
		})
	}
}

func (e *Engine) startLocked() {
	if e.closed || e.state == Running || e.start == nil {
		return
	}
	if e.state == Halted {
		e.resetLocked()
	}
	e.state = Running
	e.stepLocked()
}

func (e *Engine) resetLocked() {
	e.cancelPendingLocked()

	for r := range e.visited {
		clear(e.visited[r])
		clear(e.stacked[r])
	}
	e.frontier = e.frontier[:0]
	e.marked = 0
	e.steps = 0
	e.state = Idle
	e.outcome = Pending

	var agent *maze.Position
	if e.start != nil {
		e.push(*e.start)
		a := *e.start
		agent = &a
	}

	e.last = Snapshot{
		State:    Idle,
		Outcome:  Pending,
		Agent:    agent,
		Frontier: append([]maze.Position{}, e.frontier...),
		Depth:    len(e.frontier),
	}
}

// stepLocked advances the search by one cell: it processes the top of the
// stack, then either pushes its first open unvisited neighbor or backtracks.
func (e *Engine) stepLocked() {
	if e.state != Running || len(e.frontier) == 0 {
		return
	}
	e.cancelPendingLocked()

	current := e.frontier[len(e.frontier)-1]
	newlyMarked := !e.visited[current.Row][current.Col]
	if newlyMarked {
		e.visited[current.Row][current.Col] = true
		e.marked++
	}
	e.steps++
	path := append([]maze.Position{}, e.frontier...)

	kind, err := e.grid.KindAt(current.Row, current.Col)
	if err != nil {
		// Every stacked cell was bounds checked when it was pushed.
		panic(err)
	}

	if kind == maze.End {
		e.state = Halted
		e.outcome = GoalReached
	} else {
		if next, ok := e.nextCell(current); ok {
			e.push(next)
		} else {
			e.pop()
		}
		if len(e.frontier) == 0 {
			e.state = Halted
			e.outcome = Exhausted
		}
	}

	agent := current
	e.last = Snapshot{
		State:    e.state,
		Outcome:  e.outcome,
		Agent:    &agent,
		Frontier: path,
		Depth:    len(e.frontier),
		Step:     e.steps,
		Visited:  e.marked,
		Marked:   newlyMarked,
	}
	e.publishLocked(e.last)

	if e.state == Running && len(e.frontier) > 0 {
		e.scheduleLocked()
	}
}

// nextCell finds the first neighbor of p, in up/right/down/left order, that
// is walkable and neither visited nor already on the stack.
func (e *Engine) nextCell(p maze.Position) (maze.Position, bool) {
	for n := range e.grid.Neighbors(p.Row, p.Col) {
		kind, err := e.grid.KindAt(n.Row, n.Col)
		if err != nil || !kind.Walkable() {
			continue
		}
		if e.visited[n.Row][n.Col] || e.stacked[n.Row][n.Col] {
			continue
		}
		return n, true
	}
	return maze.Position{}, false
}

func (e *Engine) push(p maze.Position) {
	e.frontier = append(e.frontier, p)
	e.stacked[p.Row][p.Col] = true
}

func (e *Engine) pop() {
	top := e.frontier[len(e.frontier)-1]
	e.stacked[top.Row][top.Col] = false
	e.frontier = e.frontier[:len(e.frontier)-1]
}

func (e *Engine) scheduleLocked() {
	generation := e.generation
	e.pending = e.scheduler.Schedule(e.delay, func() {
		e.fire(generation)
	})
}

// fire runs a scheduled step unless it was invalidated after being scheduled.
func (e *Engine) fire(generation uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || generation != e.generation {
		return
	}
	e.pending = nil
	e.stepLocked()
}

// cancelPendingLocked stops the pending continuation. A continuation whose
// timer already fired is blocked on the lock; bumping the generation makes it
// return without stepping.
func (e *Engine) cancelPendingLocked() {
	if e.pending != nil {
		e.pending.Cancel()
		e.pending = nil
	}
	e.generation++
}

func (e *Engine) publishLocked(s Snapshot) {
	if e.hook != nil {
		e.hook(s)
	}
	for _, ch := range e.subscribers {
		select {
		case ch <- s:
			continue
		default:
		}
		// Full: drop the oldest snapshot to make room for the newest.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}
