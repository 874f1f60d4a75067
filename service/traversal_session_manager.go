package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/traversal"
	"github.com/google/uuid"
)

const (
	subscriberBuffer     = 16
	defaultRecordTimeout = 2 * time.Second
	maxSweepInterval     = time.Minute
)

// session couples an engine with the maze it walks.
type session struct {
	mazeID     uuid.UUID
	engine     *traversal.Engine
	lastActive atomic.Int64 // unix nanoseconds of the last command, stream change or halt
	streams    atomic.Int32 // open Subscribe streams
}

func (s *session) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

// finishedRun is a halted snapshot waiting to be recorded.
type finishedRun struct {
	sessionID  uuid.UUID
	mazeID     uuid.UUID
	snap       traversal.Snapshot
	finishedAt time.Time
}

// TraversalSessionManager keeps one traversal engine per open session,
// records every finished run and reclaims abandoned sessions.
type TraversalSessionManager struct {
	mazeRepo      i.MazeRepo
	runStore      i.RunStore
	metrics       i.TraversalMetrics
	logger        i.Logger
	engineOptions []traversal.Option
	recordTimeout time.Duration
	idleTTL       time.Duration
	maxSessions   int
	sessions      map[uuid.UUID]*session

	runsMu    sync.Mutex
	runs      []finishedRun
	runsReady chan struct{}

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	sync.RWMutex
}

// Config holds the collaborators of a TraversalSessionManager. RunStore and
// Metrics are optional. A zero IdleTTL keeps sessions until they are closed;
// a zero MaxSessions leaves the number of sessions unbounded.
type Config struct {
	MazeRepo      i.MazeRepo
	RunStore      i.RunStore
	Metrics       i.TraversalMetrics
	Logger        i.Logger
	EngineOptions []traversal.Option
	RecordTimeout time.Duration
	IdleTTL       time.Duration // idle or halted sessions without streams are closed after this long
	MaxSessions   int
}

// NewTraversalSessionManager creates a session manager from c and starts its
// run recorder and, when IdleTTL is set, its idle session sweeper. StopAll
// stops both.
func NewTraversalSessionManager(c *Config) (*TraversalSessionManager, error) {
	if c == nil || c.MazeRepo == nil || c.Logger == nil {
		return nil, errors.New("session manager needs a maze repo and a logger")
	}

	timeout := c.RecordTimeout
	if timeout <= 0 {
		timeout = defaultRecordTimeout
	}

	g := &TraversalSessionManager{
		mazeRepo:      c.MazeRepo,
		runStore:      c.RunStore,
		metrics:       c.Metrics,
		logger:        c.Logger,
		engineOptions: c.EngineOptions,
		recordTimeout: timeout,
		idleTTL:       max(c.IdleTTL, 0),
		maxSessions:   max(c.MaxSessions, 0),
		sessions:      make(map[uuid.UUID]*session),
		runsReady:     make(chan struct{}, 1),
		stop:          make(chan struct{}),
	}

	g.wg.Add(1)
	go g.recordRuns()

	if g.idleTTL > 0 {
		g.wg.Add(1)
		go g.sweep(min(max(g.idleTTL/2, time.Millisecond), maxSweepInterval))
	}
	return g, nil
}

// NewSession loads a maze and opens an idle traversal session over it.
func (g *TraversalSessionManager) NewSession(ctx context.Context, mazeID uuid.UUID) (i.Session, traversal.Snapshot, error) {
	doc, err := g.mazeRepo.ByID(ctx, mazeID)
	if err != nil {
		return i.Session{}, traversal.Snapshot{}, err
	}

	grid, err := doc.Grid()
	if err != nil {
		g.logger.Error(fmt.Sprintf("stored maze %s is invalid: %s", mazeID, err))
		return i.Session{}, traversal.Snapshot{}, err
	}

	if g.full() {
		g.evictIdle(time.Now())
		if g.full() {
			g.logger.Warning(fmt.Sprintf("refusing session for maze %s: %d sessions open", mazeID, g.maxSessions))
			return i.Session{}, traversal.Snapshot{}, i.ErrTooManySessions
		}
	}

	g.Lock()
	if g.maxSessions > 0 && len(g.sessions) >= g.maxSessions {
		g.Unlock()
		return i.Session{}, traversal.Snapshot{}, i.ErrTooManySessions
	}
	sessionID := uuid.New()
	for {
		if _, ok := g.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}

	s := &session{mazeID: mazeID}
	opts := append(append([]traversal.Option{}, g.engineOptions...), traversal.WithSnapshotHook(func(snap traversal.Snapshot) {
		g.observe(sessionID, s, snap)
	}))
	engine, err := traversal.NewFromGrid(grid, opts...)
	if err != nil {
		g.Unlock()
		return i.Session{}, traversal.Snapshot{}, err
	}
	s.engine = engine
	s.touch(time.Now())
	g.sessions[sessionID] = s
	g.Unlock()

	if g.metrics != nil {
		g.metrics.SessionOpened()
	}

	if _, ok := engine.StartPosition(); !ok {
		g.logger.Warning(fmt.Sprintf("maze %s has no start cell, session %s can not run", mazeID, sessionID))
	}
	g.logger.Info(fmt.Sprintf("opened traversal session %s for maze %s", sessionID, mazeID))
	return i.Session{ID: sessionID, MazeID: mazeID}, engine.Snapshot(), nil
}

// Snapshot returns the latest snapshot of a session.
func (g *TraversalSessionManager) Snapshot(id uuid.UUID) (i.Session, traversal.Snapshot, error) {
	s, err := g.session(id)
	if err != nil {
		return i.Session{}, traversal.Snapshot{}, err
	}
	s.touch(time.Now())
	return i.Session{ID: id, MazeID: s.mazeID}, s.engine.Snapshot(), nil
}

// Start starts the session's engine.
func (g *TraversalSessionManager) Start(id uuid.UUID) (i.Session, traversal.Snapshot, error) {
	return g.command(id, (*traversal.Engine).Start)
}

// Reset resets the session's engine.
func (g *TraversalSessionManager) Reset(id uuid.UUID) (i.Session, traversal.Snapshot, error) {
	return g.command(id, (*traversal.Engine).Reset)
}

// Toggle starts the session's engine when idle or halted and resets it when running.
func (g *TraversalSessionManager) Toggle(id uuid.UUID) (i.Session, traversal.Snapshot, error) {
	return g.command(id, (*traversal.Engine).Toggle)
}

// Subscribe streams the snapshots of a session. A session with an open
// stream is never reclaimed as idle.
func (g *TraversalSessionManager) Subscribe(id uuid.UUID) (i.Session, <-chan traversal.Snapshot, func(), error) {
	s, err := g.session(id)
	if err != nil {
		return i.Session{}, nil, nil, err
	}
	s.streams.Add(1)
	s.touch(time.Now())

	ch, cancel := s.engine.Subscribe(subscriberBuffer)
	var once sync.Once
	return i.Session{ID: id, MazeID: s.mazeID}, ch, func() {
		once.Do(func() {
			cancel()
			s.streams.Add(-1)
			s.touch(time.Now())
		})
	}, nil
}

// Close tears a session down, cancelling any scheduled step.
func (g *TraversalSessionManager) Close(id uuid.UUID) error {
	g.Lock()
	s, ok := g.sessions[id]
	if !ok {
		g.Unlock()
		return i.ErrSessionNotFound
	}
	delete(g.sessions, id)
	g.Unlock()

	g.release(id, s, "closed")
	return nil
}

// StopAll closes every session, records the runs still queued and stops the
// background workers. It is safe to call more than once.
func (g *TraversalSessionManager) StopAll() {
	g.Lock()
	sessions := g.sessions
	g.sessions = make(map[uuid.UUID]*session)
	g.Unlock()

	for id, s := range sessions {
		g.release(id, s, "closed")
	}

	g.stopOnce.Do(func() {
		close(g.stop)
	})
	g.wg.Wait()
}

// evictIdle closes every session that is not running, has no open stream and
// saw no activity for idleTTL before now. It returns how many were closed.
func (g *TraversalSessionManager) evictIdle(now time.Time) int {
	if g.idleTTL <= 0 {
		return 0
	}
	deadline := now.Add(-g.idleTTL).UnixNano()

	evicted := make(map[uuid.UUID]*session)
	g.Lock()
	for id, s := range g.sessions {
		if s.streams.Load() > 0 || s.lastActive.Load() > deadline {
			continue
		}
		if s.engine.State() == traversal.Running {
			continue
		}
		evicted[id] = s
		delete(g.sessions, id)
	}
	g.Unlock()

	for id, s := range evicted {
		g.release(id, s, "reclaimed idle")
	}
	return len(evicted)
}

func (g *TraversalSessionManager) sweep(interval time.Duration) {
	defer g.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			g.evictIdle(time.Now())
		case <-g.stop:
			return
		}
	}
}

func (g *TraversalSessionManager) full() bool {
	if g.maxSessions == 0 {
		return false
	}
	g.RLock()
	defer g.RUnlock()
	return len(g.sessions) >= g.maxSessions
}

func (g *TraversalSessionManager) release(id uuid.UUID, s *session, how string) {
	s.engine.Close()
	if g.metrics != nil {
		g.metrics.SessionClosed()
	}
	g.logger.Info(fmt.Sprintf("%s traversal session %s", how, id))
}

func (g *TraversalSessionManager) session(id uuid.UUID) (*session, error) {
	g.RLock()
	defer g.RUnlock()
	s, ok := g.sessions[id]
	if !ok {
		return nil, i.ErrSessionNotFound
	}
	return s, nil
}

func (g *TraversalSessionManager) command(id uuid.UUID, cmd func(*traversal.Engine)) (i.Session, traversal.Snapshot, error) {
	s, err := g.session(id)
	if err != nil {
		return i.Session{}, traversal.Snapshot{}, err
	}
	s.touch(time.Now())
	cmd(s.engine)
	return i.Session{ID: id, MazeID: s.mazeID}, s.engine.Snapshot(), nil
}

// observe runs inside the engine's lock for every published snapshot. It
// counts steps and queues halted runs; the recording itself happens on the
// recorder goroutine.
func (g *TraversalSessionManager) observe(sessionID uuid.UUID, s *session, snap traversal.Snapshot) {
	if snap.Step > 0 && g.metrics != nil {
		g.metrics.StepTaken()
	}
	if snap.State != traversal.Halted {
		return
	}

	now := time.Now()
	s.touch(now)

	g.runsMu.Lock()
	g.runs = append(g.runs, finishedRun{sessionID: sessionID, mazeID: s.mazeID, snap: snap, finishedAt: now.UTC()})
	g.runsMu.Unlock()

	select {
	case g.runsReady <- struct{}{}:
	default:
	}
}

// recordRuns records queued runs in halt order until StopAll, then drains
// whatever is left.
func (g *TraversalSessionManager) recordRuns() {
	defer g.wg.Done()

	for {
		select {
		case <-g.runsReady:
			g.drainRuns()
		case <-g.stop:
			g.drainRuns()
			return
		}
	}
}

func (g *TraversalSessionManager) drainRuns() {
	for {
		g.runsMu.Lock()
		pending := g.runs
		g.runs = nil
		g.runsMu.Unlock()

		if len(pending) == 0 {
			return
		}
		for _, run := range pending {
			g.recordRun(run)
		}
	}
}

func (g *TraversalSessionManager) recordRun(run finishedRun) {
	snap := run.snap
	if g.metrics != nil {
		g.metrics.RunFinished(snap.Outcome.String(), snap.Step)
	}
	g.logger.Info(fmt.Sprintf("session %s halted after %d steps: %s", run.sessionID, snap.Step, snap.Outcome))

	if g.runStore == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), g.recordTimeout)
	defer cancel()

	record := i.RunRecord{
		SessionID:  run.sessionID,
		MazeID:     run.mazeID,
		Outcome:    snap.Outcome.String(),
		Steps:      snap.Step,
		Visited:    snap.Visited,
		FinalAgent: snap.Agent,
		FinishedAt: run.finishedAt,
	}
	if err := g.runStore.Record(ctx, record); err != nil {
		g.logger.Error(fmt.Sprintf("recording run of session %s: %s", run.sessionID, err))
	}
}
