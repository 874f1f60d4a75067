package service

import (
	"context"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

type memMazeRepo struct {
	docs []*maze.Document
	sync.Mutex
}

func (r *memMazeRepo) Save(_ context.Context, doc *maze.Document) error {
	r.Lock()
	defer r.Unlock()
	for idx, d := range r.docs {
		if d.ID == doc.ID {
			r.docs[idx] = doc
			return nil
		}
	}
	r.docs = append(r.docs, doc)
	return nil
}

func (r *memMazeRepo) ByID(_ context.Context, id uuid.UUID) (*maze.Document, error) {
	r.Lock()
	defer r.Unlock()
	for _, d := range r.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, i.ErrMazeNotFound
}

func (r *memMazeRepo) List(_ context.Context, limit int) ([]*maze.Document, error) {
	r.Lock()
	defer r.Unlock()
	return append([]*maze.Document(nil), r.docs[:min(limit, len(r.docs))]...), nil
}

type memRunStore struct {
	runs []i.RunRecord
	sync.Mutex
}

func (s *memRunStore) Record(_ context.Context, run i.RunRecord) error {
	s.Lock()
	defer s.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

func (s *memRunStore) Recent(_ context.Context, mazeID uuid.UUID, limit int) ([]i.RunRecord, error) {
	s.Lock()
	defer s.Unlock()
	var out []i.RunRecord
	for idx := len(s.runs) - 1; idx >= 0 && len(out) < limit; idx-- {
		if s.runs[idx].MazeID == mazeID {
			out = append(out, s.runs[idx])
		}
	}
	return out, nil
}

func (s *memRunStore) all() []i.RunRecord {
	s.Lock()
	defer s.Unlock()
	return append([]i.RunRecord(nil), s.runs...)
}

type countingMetrics struct {
	steps, opened, closed int
	outcomes              []string
	sync.Mutex
}

func (m *countingMetrics) StepTaken() {
	m.Lock()
	defer m.Unlock()
	m.steps++
}

func (m *countingMetrics) RunFinished(outcome string, _ int) {
	m.Lock()
	defer m.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *countingMetrics) SessionOpened() {
	m.Lock()
	defer m.Unlock()
	m.opened++
}

func (m *countingMetrics) SessionClosed() {
	m.Lock()
	defer m.Unlock()
	m.closed++
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type memAccountRepo struct {
	accounts map[string]*identity.Account
}

func (r *memAccountRepo) Save(a *identity.Account) error {
	if r.accounts == nil {
		r.accounts = map[string]*identity.Account{}
	}
	r.accounts[a.Username] = a
	return nil
}

func (r *memAccountRepo) ByID(id uuid.UUID) (*identity.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, i.ErrAccountNotFound
}

func (r *memAccountRepo) ByUsername(username string) (*identity.Account, error) {
	if a, ok := r.accounts[username]; ok {
		return a, nil
	}
	return nil, i.ErrAccountNotFound
}

type stubTokenizer struct{}

func (stubTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	return "token-for-" + claims["username"].(string), nil
}

func (stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

// slowRunStore takes delay to record each run.
type slowRunStore struct {
	memRunStore
	delay time.Duration
}

func (s *slowRunStore) Record(ctx context.Context, run i.RunRecord) error {
	time.Sleep(s.delay)
	return s.memRunStore.Record(ctx, run)
}
