package mazeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	docs []*maze.Document
}

func (f *fakeCatalog) List(_ context.Context, limit int) ([]*maze.Document, error) {
	if limit <= 0 {
		limit = 3
	}
	return f.docs[:min(limit, len(f.docs))], nil
}

func (f *fakeCatalog) ByID(_ context.Context, id uuid.UUID) (*maze.Document, error) {
	for _, d := range f.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, i.ErrMazeNotFound
}

func (f *fakeCatalog) Create(_ context.Context, name string, rows [][]string) (*maze.Document, error) {
	grid, err := maze.Parse(rows)
	if err != nil {
		return nil, err
	}
	doc := maze.NewDocument(name, grid)
	f.docs = append(f.docs, doc)
	return doc, nil
}

func (f *fakeCatalog) Import(context.Context, []*maze.Document) (int, error) {
	return 0, nil
}

type fakeRuns struct {
	runs []i.RunRecord
}

func (f *fakeRuns) Record(_ context.Context, run i.RunRecord) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRuns) Recent(_ context.Context, mazeID uuid.UUID, limit int) ([]i.RunRecord, error) {
	out := []i.RunRecord{}
	for _, r := range f.runs {
		if r.MazeID == mazeID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

var corridor = [][]string{
	{"start", "open", "wall"},
	{"wall", "open", "end"},
}

func setup(t *testing.T) (*gin.Engine, *fakeCatalog, *fakeRuns) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := &fakeCatalog{}
	runs := &fakeRuns{}
	c, err := NewController(catalog, runs, nopLogger{})
	require.NoError(t, err)

	r := gin.New()
	c.RegisterPublic(r.Group("/"))
	c.RegisterProtected(r.Group("/"))
	return r, catalog, runs
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	return rec
}

func TestNewController(t *testing.T) {
	_, err := NewController(nil, nil, nopLogger{})
	assert.Error(t, err)
}

func TestCreateAndGet(t *testing.T) {
	r, _, _ := setup(t)

	rec := do(r, http.MethodPost, "/mazes", CreateMazeRequest{Name: "corridor", Rows: corridor})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created MazeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "corridor", created.Name)
	assert.Equal(t, 2, created.Height)
	assert.Equal(t, 3, created.Width)
	require.NotNil(t, created.Start)
	require.NotNil(t, created.End)
	assert.Equal(t, maze.Position{Row: 0, Col: 0}, *created.Start)
	assert.Equal(t, maze.Position{Row: 1, Col: 2}, *created.End)

	rec = do(r, http.MethodGet, "/mazes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched MazeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, corridor, fetched.Rows)
}

func TestCreateRejectsMalformedGrid(t *testing.T) {
	r, _, _ := setup(t)

	rec := do(r, http.MethodPost, "/mazes", CreateMazeRequest{Rows: [][]string{{"start", "open"}, {"end"}}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/mazes", CreateMazeRequest{Rows: [][]string{{"start", "lava"}}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/mazes", map[string]string{"name": "no rows"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetErrors(t *testing.T) {
	r, _, _ := setup(t)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/mazes/not-a-uuid", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/mazes/"+uuid.NewString(), nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/mazes/"+uuid.NewString()+"/runs", nil).Code)
}

func TestList(t *testing.T) {
	r, catalog, _ := setup(t)
	for range 5 {
		_, err := catalog.Create(context.Background(), "m", corridor)
		require.NoError(t, err)
	}

	tests := []struct {
		query string
		code  int
		want  int
	}{
		{query: "", code: http.StatusOK, want: 3},
		{query: "?limit=5", code: http.StatusOK, want: 5},
		{query: "?limit=abc", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(r, http.MethodGet, "/mazes"+tt.query, nil)
			require.Equal(t, tt.code, rec.Code)
			if tt.code != http.StatusOK {
				return
			}
			var resp ListResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Len(t, resp.Data, tt.want)
		})
	}
}

func TestRuns(t *testing.T) {
	r, catalog, runs := setup(t)
	doc, err := catalog.Create(context.Background(), "m", corridor)
	require.NoError(t, err)

	require.NoError(t, runs.Record(context.Background(), i.RunRecord{
		SessionID:  uuid.New(),
		MazeID:     doc.ID,
		Outcome:    "goal_reached",
		Steps:      4,
		FinishedAt: time.Now().UTC(),
	}))

	rec := do(r, http.MethodGet, "/mazes/"+doc.ID.String()+"/runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RunsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "goal_reached", resp.Data[0].Outcome)
}
