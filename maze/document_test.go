package maze

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("data envelope of bare grids", func(t *testing.T) {
		body := `{"data": [
			[["start","open"],["wall","end"]],
			[["start","wall"],["open","open"]]
		]}`
		docs, err := Decode(strings.NewReader(body), FormatJSON)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, [][]string{{"start", "open"}, {"wall", "end"}}, docs[0].Rows)
		assert.NotEqual(t, uuid.Nil, docs[0].ID)
		assert.NotEqual(t, docs[0].ID, docs[1].ID)
	})

	t.Run("single named document", func(t *testing.T) {
		id := uuid.New()
		body := `{"id":"` + id.String() + `","name":"tiny","rows":[["start","end"]]}`
		docs, err := Decode(strings.NewReader(body), FormatJSON)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, id, docs[0].ID)
		assert.Equal(t, "tiny", docs[0].Name)
	})

	t.Run("yaml list of documents", func(t *testing.T) {
		body := `
- name: corridor
  rows:
    - [start, open, end]
- name: walled
  rows:
    - [start, wall, end]
`
		docs, err := Decode(strings.NewReader(body), FormatYAML)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "walled", docs[1].Name)

		g, err := docs[0].Grid()
		require.NoError(t, err)
		end, ok := g.End()
		assert.True(t, ok)
		assert.Equal(t, Position{Row: 0, Col: 2}, end)
	})

	t.Run("bare yaml grid", func(t *testing.T) {
		docs, err := Decode(strings.NewReader("- [start, end]\n- [open, wall]\n"), FormatYAML)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Len(t, docs[0].Rows, 2)
	})

	t.Run("rejects invalid grids", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`[["start","open"],["wall"]]`), FormatJSON)
		assert.ErrorIs(t, err, ErrMalformedGrid)

		_, err = Decode(strings.NewReader(`{"rows":[["start","lava"]]}`), FormatJSON)
		assert.ErrorIs(t, err, ErrMalformedGrid)
	})

	t.Run("rejects unexpected shapes", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`42`), FormatJSON)
		assert.ErrorIs(t, err, ErrUnsupportedDocument)

		_, err = Decode(strings.NewReader(`{"name":"no rows"}`), FormatJSON)
		assert.ErrorIs(t, err, ErrUnsupportedDocument)

		_, err = Decode(strings.NewReader(`[]`), Format("toml"))
		assert.ErrorIs(t, err, ErrUnsupportedDocument)
	})
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mazes.yml")
	require.NoError(t, os.WriteFile(path, []byte("rows:\n  - [start, open, end]\n"), 0o600))

	assert.Equal(t, FormatYAML, FormatFromPath(path))
	assert.Equal(t, FormatJSON, FormatFromPath("mazes.json"))

	docs, err := DecodeFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestNewDocument(t *testing.T) {
	g, err := Parse([][]string{{"start", "path", "end"}})
	require.NoError(t, err)

	doc := NewDocument("line", g)
	assert.Equal(t, "line", doc.Name)
	assert.Equal(t, [][]string{{"start", "open", "end"}}, doc.Rows)
	assert.False(t, doc.CreatedAt.IsZero())
}
