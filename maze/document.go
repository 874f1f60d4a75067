package maze

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Format names a maze file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnsupportedDocument = errors.New("unsupported maze document")

// Document is the stored and transported form of a maze.
type Document struct {
	ID        uuid.UUID  `json:"id" bson:"_id" yaml:"id"`
	Name      string     `json:"name" bson:"name" yaml:"name"`
	Rows      [][]string `json:"rows" bson:"rows" yaml:"rows"`
	CreatedAt time.Time  `json:"created_at" bson:"createdAt" yaml:"created_at"`
}

// Grid validates the document's rows and builds a Grid from them.
func (d *Document) Grid() (*Grid, error) {
	return Parse(d.Rows)
}

// NewDocument builds a Document from a grid, assigning a fresh ID.
func NewDocument(name string, g *Grid) *Document {
	return &Document{
		ID:        uuid.New(),
		Name:      name,
		Rows:      g.Names(),
		CreatedAt: time.Now().UTC(),
	}
}

// FormatFromPath guesses the encoding of a maze file from its extension.
// Anything that is not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeFile reads every maze document stored in the file at path.
func DecodeFile(path string) ([]*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, FormatFromPath(path))
}

// Decode reads maze documents from r. It accepts a single document
// ({"rows": [...]}) or a bare grid ([["start","open"], ...]), a list of either,
// or a {"data": [...]} envelope around such a list.
func Decode(r io.Reader, format Format) ([]*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var root any
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(raw, &root)
	case FormatJSON:
		err = json.Unmarshal(raw, &root)
	default:
		return nil, fmt.Errorf("%w: format %q", ErrUnsupportedDocument, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s maze document: %w", format, err)
	}

	if envelope, ok := root.(map[string]any); ok {
		if data, ok := envelope["data"]; ok {
			root = data
		}
	}

	var docs []*Document
	switch v := root.(type) {
	case map[string]any:
		doc, err := documentFromMap(v)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	case []any:
		if isGrid(v) {
			rows, err := toRows(v)
			if err != nil {
				return nil, err
			}
			docs = append(docs, &Document{Rows: rows})
			break
		}
		for i, item := range v {
			doc, err := documentFromValue(item)
			if err != nil {
				return nil, fmt.Errorf("maze %d: %w", i, err)
			}
			docs = append(docs, doc)
		}
	default:
		return nil, fmt.Errorf("%w: unexpected top-level %T", ErrUnsupportedDocument, root)
	}

	for _, doc := range docs {
		if doc.ID == uuid.Nil {
			doc.ID = uuid.New()
		}
		if _, err := doc.Grid(); err != nil {
			return nil, fmt.Errorf("maze %q: %w", doc.Name, err)
		}
	}
	return docs, nil
}

func documentFromValue(v any) (*Document, error) {
	switch item := v.(type) {
	case map[string]any:
		return documentFromMap(item)
	case []any:
		rows, err := toRows(item)
		if err != nil {
			return nil, err
		}
		return &Document{Rows: rows}, nil
	}
	return nil, fmt.Errorf("%w: unexpected maze value %T", ErrUnsupportedDocument, v)
}

func documentFromMap(m map[string]any) (*Document, error) {
	rawRows, ok := m["rows"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing rows", ErrUnsupportedDocument)
	}
	rows, err := toRows(rawRows)
	if err != nil {
		return nil, err
	}

	doc := &Document{Rows: rows}
	if name, ok := m["name"].(string); ok {
		doc.Name = name
	}
	if id, ok := m["id"].(string); ok && id != "" {
		doc.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid id %q", ErrUnsupportedDocument, id)
		}
	}
	return doc, nil
}

// isGrid reports whether v looks like rows of cell names rather than a list
// of mazes.
func isGrid(v []any) bool {
	if len(v) == 0 {
		return false
	}
	row, ok := v[0].([]any)
	if !ok || len(row) == 0 {
		return false
	}
	_, ok = row[0].(string)
	return ok
}

func toRows(v []any) ([][]string, error) {
	rows := make([][]string, len(v))
	for r, rawRow := range v {
		row, ok := rawRow.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: row %d is %T", ErrUnsupportedDocument, r, rawRow)
		}
		rows[r] = make([]string, len(row))
		for c, cell := range row {
			name, ok := cell.(string)
			if !ok {
				return nil, fmt.Errorf("%w: cell (%d,%d) is %T", ErrUnsupportedDocument, r, c, cell)
			}
			rows[r][c] = name
		}
	}
	return rows, nil
}
