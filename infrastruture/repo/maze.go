package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MazeRepo stores maze documents in MongoDB.
type MazeRepo struct {
	collection *mongo.Collection
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	return &MazeRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Save inserts or replaces a maze document.
func (m *MazeRepo) Save(ctx context.Context, doc *maze.Document) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := m.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("saving maze %s: %w", doc.ID, err)
	}
	return nil
}

// ByID returns the maze with the given ID or i.ErrMazeNotFound.
func (m *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*maze.Document, error) {
	var doc maze.Document
	if err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrMazeNotFound
		}
		return nil, fmt.Errorf("loading maze %s: %w", id, err)
	}
	return &doc, nil
}

// List returns up to limit mazes, oldest first.
func (m *MazeRepo) List(ctx context.Context, limit int) ([]*maze.Document, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing mazes: %w", err)
	}
	defer cursor.Close(ctx)

	docs := make([]*maze.Document, 0, limit)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding mazes: %w", err)
	}
	return docs, nil
}
