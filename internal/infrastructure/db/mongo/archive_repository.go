package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusops/api/internal/core/domain"
)

const collectionGenerations = "generation_records"

// ArchiveRepository implements ports.ArchiveRepository using MongoDB. It is
// written to by the background archive workers, not by request handlers.
type ArchiveRepository struct {
	coll *mongo.Collection
}

func NewArchiveRepository(db *mongo.Database) *ArchiveRepository {
	return &ArchiveRepository{coll: db.Collection(collectionGenerations)}
}

type generationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ClubID    string             `bson:"club_id"`
	Kind      string             `bson:"kind"`
	Input     string             `bson:"input"`
	Output    string             `bson:"output,omitempty"`
	Meta      map[string]any     `bson:"meta,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d generationDoc) toDomain() *domain.GenerationRecord {
	return &domain.GenerationRecord{
		ID:        d.ID.Hex(),
		ClubID:    d.ClubID,
		Kind:      d.Kind,
		Input:     d.Input,
		Output:    d.Output,
		Meta:      d.Meta,
		CreatedAt: d.CreatedAt,
	}
}

// Insert stores one generation record.
func (r *ArchiveRepository) Insert(ctx context.Context, rec *domain.GenerationRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := generationDoc{
		ClubID:    rec.ClubID,
		Kind:      rec.Kind,
		Input:     rec.Input,
		Output:    rec.Output,
		Meta:      rec.Meta,
		CreatedAt: rec.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert generation record: %w", err)
	}
	return nil
}

// List returns the club's generation records of one kind, newest first.
func (r *ArchiveRepository) List(ctx context.Context, clubID, kind string, limit int) ([]*domain.GenerationRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx,
		bson.M{"club_id": clubID, "kind": kind},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("list generation records: %w", err)
	}
	defer cur.Close(ctx)

	records := []*domain.GenerationRecord{}
	for cur.Next(ctx) {
		var doc generationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode generation record: %w", err)
		}
		records = append(records, doc.toDomain())
	}
	return records, cur.Err()
}
