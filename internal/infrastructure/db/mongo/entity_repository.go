package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/schema"
)

const collectionBudget = "budget"

// EntityRepository implements ports.EntityRepository over per-tab MongoDB
// collections. Collection names always come from the schema registry; every
// filter includes the club_id so clubs can never read each other's records.
type EntityRepository struct {
	db *mongo.Database
}

func NewEntityRepository(db *mongo.Database) *EntityRepository {
	return &EntityRepository{db: db}
}

// List returns all of the club's records in the collection, sorted per the
// tab schema.
func (r *EntityRepository) List(ctx context.Context, collection, clubID, sortField string, sortDesc bool) ([]domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	order := 1
	if sortDesc {
		order = -1
	}

	cur, err := r.db.Collection(collection).Find(ctx,
		bson.M{"club_id": clubID},
		options.Find().SetSort(bson.D{{Key: sortField, Value: order}}))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	records := []domain.Record{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", collection, err)
		}
		records = append(records, toRecord(doc))
	}
	return records, cur.Err()
}

// Insert stores a new record and returns its hex identifier.
func (r *EntityRepository) Insert(ctx context.Context, collection string, doc domain.Record) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", insertErr(collection, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert into %s: unexpected id type %T", collection, res.InsertedID)
	}
	return oid.Hex(), nil
}

// Get returns one record owned by the club.
func (r *EntityRepository) Get(ctx context.Context, collection, clubID, id string) (domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(clubID, id)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	if err := r.db.Collection(collection).FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("get from %s: %w", collection, err)
	}
	return toRecord(doc), nil
}

// Update applies a partial $set and returns the updated record.
func (r *EntityRepository) Update(ctx context.Context, collection, clubID, id string, fields map[string]any) (domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(clubID, id)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	err = r.db.Collection(collection).FindOneAndUpdate(ctx,
		filter,
		bson.M{"$set": bson.M(fields)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("update %s: %w", collection, err)
	}
	return toRecord(doc), nil
}

// Delete removes one record owned by the club.
func (r *EntityRepository) Delete(ctx context.Context, collection, clubID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(clubID, id)
	if err != nil {
		return err
	}

	res, err := r.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", collection, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

// Count returns how many records the club owns in the collection.
func (r *EntityRepository) Count(ctx context.Context, collection, clubID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.db.Collection(collection).CountDocuments(ctx, bson.M{"club_id": clubID})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

// ExistsByField reports whether a record with field == value exists for the club.
func (r *EntityRepository) ExistsByField(ctx context.Context, collection, clubID, field string, value any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.db.Collection(collection).FindOne(ctx,
		bson.M{"club_id": clubID, field: value},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists check on %s: %w", collection, err)
	}
	return true, nil
}

// BudgetTotals sums budget amounts grouped by the income/expense type.
func (r *EntityRepository) BudgetTotals(ctx context.Context, clubID string) (income, expense float64, err error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"club_id": clubID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$type",
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cur, err := r.db.Collection(collectionBudget).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("budget totals: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			Type  string  `bson:"_id"`
			Total float64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, 0, fmt.Errorf("decode budget total: %w", err)
		}
		switch row.Type {
		case "income":
			income = row.Total
		case "expense":
			expense = row.Total
		}
	}
	return income, expense, cur.Err()
}

// EnsureIndexes creates the per-tab indexes the manager relies on.
func (r *EntityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, tab := range schema.Tabs() {
		sc, ok := schema.Lookup(tab)
		if !ok {
			continue
		}
		models := []mongo.IndexModel{
			{Keys: bson.D{{Key: "club_id", Value: 1}}},
		}
		if sc.UniqueField != "" {
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: sc.UniqueField, Value: 1}},
				Options: options.Index().SetUnique(true),
			})
		}
		if _, err := r.db.Collection(sc.Collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", sc.Collection, err)
		}
	}
	return nil
}

// insertErr maps a unique-index violation to the domain conflict error. The
// service checks uniqueness before inserting, but two concurrent creates can
// both pass that check; the index is the backstop.
func insertErr(collection string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateEmail
	}
	return fmt.Errorf("insert into %s: %w", collection, err)
}

// ownedFilter builds the {_id, club_id} filter. An unparseable id behaves
// like a missing record.
func ownedFilter(clubID, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEntityNotFound
	}
	return bson.M{"_id": oid, "club_id": clubID}, nil
}

// toRecord converts a raw document into the API-facing record shape: the
// ObjectID becomes its hex string and the club_id is stripped.
func toRecord(doc bson.M) domain.Record {
	rec := domain.Record{}
	for k, v := range doc {
		switch k {
		case "_id":
			if oid, ok := v.(primitive.ObjectID); ok {
				rec["_id"] = oid.Hex()
			} else {
				rec["_id"] = v
			}
		case "club_id":
			// internal scoping field
		default:
			rec[k] = normalizeValue(v)
		}
	}
	return rec
}

// normalizeValue rewrites driver-specific types into plain JSON-friendly ones.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case primitive.M:
		out := map[string]any{}
		for k, e := range t {
			out[k] = normalizeValue(e)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	default:
		return v
	}
}
