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
)

const collectionMOUs = "mou_documents"

// MOURepository implements ports.MOURepository using MongoDB.
type MOURepository struct {
	coll *mongo.Collection
}

func NewMOURepository(db *mongo.Database) *MOURepository {
	return &MOURepository{coll: db.Collection(collectionMOUs)}
}

type mouDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ClubID        string             `bson:"club_id"`
	Party1Name    string             `bson:"party1_name"`
	Party1Address string             `bson:"party1_address"`
	Party2Name    string             `bson:"party2_name"`
	Party2Address string             `bson:"party2_address"`
	Purpose       string             `bson:"purpose"`
	EventName     string             `bson:"event_name,omitempty"`
	Duration      string             `bson:"duration"`
	Terms         string             `bson:"terms,omitempty"`
	Content       string             `bson:"content"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (d mouDoc) toDomain() *domain.MOU {
	return &domain.MOU{
		ID:            d.ID.Hex(),
		ClubID:        d.ClubID,
		Party1Name:    d.Party1Name,
		Party1Address: d.Party1Address,
		Party2Name:    d.Party2Name,
		Party2Address: d.Party2Address,
		Purpose:       d.Purpose,
		EventName:     d.EventName,
		Duration:      d.Duration,
		Terms:         d.Terms,
		Content:       d.Content,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
	}
}

// Insert stores a memorandum and returns its hex identifier.
func (r *MOURepository) Insert(ctx context.Context, mou *domain.MOU) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mouDoc{
		ClubID:        mou.ClubID,
		Party1Name:    mou.Party1Name,
		Party1Address: mou.Party1Address,
		Party2Name:    mou.Party2Name,
		Party2Address: mou.Party2Address,
		Purpose:       mou.Purpose,
		EventName:     mou.EventName,
		Duration:      mou.Duration,
		Terms:         mou.Terms,
		Content:       mou.Content,
		Status:        mou.Status,
		CreatedAt:     mou.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert mou: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert mou: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindByID returns one memorandum owned by the club.
func (r *MOURepository) FindByID(ctx context.Context, clubID, id string) (*domain.MOU, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDocumentNotFound
	}

	var doc mouDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid, "club_id": clubID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find mou: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns the club's memoranda, newest first.
func (r *MOURepository) List(ctx context.Context, clubID string, limit int) ([]*domain.MOU, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx,
		bson.M{"club_id": clubID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("list mous: %w", err)
	}
	defer cur.Close(ctx)

	mous := []*domain.MOU{}
	for cur.Next(ctx) {
		var doc mouDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode mou: %w", err)
		}
		mous = append(mous, doc.toDomain())
	}
	return mous, cur.Err()
}
