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

const collectionClubs = "clubs"

// ClubRepository implements ports.ClubRepository using MongoDB.
type ClubRepository struct {
	coll *mongo.Collection
}

func NewClubRepository(db *mongo.Database) *ClubRepository {
	return &ClubRepository{coll: db.Collection(collectionClubs)}
}

type clubDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ClubID       string             `bson:"club_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Description  string             `bson:"description,omitempty"`
	Color        string             `bson:"color,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d clubDoc) toDomain() *domain.Club {
	return &domain.Club{
		ID:           d.ID.Hex(),
		ClubID:       d.ClubID,
		Name:         d.Name,
		Email:        d.Email,
		Description:  d.Description,
		Color:        d.Color,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

// FindByEmail returns the club registered under the given login email.
func (r *ClubRepository) FindByEmail(ctx context.Context, email string) (*domain.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc clubDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClubNotFound
		}
		return nil, fmt.Errorf("find club by email: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByClubID returns the club with the given short identifier.
func (r *ClubRepository) FindByClubID(ctx context.Context, clubID string) (*domain.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc clubDoc
	if err := r.coll.FindOne(ctx, bson.M{"club_id": clubID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClubNotFound
		}
		return nil, fmt.Errorf("find club by id: %w", err)
	}
	return doc.toDomain(), nil
}

// Create inserts a new club account.
func (r *ClubRepository) Create(ctx context.Context, club *domain.Club) (*domain.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := clubDoc{
		ClubID:       club.ClubID,
		Name:         club.Name,
		Email:        club.Email,
		Description:  club.Description,
		Color:        club.Color,
		PasswordHash: club.PasswordHash,
		CreatedAt:    club.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrClubExists
		}
		return nil, fmt.Errorf("insert club: %w", err)
	}

	created := *club
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// List returns all registered clubs ordered by name.
func (r *ClubRepository) List(ctx context.Context) ([]*domain.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	defer cur.Close(ctx)

	var clubs []*domain.Club
	for cur.Next(ctx) {
		var doc clubDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode club: %w", err)
		}
		clubs = append(clubs, doc.toDomain())
	}
	return clubs, cur.Err()
}

// EnsureIndexes creates the unique indexes backing club identity.
func (r *ClubRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "club_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
