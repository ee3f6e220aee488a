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

const collectionSuggestions = "budget_suggestions"

// SuggestionRepository implements ports.SuggestionRepository using MongoDB.
type SuggestionRepository struct {
	coll *mongo.Collection
}

func NewSuggestionRepository(db *mongo.Database) *SuggestionRepository {
	return &SuggestionRepository{coll: db.Collection(collectionSuggestions)}
}

type suggestionDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ClubID       string             `bson:"club_id"`
	EventType    string             `bson:"event_type"`
	Attendees    int                `bson:"attendees"`
	Duration     float64            `bson:"duration"`
	VenueType    string             `bson:"venue_type"`
	Requirements []string           `bson:"requirements,omitempty"`
	Suggestion   string             `bson:"suggestion"`
	TotalBudget  float64            `bson:"total_budget"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d suggestionDoc) toDomain() *domain.BudgetSuggestion {
	return &domain.BudgetSuggestion{
		ID:           d.ID.Hex(),
		ClubID:       d.ClubID,
		EventType:    d.EventType,
		Attendees:    d.Attendees,
		Duration:     d.Duration,
		VenueType:    d.VenueType,
		Requirements: d.Requirements,
		Suggestion:   d.Suggestion,
		TotalBudget:  d.TotalBudget,
		CreatedAt:    d.CreatedAt,
	}
}

// Insert stores a suggestion and returns its hex identifier.
func (r *SuggestionRepository) Insert(ctx context.Context, s *domain.BudgetSuggestion) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := suggestionDoc{
		ClubID:       s.ClubID,
		EventType:    s.EventType,
		Attendees:    s.Attendees,
		Duration:     s.Duration,
		VenueType:    s.VenueType,
		Requirements: s.Requirements,
		Suggestion:   s.Suggestion,
		TotalBudget:  s.TotalBudget,
		CreatedAt:    s.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert suggestion: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert suggestion: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// List returns the club's suggestions, newest first.
func (r *SuggestionRepository) List(ctx context.Context, clubID string, limit int) ([]*domain.BudgetSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx,
		bson.M{"club_id": clubID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	defer cur.Close(ctx)

	suggestions := []*domain.BudgetSuggestion{}
	for cur.Next(ctx) {
		var doc suggestionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode suggestion: %w", err)
		}
		suggestions = append(suggestions, doc.toDomain())
	}
	return suggestions, cur.Err()
}
