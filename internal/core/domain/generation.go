package domain

import (
	"errors"
	"time"
)

var ErrGeneratorUnavailable = errors.New("generation service is not available")
var ErrDocumentNotFound = errors.New("document not found")
var ErrNoFeedback = errors.New("no feedback data found in CSV")

// FeedbackAnalysis is the canonical shape returned by the feedback analyzer.
// The generator is instructed to produce exactly this structure.
type FeedbackAnalysis struct {
	OverallSentiment      string         `json:"overall_sentiment" bson:"overall_sentiment"`
	SatisfactionScore     float64        `json:"satisfaction_score" bson:"satisfaction_score"`
	TotalResponses        int            `json:"total_responses" bson:"total_responses"`
	SentimentDistribution map[string]int `json:"sentiment_distribution" bson:"sentiment_distribution"`
	TopPraises            []string       `json:"top_praises" bson:"top_praises"`
	TopIssues             []string       `json:"top_issues" bson:"top_issues"`
	KeyThemes             []string       `json:"key_themes" bson:"key_themes"`
	Recommendations       []string       `json:"recommendations" bson:"recommendations"`
	Summary               string         `json:"summary" bson:"summary"`
}

// BudgetSuggestion is a stored budget recommendation.
type BudgetSuggestion struct {
	ID           string    `json:"_id" bson:"_id,omitempty"`
	ClubID       string    `json:"-" bson:"club_id"`
	EventType    string    `json:"event_type" bson:"event_type"`
	Attendees    int       `json:"attendees" bson:"attendees"`
	Duration     float64   `json:"duration" bson:"duration"`
	VenueType    string    `json:"venue_type" bson:"venue_type"`
	Requirements []string  `json:"requirements" bson:"requirements"`
	Suggestion   string    `json:"suggestion" bson:"suggestion"`
	TotalBudget  float64   `json:"total_budget" bson:"total_budget"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// MOUStatusDraft marks a freshly generated memorandum.
const MOUStatusDraft = "draft"

// MOU is a generated memorandum of understanding. Content is kept as the
// generated markdown; the DOCX rendition is rebuilt on each download.
type MOU struct {
	ID            string    `json:"_id" bson:"_id,omitempty"`
	ClubID        string    `json:"-" bson:"club_id"`
	Party1Name    string    `json:"party1_name" bson:"party1_name"`
	Party1Address string    `json:"party1_address" bson:"party1_address"`
	Party2Name    string    `json:"party2_name" bson:"party2_name"`
	Party2Address string    `json:"party2_address" bson:"party2_address"`
	Purpose       string    `json:"purpose" bson:"purpose"`
	EventName     string    `json:"event_name,omitempty" bson:"event_name,omitempty"`
	Duration      string    `json:"duration" bson:"duration"`
	Terms         string    `json:"terms,omitempty" bson:"terms,omitempty"`
	Content       string    `json:"content,omitempty" bson:"content"`
	Status        string    `json:"status" bson:"status"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// Generation record kinds archived by the background dispatcher.
const (
	GenerationEventReport      = "event_report"
	GenerationFeedbackAnalysis = "feedback_analysis"
)

// GenerationRecord is the audit entry written after an AI round-trip. Archival
// happens off the request path; the record must therefore be self-contained.
type GenerationRecord struct {
	ID        string         `json:"_id" bson:"_id,omitempty"`
	ClubID    string         `json:"-" bson:"club_id"`
	Kind      string         `json:"kind" bson:"kind"`
	Input     string         `json:"input" bson:"input"`
	Output    string         `json:"output,omitempty" bson:"output,omitempty"`
	Meta      map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}
