package ports

import (
	"context"
	"encoding/json"
	"io"

	"github.com/campusops/api/internal/core/domain"
)

// --- Event report generation ---

// Event report document types and output formats.
const (
	DocTypeEventPlan = "event_plan"
	DocTypeSummary   = "summary"
	DocTypeReport    = "report"

	FormatJSON = "json"
	FormatDOCX = "docx"
)

// ReportInput describes a single report generation request.
type ReportInput struct {
	ClubID       string
	Description  string
	DocumentType string
	Format       string
	// ImageCount is recorded in the generation metadata; images themselves are
	// not fed into the text model.
	ImageCount int
}

// ReportResult carries either structured data (json format) or a rendered
// document (docx format), never both.
type ReportResult struct {
	Data     json.RawMessage
	Filename string
	Document []byte
}

// ReportService generates event plans, summaries, and reports.
type ReportService interface {
	Generate(ctx context.Context, in ReportInput) (*ReportResult, error)
	History(ctx context.Context, clubID string, limit int) ([]*domain.GenerationRecord, error)
}

// --- Feedback analysis ---

// FeedbackResult pairs the analysis with ingestion counters.
type FeedbackResult struct {
	Analysis      *domain.FeedbackAnalysis
	TotalFeedback int
	Analyzed      int
}

// FeedbackService analyzes a CSV of free-text feedback.
type FeedbackService interface {
	Analyze(ctx context.Context, clubID, filename string, csvData io.Reader) (*FeedbackResult, error)
}

// --- Budget suggestions ---

// BudgetSuggestInput describes the event to budget for.
type BudgetSuggestInput struct {
	ClubID       string
	EventType    string
	Attendees    int
	Duration     float64
	VenueType    string
	Requirements []string
}

// BudgetService produces and stores AI budget recommendations.
type BudgetService interface {
	Suggest(ctx context.Context, in BudgetSuggestInput) (*domain.BudgetSuggestion, error)
	History(ctx context.Context, clubID string, limit int) ([]*domain.BudgetSuggestion, error)
}

// --- MOU generation ---

// MOUInput describes the agreement to draft.
type MOUInput struct {
	ClubID        string
	Party1Name    string
	Party1Address string
	Party2Name    string
	Party2Address string
	Purpose       string
	EventName     string
	Duration      string
	Terms         string
}

// MOUResult is the stored memorandum plus presentation extras.
type MOUResult struct {
	MOU         *domain.MOU
	ContentHTML string
	Filename    string
}

// MOUService drafts, stores, and renders memoranda of understanding.
type MOUService interface {
	Generate(ctx context.Context, in MOUInput) (*MOUResult, error)
	Get(ctx context.Context, clubID, id string) (*domain.MOU, error)
	History(ctx context.Context, clubID string, limit int) ([]*domain.MOU, error)
	// Download rebuilds the DOCX rendition of a stored memorandum.
	Download(ctx context.Context, clubID, id string) (filename string, document []byte, err error)
}

// --- Image services ---

// ImageInput is one uploaded image.
type ImageInput struct {
	Name string
	Data []byte
}

// ImageResult is the per-image outcome. Err is set instead of the payload
// fields when that image failed; one bad image never fails the batch.
type ImageResult struct {
	Image   string `json:"image"`
	Caption string `json:"caption,omitempty"`
	Text    string `json:"text,omitempty"`
	HasText bool   `json:"has_text,omitempty"`
	Model   string `json:"model,omitempty"`
	Err     string `json:"error,omitempty"`
}

// ImageService captions images and extracts visible text.
type ImageService interface {
	Caption(ctx context.Context, images []ImageInput, imageContext string) ([]ImageResult, error)
	ExtractText(ctx context.Context, images []ImageInput) ([]ImageResult, error)
}

// --- Repositories for generated artifacts ---

// MOURepository persists memoranda.
type MOURepository interface {
	Insert(ctx context.Context, mou *domain.MOU) (string, error)
	FindByID(ctx context.Context, clubID, id string) (*domain.MOU, error)
	List(ctx context.Context, clubID string, limit int) ([]*domain.MOU, error)
}

// SuggestionRepository persists budget suggestions.
type SuggestionRepository interface {
	Insert(ctx context.Context, s *domain.BudgetSuggestion) (string, error)
	List(ctx context.Context, clubID string, limit int) ([]*domain.BudgetSuggestion, error)
}

// ArchiveRepository persists generation audit records. Insert is called from
// background workers, not request handlers.
type ArchiveRepository interface {
	Insert(ctx context.Context, rec *domain.GenerationRecord) error
	List(ctx context.Context, clubID, kind string, limit int) ([]*domain.GenerationRecord, error)
}
