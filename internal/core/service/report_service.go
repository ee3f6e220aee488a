package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
)

const reportSystemPrompt = `You are an expert event planner and report generator.
Generate comprehensive, professional event documentation.`

// reportJSONPrompts maps a document type to its structured-output prompt.
var reportJSONPrompts = map[string]string{
	ports.DocTypeEventPlan: `Create a detailed event plan for: %s

Respond with a JSON object of this shape:
{
  "title": "Event title",
  "overview": "Brief overview",
  "objectives": ["objective 1", "objective 2", "objective 3"],
  "timeline": [
    {"phase": "Planning", "duration": "2 weeks", "tasks": ["task1", "task2"]},
    {"phase": "Execution", "duration": "1 day", "tasks": ["task1", "task2"]},
    {"phase": "Follow-up", "duration": "1 week", "tasks": ["task1", "task2"]}
  ],
  "resources": {"venue": "venue details", "equipment": ["item1"], "staff": ["role1"]},
  "budget_estimate": {"venue": 5000, "catering": 3000, "marketing": 1000, "equipment": 2000, "miscellaneous": 1000, "total": 12000},
  "risk_mitigation": ["risk 1 and solution", "risk 2 and solution"]
}`,

	ports.DocTypeSummary: `Create an event summary for: %s

Respond with a JSON object of this shape:
{
  "event_name": "Name",
  "date": "Date/Time",
  "attendance": "Number of attendees",
  "highlights": ["highlight 1", "highlight 2", "highlight 3"],
  "achievements": ["achievement 1", "achievement 2"],
  "key_takeaways": ["takeaway 1", "takeaway 2"],
  "feedback_summary": "Overall feedback",
  "next_steps": ["action 1", "action 2"]
}`,

	ports.DocTypeReport: `Create a detailed event report for: %s

Respond with a JSON object of this shape:
{
  "executive_summary": "Brief overview",
  "event_details": {"name": "Event name", "date": "Date", "location": "Location", "attendance": "Number"},
  "activities": ["activity 1", "activity 2", "activity 3"],
  "outcomes": {"attendance_rate": "85%%", "satisfaction_score": "4.5/5", "key_achievements": ["achievement 1"]},
  "financial_summary": {"budget": 10000, "spent": 9500, "savings": 500},
  "feedback_analysis": {"positive": ["comment 1"], "improvements": ["suggestion 1"]},
  "recommendations": ["recommendation 1", "recommendation 2"],
  "conclusion": "Final thoughts"
}`,
}

const reportDocumentPrompt = `Write a complete, professional %s document for the
following event, formatted as plain text with numbered section headings:

%s

Cover objectives, timeline, resources, budget, and risks where applicable.
Do not include any markdown syntax; use section headings and plain paragraphs.`

// ReportService generates event plans, summaries, and reports.
type ReportService struct {
	gen      ports.TextGenerator
	renderer ports.DocumentRenderer
	records  ports.ArchiveRepository
	archive  Archiver
	log      zerolog.Logger
}

func NewReportService(
	gen ports.TextGenerator,
	renderer ports.DocumentRenderer,
	records ports.ArchiveRepository,
	archive Archiver,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{gen: gen, renderer: renderer, records: records, archive: archive, log: log}
}

// Generate performs exactly one generation round-trip and returns either
// structured JSON or a rendered DOCX depending on the requested format.
func (s *ReportService) Generate(ctx context.Context, in ports.ReportInput) (*ports.ReportResult, error) {
	if s.gen == nil {
		return nil, domain.ErrGeneratorUnavailable
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, &validationError{"event_description is required"}
	}

	docType := in.DocumentType
	if _, ok := reportJSONPrompts[docType]; !ok {
		docType = ports.DocTypeEventPlan
	}

	opts := ports.GenerateOptions{Temperature: 0.7, MaxTokens: 2000}

	if in.Format == ports.FormatDOCX {
		prompt := fmt.Sprintf(reportDocumentPrompt, docTypeTitle(docType), in.Description)
		content, err := s.gen.GenerateText(ctx, reportSystemPrompt, prompt, opts)
		if err != nil {
			return nil, err
		}

		document, err := s.renderer.RenderReport(docTypeTitle(docType), content)
		if err != nil {
			return nil, err
		}

		filename := fmt.Sprintf("%s_%s.docx", docType, time.Now().UTC().Format("20060102_150405"))
		s.enqueueRecord(in, docType, content)
		return &ports.ReportResult{Filename: filename, Document: document}, nil
	}

	prompt := fmt.Sprintf(reportJSONPrompts[docType], in.Description)
	data, err := s.gen.GenerateJSON(ctx, reportSystemPrompt, prompt, opts)
	if err != nil {
		return nil, err
	}

	s.enqueueRecord(in, docType, string(data))
	return &ports.ReportResult{Data: data}, nil
}

// History returns the club's recent report generations, newest first.
func (s *ReportService) History(ctx context.Context, clubID string, limit int) ([]*domain.GenerationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.records.List(ctx, clubID, domain.GenerationEventReport, limit)
}

func (s *ReportService) enqueueRecord(in ports.ReportInput, docType, output string) {
	if s.archive == nil {
		return
	}
	s.archive.Enqueue(&domain.GenerationRecord{
		ClubID: in.ClubID,
		Kind:   domain.GenerationEventReport,
		Input:  in.Description,
		Output: output,
		Meta: map[string]any{
			"document_type":   docType,
			"format":          in.Format,
			"images_uploaded": in.ImageCount,
		},
		CreatedAt: time.Now().UTC(),
	})
}

func docTypeTitle(docType string) string {
	switch docType {
	case ports.DocTypeSummary:
		return "Event Summary"
	case ports.DocTypeReport:
		return "Event Report"
	default:
		return "Event Plan"
	}
}

// validationError is a request-level input problem surfaced as a 400.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

// IsValidationError reports whether err is a service input validation failure.
func IsValidationError(err error) bool {
	_, ok := err.(*validationError)
	return ok
}
