package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
)

// maxAnalyzedRows caps how many feedback rows are sent to the model.
const maxAnalyzedRows = 50

const feedbackSystemPrompt = `You are an expert at analyzing feedback and extracting insights.
Provide sentiment analysis, key themes, and actionable recommendations.`

const feedbackPromptTemplate = `Analyze this feedback data and provide insights:

%s

Respond with a JSON object of this shape:
{
  "overall_sentiment": "positive/neutral/negative",
  "satisfaction_score": 4.2,
  "total_responses": 50,
  "sentiment_distribution": {"positive": 35, "neutral": 10, "negative": 5},
  "top_praises": ["praise 1", "praise 2", "praise 3"],
  "top_issues": ["issue 1", "issue 2", "issue 3"],
  "key_themes": ["theme 1", "theme 2", "theme 3"],
  "recommendations": ["recommendation 1", "recommendation 2", "recommendation 3"],
  "summary": "Overall analysis summary"
}`

// feedbackColumns are the header names recognized as the feedback column, in
// preference order. Matching is case-insensitive; without a match the first
// column is used.
var feedbackColumns = []string{"feedback", "comment", "comments", "response", "responses"}

// FeedbackService analyzes a CSV of free-text feedback in one model call.
type FeedbackService struct {
	gen     ports.TextGenerator
	cache   Cache
	archive Archiver
	log     zerolog.Logger
}

func NewFeedbackService(gen ports.TextGenerator, cache Cache, archive Archiver, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{gen: gen, cache: cache, archive: archive, log: log}
}

// Analyze extracts the feedback column from the CSV, sends up to
// maxAnalyzedRows entries to the model, and returns the structured analysis.
// Identical uploads within the cache TTL reuse the stored result.
func (s *FeedbackService) Analyze(ctx context.Context, clubID, filename string, csvData io.Reader) (*ports.FeedbackResult, error) {
	if s.gen == nil {
		return nil, domain.ErrGeneratorUnavailable
	}

	items, err := extractFeedback(csvData)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNoFeedback
	}

	analyzed := items
	if len(analyzed) > maxAnalyzedRows {
		analyzed = analyzed[:maxAnalyzedRows]
	}
	combined := strings.Join(analyzed, "\n")

	key := cacheKey("feedback", combined)
	if cached, ok := s.cacheGet(ctx, key); ok {
		var analysis domain.FeedbackAnalysis
		if err := json.Unmarshal([]byte(cached), &analysis); err == nil {
			return &ports.FeedbackResult{Analysis: &analysis, TotalFeedback: len(items), Analyzed: len(analyzed)}, nil
		}
	}

	raw, err := s.gen.GenerateJSON(ctx, feedbackSystemPrompt,
		fmt.Sprintf(feedbackPromptTemplate, combined),
		ports.GenerateOptions{Temperature: 0.5, MaxTokens: 2000})
	if err != nil {
		return nil, err
	}

	var analysis domain.FeedbackAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, fmt.Errorf("feedback analysis: malformed model output: %w", err)
	}
	if analysis.TotalResponses == 0 {
		analysis.TotalResponses = len(analyzed)
	}

	s.cacheSet(ctx, key, string(raw))

	if s.archive != nil {
		s.archive.Enqueue(&domain.GenerationRecord{
			ClubID: clubID,
			Kind:   domain.GenerationFeedbackAnalysis,
			Input:  filename,
			Output: string(raw),
			Meta: map[string]any{
				"total_feedback": len(items),
				"analyzed":       len(analyzed),
			},
			CreatedAt: time.Now().UTC(),
		})
	}

	return &ports.FeedbackResult{Analysis: &analysis, TotalFeedback: len(items), Analyzed: len(analyzed)}, nil
}

func (s *FeedbackService) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	v, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("feedback cache lookup failed, analyzing anyway")
		return "", false
	}
	return v, ok
}

func (s *FeedbackService) cacheSet(ctx context.Context, key, value string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, resultCacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("failed to store feedback analysis in cache")
	}
}

// extractFeedback reads the CSV and returns the non-empty values of the
// feedback column.
func extractFeedback(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	col := feedbackColumn(header)

	var items []string
	// Header row had no recognized column name; treat it as data.
	if col == 0 && !headerLooksNamed(header) {
		if v := strings.TrimSpace(header[0]); v != "" {
			items = append(items, v)
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		if col >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[col]); v != "" {
			items = append(items, v)
		}
	}
	return items, nil
}

func feedbackColumn(header []string) int {
	for _, want := range feedbackColumns {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				return i
			}
		}
	}
	return 0
}

// headerLooksNamed reports whether the first row looks like column names
// rather than a first data row (single short token, no spaces).
func headerLooksNamed(header []string) bool {
	if len(header) == 0 {
		return false
	}
	first := strings.TrimSpace(header[0])
	return len(header) > 1 || (first != "" && !strings.Contains(first, " ") && len(first) <= 32)
}
