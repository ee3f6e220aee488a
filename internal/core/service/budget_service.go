package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
)

const budgetSystemPrompt = `You are a financial advisor for a college club.
Produce realistic, well-structured budget recommendations.`

const budgetPromptTemplate = `Suggest a detailed budget breakdown for the following event:

Event Type: %s
Expected Attendees: %d
Duration: %s hours
Venue Type: %s
Additional Requirements: %s

Provide a realistic budget breakdown with the following categories:
1. Venue and Infrastructure
2. Food and Refreshments
3. Marketing and Promotion
4. Guest/Speaker Honorarium (if applicable)
5. Decorations and Setup
6. Equipment and Technology
7. Miscellaneous and Contingency

For each category:
- Provide estimated cost in USD
- Brief justification for the amount
- Tips for cost optimization

At the end, provide:
- Total estimated budget
- Suggested income sources (sponsorships, registration fees, etc.)
- Risk mitigation strategies

Format the response in a structured, easy-to-read manner.`

// totalBudgetPatterns extract the grand total from the generated text, e.g.
// "Total Budget: $1,500" or "Grand Total: 2000".
var totalBudgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Total(?:\s+Estimated)?\s+Budget(?:\s+is)?:?\s*\$?([\d,]+)`),
	regexp.MustCompile(`(?i)Grand\s+Total:?\s*\$?([\d,]+)`),
	regexp.MustCompile(`(?i)Total:?\s*\$?([\d,]+)`),
}

// BudgetService produces AI budget recommendations and keeps their history.
type BudgetService struct {
	gen   ports.TextGenerator
	repo  ports.SuggestionRepository
	cache Cache
	log   zerolog.Logger
}

func NewBudgetService(gen ports.TextGenerator, repo ports.SuggestionRepository, cache Cache, log zerolog.Logger) *BudgetService {
	return &BudgetService{gen: gen, repo: repo, cache: cache, log: log}
}

// Suggest generates a budget recommendation, stores it, and returns the
// stored record. Identical inputs within the cache TTL skip the model call
// but still produce a fresh history entry.
func (s *BudgetService) Suggest(ctx context.Context, in ports.BudgetSuggestInput) (*domain.BudgetSuggestion, error) {
	if s.gen == nil {
		return nil, domain.ErrGeneratorUnavailable
	}
	if strings.TrimSpace(in.EventType) == "" {
		return nil, &validationError{"event_type is required"}
	}
	if in.Attendees <= 0 {
		return nil, &validationError{"attendees must be a positive number"}
	}
	if in.Duration <= 0 {
		in.Duration = 3
	}
	if in.VenueType == "" {
		in.VenueType = "indoor"
	}

	requirements := "None"
	if len(in.Requirements) > 0 {
		requirements = strings.Join(in.Requirements, ", ")
	}
	prompt := fmt.Sprintf(budgetPromptTemplate,
		in.EventType, in.Attendees, formatDuration(in.Duration), in.VenueType, requirements)

	suggestion, ok := s.cachedSuggestion(ctx, prompt)
	if !ok {
		var err error
		suggestion, err = s.gen.GenerateText(ctx, budgetSystemPrompt, prompt,
			ports.GenerateOptions{Temperature: 0.7, MaxTokens: 2000})
		if err != nil {
			return nil, err
		}
		s.storeSuggestion(ctx, prompt, suggestion)
	}

	record := &domain.BudgetSuggestion{
		ClubID:       in.ClubID,
		EventType:    in.EventType,
		Attendees:    in.Attendees,
		Duration:     in.Duration,
		VenueType:    in.VenueType,
		Requirements: in.Requirements,
		Suggestion:   suggestion,
		TotalBudget:  extractTotalBudget(suggestion),
		CreatedAt:    time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id

	s.log.Info().
		Str("club_id", in.ClubID).
		Str("event_type", in.EventType).
		Float64("total_budget", record.TotalBudget).
		Msg("budget suggestion generated")

	return record, nil
}

// History returns the club's recent suggestions, newest first.
func (s *BudgetService) History(ctx context.Context, clubID string, limit int) ([]*domain.BudgetSuggestion, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.List(ctx, clubID, limit)
}

func (s *BudgetService) cachedSuggestion(ctx context.Context, prompt string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	v, ok, err := s.cache.Get(ctx, cacheKey("budget", prompt))
	if err != nil {
		s.log.Warn().Err(err).Msg("budget cache lookup failed, generating anyway")
		return "", false
	}
	return v, ok
}

func (s *BudgetService) storeSuggestion(ctx context.Context, prompt, suggestion string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey("budget", prompt), suggestion, resultCacheTTL); err != nil {
		s.log.Warn().Err(err).Msg("failed to store budget suggestion in cache")
	}
}

// extractTotalBudget pulls the total amount from the generated text, 0 when
// no pattern matches.
func extractTotalBudget(text string) float64 {
	for _, pattern := range totalBudgetPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err == nil {
			return amount
		}
	}
	return 0
}

// formatDuration renders hours without a trailing ".0" for whole values.
func formatDuration(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
