package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
)

// memSuggestionRepo is an in-memory ports.SuggestionRepository.
type memSuggestionRepo struct {
	suggestions []*domain.BudgetSuggestion
}

func (r *memSuggestionRepo) Insert(ctx context.Context, s *domain.BudgetSuggestion) (string, error) {
	stored := *s
	stored.ID = "s" + strconv.Itoa(len(r.suggestions)+1)
	r.suggestions = append(r.suggestions, &stored)
	return stored.ID, nil
}

func (r *memSuggestionRepo) List(ctx context.Context, clubID string, limit int) ([]*domain.BudgetSuggestion, error) {
	var out []*domain.BudgetSuggestion
	for _, s := range r.suggestions {
		if s.ClubID == clubID {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestBudgetService_Suggest(t *testing.T) {
	gen := &stubGenerator{
		textFn: func(system, prompt string, opts ports.GenerateOptions) (string, error) {
			if !strings.Contains(prompt, "hackathon") || !strings.Contains(prompt, "120") {
				t.Fatalf("event parameters missing from prompt")
			}
			return "1. Venue: $500\n2. Food: $800\nTotal Estimated Budget: $1,500", nil
		},
	}
	repo := &memSuggestionRepo{}
	svc := NewBudgetService(gen, repo, newMemCache(), zerolog.Nop())

	suggestion, err := svc.Suggest(context.Background(), ports.BudgetSuggestInput{
		ClubID:    "tech_club",
		EventType: "hackathon",
		Attendees: 120,
	})
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if suggestion.ID == "" {
		t.Fatalf("suggestion not stored")
	}
	if suggestion.TotalBudget != 1500 {
		t.Fatalf("expected total 1500, got %v", suggestion.TotalBudget)
	}
	if suggestion.Duration != 3 || suggestion.VenueType != "indoor" {
		t.Fatalf("defaults not applied: %+v", suggestion)
	}
}

func TestBudgetService_Suggest_Validation(t *testing.T) {
	svc := NewBudgetService(&stubGenerator{}, &memSuggestionRepo{}, nil, zerolog.Nop())

	if _, err := svc.Suggest(context.Background(), ports.BudgetSuggestInput{
		ClubID: "tech_club", EventType: "", Attendees: 10,
	}); !IsValidationError(err) {
		t.Fatalf("expected validation error for empty event_type, got %v", err)
	}

	if _, err := svc.Suggest(context.Background(), ports.BudgetSuggestInput{
		ClubID: "tech_club", EventType: "hackathon", Attendees: 0,
	}); !IsValidationError(err) {
		t.Fatalf("expected validation error for zero attendees, got %v", err)
	}
}

func TestBudgetService_Suggest_NoGenerator(t *testing.T) {
	svc := NewBudgetService(nil, &memSuggestionRepo{}, nil, zerolog.Nop())

	_, err := svc.Suggest(context.Background(), ports.BudgetSuggestInput{
		ClubID: "tech_club", EventType: "hackathon", Attendees: 10,
	})
	if !errors.Is(err, domain.ErrGeneratorUnavailable) {
		t.Fatalf("expected ErrGeneratorUnavailable, got %v", err)
	}
}

func TestBudgetService_Suggest_CacheSkipsModelButStoresHistory(t *testing.T) {
	gen := &stubGenerator{
		textFn: func(system, prompt string, opts ports.GenerateOptions) (string, error) {
			return "Total: $900", nil
		},
	}
	repo := &memSuggestionRepo{}
	svc := NewBudgetService(gen, repo, newMemCache(), zerolog.Nop())

	in := ports.BudgetSuggestInput{ClubID: "tech_club", EventType: "workshop", Attendees: 30}
	if _, err := svc.Suggest(context.Background(), in); err != nil {
		t.Fatalf("first suggest failed: %v", err)
	}
	if _, err := svc.Suggest(context.Background(), in); err != nil {
		t.Fatalf("second suggest failed: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one model call, got %d", gen.calls)
	}
	if len(repo.suggestions) != 2 {
		t.Fatalf("every request must store a history entry, got %d", len(repo.suggestions))
	}
}

func TestBudgetService_History_DefaultLimit(t *testing.T) {
	repo := &memSuggestionRepo{}
	for i := 0; i < 25; i++ {
		repo.suggestions = append(repo.suggestions, &domain.BudgetSuggestion{ClubID: "tech_club"})
	}
	svc := NewBudgetService(&stubGenerator{}, repo, nil, zerolog.Nop())

	out, err := svc.History(context.Background(), "tech_club", 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(out) != 20 {
		t.Fatalf("expected default limit 20, got %d", len(out))
	}
}

func TestExtractTotalBudget(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"Total Estimated Budget: $12,500", 12500},
		{"total budget is 2000", 2000},
		{"Grand Total: $3,250", 3250},
		{"Total: 450", 450},
		{"no figures here", 0},
	}
	for _, tc := range cases {
		if got := extractTotalBudget(tc.text); got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.text, tc.want, got)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(3); got != "3" {
		t.Fatalf("expected 3, got %q", got)
	}
	if got := formatDuration(2.5); got != "2.5" {
		t.Fatalf("expected 2.5, got %q", got)
	}
}
