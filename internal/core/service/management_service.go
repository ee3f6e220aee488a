package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
	"github.com/campusops/api/internal/core/schema"
)

// ManagementService is the tab-generic data manager. All four entity tabs run
// through the same code path; per-tab behavior comes from the schema registry.
type ManagementService struct {
	repo ports.EntityRepository
	log  zerolog.Logger
}

func NewManagementService(repo ports.EntityRepository, log zerolog.Logger) *ManagementService {
	return &ManagementService{repo: repo, log: log}
}

// List fetches the club's records for one tab, sorted per the schema. The
// budget tab additionally carries its income/expense summary.
func (s *ManagementService) List(ctx context.Context, clubID, tab string) (*ports.ListResult, error) {
	sc, ok := schema.Lookup(tab)
	if !ok {
		return nil, domain.ErrUnknownTab
	}

	items, err := s.repo.List(ctx, sc.Collection, clubID, sc.SortField, sc.SortDesc)
	if err != nil {
		return nil, err
	}

	result := &ports.ListResult{Tab: tab, Items: items}
	if tab == domain.TabBudget {
		income, expense, err := s.repo.BudgetTotals(ctx, clubID)
		if err != nil {
			return nil, err
		}
		result.Summary = &domain.BudgetSummary{
			TotalIncome:  income,
			TotalExpense: expense,
			Balance:      income - expense,
		}
	}
	return result, nil
}

// Create validates the payload against the tab schema and persists it. The
// stored document always carries the owning club and server-side timestamps.
func (s *ManagementService) Create(ctx context.Context, clubID, tab string, fields map[string]any) (domain.Record, error) {
	sc, ok := schema.Lookup(tab)
	if !ok {
		return nil, domain.ErrUnknownTab
	}

	doc, err := sc.Normalize(fields)
	if err != nil {
		return nil, err
	}

	if sc.UniqueField != "" {
		exists, err := s.repo.ExistsByField(ctx, sc.Collection, clubID, sc.UniqueField, doc[sc.UniqueField])
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateEmail
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	doc["club_id"] = clubID
	doc["created_at"] = now
	doc["updated_at"] = now

	id, err := s.repo.Insert(ctx, sc.Collection, doc)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("tab", tab).Str("id", id).Str("club_id", clubID).Msg("record created")

	// Responses never expose the scoping field, matching the list shape.
	delete(doc, "club_id")
	doc["_id"] = id
	return doc, nil
}

// Update applies a partial update to one record and returns the stored state.
func (s *ManagementService) Update(ctx context.Context, clubID, tab, id string, fields map[string]any) (domain.Record, error) {
	sc, ok := schema.Lookup(tab)
	if !ok {
		return nil, domain.ErrUnknownTab
	}

	doc, err := sc.NormalizeUpdate(fields)
	if err != nil {
		return nil, err
	}
	doc["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	updated, err := s.repo.Update(ctx, sc.Collection, clubID, id, doc)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("tab", tab).Str("id", id).Str("club_id", clubID).Msg("record updated")
	return updated, nil
}

// Delete removes one record. Irreversible; the confirmation step lives on the
// client side.
func (s *ManagementService) Delete(ctx context.Context, clubID, tab, id string) error {
	sc, ok := schema.Lookup(tab)
	if !ok {
		return domain.ErrUnknownTab
	}

	if err := s.repo.Delete(ctx, sc.Collection, clubID, id); err != nil {
		return err
	}

	s.log.Info().Str("tab", tab).Str("id", id).Str("club_id", clubID).Msg("record deleted")
	return nil
}

// Stats derives the dashboard aggregates. Counts and the budget balance are
// computed here, never cached client-side, so the figures may be momentarily
// ahead of or behind an entity listing fetched separately.
func (s *ManagementService) Stats(ctx context.Context, clubID string) (*domain.Stats, error) {
	stats := &domain.Stats{}

	for _, tab := range []string{domain.TabEvents, domain.TabMembers, domain.TabReports} {
		sc, _ := schema.Lookup(tab)
		n, err := s.repo.Count(ctx, sc.Collection, clubID)
		if err != nil {
			return nil, err
		}
		switch tab {
		case domain.TabEvents:
			stats.Events = n
		case domain.TabMembers:
			stats.Members = n
		case domain.TabReports:
			stats.Reports = n
		}
	}

	income, expense, err := s.repo.BudgetTotals(ctx, clubID)
	if err != nil {
		return nil, err
	}
	stats.Budget = income - expense

	return stats, nil
}
