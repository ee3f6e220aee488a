package ports

import (
	"context"

	"github.com/campusops/api/internal/core/domain"
)

// EntityRepository is the storage behind the generic data manager. The
// collection name always comes from the schema registry, never from client
// input, and every operation is scoped to the calling club.
type EntityRepository interface {
	List(ctx context.Context, collection, clubID, sortField string, sortDesc bool) ([]domain.Record, error)
	Insert(ctx context.Context, collection string, doc domain.Record) (string, error)
	Get(ctx context.Context, collection, clubID, id string) (domain.Record, error)
	// Update applies a partial $set and returns the updated record.
	Update(ctx context.Context, collection, clubID, id string, fields map[string]any) (domain.Record, error)
	Delete(ctx context.Context, collection, clubID, id string) error
	Count(ctx context.Context, collection, clubID string) (int64, error)
	// ExistsByField reports whether a record with field == value exists for the club.
	ExistsByField(ctx context.Context, collection, clubID, field string, value any) (bool, error)
	// BudgetTotals sums budget amounts grouped by the income/expense type.
	BudgetTotals(ctx context.Context, clubID string) (income, expense float64, err error)
}

// ListResult is the per-tab listing, including the budget summary when the
// tab is budget.
type ListResult struct {
	Tab     string
	Items   []domain.Record
	Summary *domain.BudgetSummary
}

// ManagementService defines the tab-generic CRUD operations.
type ManagementService interface {
	List(ctx context.Context, clubID, tab string) (*ListResult, error)
	Create(ctx context.Context, clubID, tab string, fields map[string]any) (domain.Record, error)
	Update(ctx context.Context, clubID, tab, id string, fields map[string]any) (domain.Record, error)
	Delete(ctx context.Context, clubID, tab, id string) error
	Stats(ctx context.Context, clubID string) (*domain.Stats, error)
}
