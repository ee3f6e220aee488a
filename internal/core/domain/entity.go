package domain

import "errors"

// The four managed collections of the data manager.
const (
	TabEvents  = "events"
	TabMembers = "members"
	TabBudget  = "budget"
	TabReports = "reports"
)

var ErrUnknownTab = errors.New("unknown entity tab")
var ErrEntityNotFound = errors.New("record not found")
var ErrDuplicateEmail = errors.New("email already exists")

// Record is a single managed entity. The data manager is schema-driven rather
// than typed per tab: field names, kinds, and defaults live in the schema
// registry, so a record travels as a plain document.
type Record map[string]any

// Stats are the dashboard aggregates, derived server-side. The budget figure
// is the income minus expense balance, not a count.
type Stats struct {
	Events  int64   `json:"events"`
	Members int64   `json:"members"`
	Budget  float64 `json:"budget"`
	Reports int64   `json:"reports"`
}

// BudgetSummary accompanies the budget tab listing.
type BudgetSummary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}
