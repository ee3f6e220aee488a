package schema

import "github.com/campusops/api/internal/core/domain"

// registry holds the four managed tabs. Field sets and defaults follow the
// dashboard forms: a freshly opened create form must be submittable as-is.
var registry = map[string]*Schema{
	domain.TabEvents: {
		Tab:        domain.TabEvents,
		Collection: "events",
		Singular:   "event",
		SortField:  "date",
		SortDesc:   true,
		Fields: []Field{
			{Name: "name", Kind: String, Required: true},
			{Name: "date", Kind: Date, Required: true},
			{Name: "venue", Kind: String, Required: true},
			{Name: "description", Kind: String},
			{Name: "organizer", Kind: String},
			{Name: "status", Kind: Enum, Enum: []string{"planned", "ongoing", "completed", "cancelled"}},
			{Name: "budget_allocated", Kind: Number},
			{Name: "attendees_expected", Kind: Number},
			{Name: "category", Kind: String, Default: "General"},
		},
	},
	domain.TabMembers: {
		Tab:         domain.TabMembers,
		Collection:  "members",
		Singular:    "member",
		SortField:   "name",
		SortDesc:    false,
		UniqueField: "email",
		Fields: []Field{
			{Name: "name", Kind: String, Required: true},
			{Name: "email", Kind: String, Required: true},
			{Name: "phone", Kind: String},
			{Name: "role", Kind: String, Required: true},
			{Name: "department", Kind: String},
			{Name: "join_date", Kind: Date},
			{Name: "status", Kind: Enum, Enum: []string{"active", "inactive", "alumni"}},
			{Name: "skills", Kind: StringList},
		},
	},
	domain.TabBudget: {
		Tab:        domain.TabBudget,
		Collection: "budget",
		Singular:   "budget_item",
		SortField:  "date",
		SortDesc:   true,
		Fields: []Field{
			{Name: "title", Kind: String, Required: true},
			{Name: "amount", Kind: Number, Required: true},
			{Name: "type", Kind: Enum, Required: true, Enum: []string{"income", "expense"}},
			{Name: "category", Kind: String, Required: true},
			{Name: "description", Kind: String},
			{Name: "date", Kind: Date},
			{Name: "status", Kind: Enum, Enum: []string{"pending", "approved", "rejected"}},
			{Name: "related_event", Kind: String},
		},
	},
	domain.TabReports: {
		Tab:        domain.TabReports,
		Collection: "reports",
		Singular:   "report",
		SortField:  "created_at",
		SortDesc:   true,
		Fields: []Field{
			{Name: "title", Kind: String, Required: true},
			{Name: "type", Kind: String, Required: true},
			{Name: "content", Kind: String},
			{Name: "summary", Kind: String},
			{Name: "generated_by", Kind: String, Default: "System"},
			{Name: "related_event", Kind: String},
			{Name: "file_path", Kind: String},
			{Name: "status", Kind: Enum, Enum: []string{"draft", "final", "archived"}},
		},
	},
}

// Lookup returns the schema for a tab name.
func Lookup(tab string) (*Schema, bool) {
	s, ok := registry[tab]
	return s, ok
}

// Tabs returns the managed tab names in display order.
func Tabs() []string {
	return []string{domain.TabEvents, domain.TabMembers, domain.TabBudget, domain.TabReports}
}
