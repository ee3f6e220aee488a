package schema

import (
	"errors"
	"testing"

	"github.com/campusops/api/internal/core/domain"
)

func TestRegistry_AllTabsPresent(t *testing.T) {
	for _, tab := range Tabs() {
		s, ok := Lookup(tab)
		if !ok {
			t.Fatalf("missing schema for tab %q", tab)
		}
		if s.Collection == "" || s.Singular == "" || s.SortField == "" {
			t.Fatalf("incomplete schema for tab %q: %+v", tab, s)
		}
	}
	if _, ok := Lookup("shipments"); ok {
		t.Fatalf("unexpected schema for unknown tab")
	}
}

func TestNormalize_EventCreate(t *testing.T) {
	s, _ := Lookup(domain.TabEvents)

	doc, err := s.Normalize(map[string]any{
		"name":             "Hack Night",
		"date":             "2025-03-01",
		"venue":            "Lab 2",
		"status":           "planned",
		"budget_allocated": float64(500),
	})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	if doc["name"] != "Hack Night" || doc["date"] != "2025-03-01" || doc["venue"] != "Lab 2" {
		t.Fatalf("required fields not carried: %+v", doc)
	}
	if doc["status"] != "planned" {
		t.Fatalf("expected status planned, got %v", doc["status"])
	}
	if doc["budget_allocated"] != float64(500) {
		t.Fatalf("expected budget 500, got %v", doc["budget_allocated"])
	}
	// Omitted optional fields get tab-specific defaults.
	if doc["category"] != "General" {
		t.Fatalf("expected default category, got %v", doc["category"])
	}
	if doc["attendees_expected"] != float64(0) {
		t.Fatalf("expected zeroed attendees, got %v", doc["attendees_expected"])
	}
}

func TestNormalize_MissingRequiredField(t *testing.T) {
	s, _ := Lookup(domain.TabEvents)

	_, err := s.Normalize(map[string]any{"name": "Hack Night", "venue": "Lab 2"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "date" {
		t.Fatalf("expected error on date, got %q", ve.Field)
	}
}

func TestNormalize_NumericStringCoercion(t *testing.T) {
	s, _ := Lookup(domain.TabBudget)

	doc, err := s.Normalize(map[string]any{
		"title":    "Venue deposit",
		"amount":   "1500.50",
		"type":     "expense",
		"category": "Venue",
	})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if doc["amount"] != 1500.50 {
		t.Fatalf("expected 1500.50, got %v", doc["amount"])
	}
	if doc["status"] != "pending" {
		t.Fatalf("expected default status pending, got %v", doc["status"])
	}
}

func TestNormalize_RejectsBadEnum(t *testing.T) {
	s, _ := Lookup(domain.TabBudget)

	_, err := s.Normalize(map[string]any{
		"title":    "Sponsorship",
		"amount":   2000,
		"type":     "donation",
		"category": "Sponsors",
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "type" {
		t.Fatalf("expected error on type, got %q", ve.Field)
	}
}

func TestNormalize_DropsUnknownKeys(t *testing.T) {
	s, _ := Lookup(domain.TabMembers)

	doc, err := s.Normalize(map[string]any{
		"name":   "Priya",
		"email":  "priya@example.com",
		"role":   "Treasurer",
		"_id":    "injected",
		"is_admin": true,
	})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if _, ok := doc["_id"]; ok {
		t.Fatalf("_id must not pass through normalization")
	}
	if _, ok := doc["is_admin"]; ok {
		t.Fatalf("unknown keys must be dropped")
	}
}

func TestNormalize_SkillsFromCommaSeparated(t *testing.T) {
	s, _ := Lookup(domain.TabMembers)

	doc, err := s.Normalize(map[string]any{
		"name":   "Arun",
		"email":  "arun@example.com",
		"role":   "Member",
		"skills": "go, design , ",
	})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	skills, ok := doc["skills"].([]string)
	if !ok || len(skills) != 2 || skills[0] != "go" || skills[1] != "design" {
		t.Fatalf("unexpected skills: %#v", doc["skills"])
	}
}

func TestNormalizeUpdate_PartialPayload(t *testing.T) {
	s, _ := Lookup(domain.TabEvents)

	doc, err := s.NormalizeUpdate(map[string]any{"status": "completed"})
	if err != nil {
		t.Fatalf("NormalizeUpdate returned error: %v", err)
	}
	if len(doc) != 1 || doc["status"] != "completed" {
		t.Fatalf("unexpected update doc: %+v", doc)
	}

	if _, err := s.NormalizeUpdate(map[string]any{"name": "  "}); err == nil {
		t.Fatalf("expected error when blanking a required field")
	}

	if _, err := s.NormalizeUpdate(map[string]any{"_id": "x"}); err == nil {
		t.Fatalf("expected error for payload with no updatable fields")
	}
}

func TestNormalize_DateDefaultsToNow(t *testing.T) {
	s, _ := Lookup(domain.TabBudget)

	doc, err := s.Normalize(map[string]any{
		"title":    "Prints",
		"amount":   40,
		"type":     "expense",
		"category": "Marketing",
	})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if date, _ := doc["date"].(string); date == "" {
		t.Fatalf("expected date default, got %v", doc["date"])
	}
}
