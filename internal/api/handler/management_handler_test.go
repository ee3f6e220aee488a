package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/ports"
)

type stubManagementService struct {
	listFn   func(ctx context.Context, clubID, tab string) (*ports.ListResult, error)
	createFn func(ctx context.Context, clubID, tab string, fields map[string]any) (domain.Record, error)
	updateFn func(ctx context.Context, clubID, tab, id string, fields map[string]any) (domain.Record, error)
	deleteFn func(ctx context.Context, clubID, tab, id string) error
	statsFn  func(ctx context.Context, clubID string) (*domain.Stats, error)
}

func (s *stubManagementService) List(ctx context.Context, clubID, tab string) (*ports.ListResult, error) {
	return s.listFn(ctx, clubID, tab)
}

func (s *stubManagementService) Create(ctx context.Context, clubID, tab string, fields map[string]any) (domain.Record, error) {
	return s.createFn(ctx, clubID, tab, fields)
}

func (s *stubManagementService) Update(ctx context.Context, clubID, tab, id string, fields map[string]any) (domain.Record, error) {
	return s.updateFn(ctx, clubID, tab, id, fields)
}

func (s *stubManagementService) Delete(ctx context.Context, clubID, tab, id string) error {
	return s.deleteFn(ctx, clubID, tab, id)
}

func (s *stubManagementService) Stats(ctx context.Context, clubID string) (*domain.Stats, error) {
	return s.statsFn(ctx, clubID)
}

func TestManagementHandler_List_Events(t *testing.T) {
	stub := &stubManagementService{
		listFn: func(ctx context.Context, clubID, tab string) (*ports.ListResult, error) {
			if clubID != "tech_club" || tab != "events" {
				t.Fatalf("unexpected args: %s %s", clubID, tab)
			}
			return &ports.ListResult{
				Tab: "events",
				Items: []domain.Record{
					{"_id": "a1", "name": "Hack Night"},
				},
			}, nil
		},
	}
	handler := NewManagementHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/management/events", "")
	c.Set("club_id", "tech_club")
	c.SetParamNames("tab")
	c.SetParamValues("events")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["count"] != float64(1) {
		t.Fatalf("expected count 1, got %v", resp["count"])
	}
	events, ok := resp["events"].([]any)
	if !ok || len(events) != 1 {
		t.Fatalf("expected events key with one item, got %+v", resp)
	}
	if _, present := resp["summary"]; present {
		t.Fatalf("events listing must not carry a summary")
	}
}

func TestManagementHandler_List_BudgetSummary(t *testing.T) {
	stub := &stubManagementService{
		listFn: func(ctx context.Context, clubID, tab string) (*ports.ListResult, error) {
			return &ports.ListResult{
				Tab:   "budget",
				Items: []domain.Record{},
				Summary: &domain.BudgetSummary{
					TotalIncome:  5000,
					TotalExpense: 1200,
					Balance:      3800,
				},
			}, nil
		},
	}
	handler := NewManagementHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/management/budget", "")
	c.Set("club_id", "tech_club")
	c.SetParamNames("tab")
	c.SetParamValues("budget")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	summary, ok := resp["summary"].(map[string]any)
	if !ok {
		t.Fatalf("expected summary in budget listing")
	}
	if summary["balance"] != float64(3800) {
		t.Fatalf("expected balance 3800, got %v", summary["balance"])
	}
}

func TestManagementHandler_List_MissingClaims(t *testing.T) {
	handler := NewManagementHandler(&stubManagementService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/management/events", "")
	c.SetParamNames("tab")
	c.SetParamValues("events")

	err := handler.List(c)
	if err == nil {
		t.Fatalf("expected error without club claims")
	}
}

func TestManagementHandler_Create_Member(t *testing.T) {
	stub := &stubManagementService{
		createFn: func(ctx context.Context, clubID, tab string, fields map[string]any) (domain.Record, error) {
			if fields["name"] != "Priya" {
				t.Fatalf("unexpected fields: %+v", fields)
			}
			return domain.Record{"_id": "m1", "name": "Priya", "email": "priya@example.com"}, nil
		},
	}
	handler := NewManagementHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/management/members",
		`{"name":"Priya","email":"priya@example.com","role":"Treasurer"}`)
	c.Set("club_id", "tech_club")
	c.SetParamNames("tab")
	c.SetParamValues("members")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	member, ok := resp["member"].(map[string]any)
	if !ok || member["_id"] != "m1" {
		t.Fatalf("expected member key in response, got %+v", resp)
	}
}

func TestManagementHandler_Create_DuplicateEmail(t *testing.T) {
	stub := &stubManagementService{
		createFn: func(ctx context.Context, clubID, tab string, fields map[string]any) (domain.Record, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	handler := NewManagementHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/management/members",
		`{"name":"Priya","email":"priya@example.com","role":"Treasurer"}`)
	c.Set("club_id", "tech_club")
	c.SetParamNames("tab")
	c.SetParamValues("members")

	err := handler.Create(c)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestManagementHandler_Delete_NotFound(t *testing.T) {
	stub := &stubManagementService{
		deleteFn: func(ctx context.Context, clubID, tab, id string) error {
			return domain.ErrEntityNotFound
		},
	}
	handler := NewManagementHandler(stub)

	c, _ := newTestContext(t, http.MethodDelete, "/api/management/events/bogus", "")
	c.Set("club_id", "tech_club")
	c.SetParamNames("tab", "id")
	c.SetParamValues("events", "bogus")

	err := handler.Delete(c)
	if !errors.Is(err, domain.ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestManagementHandler_Stats(t *testing.T) {
	stub := &stubManagementService{
		statsFn: func(ctx context.Context, clubID string) (*domain.Stats, error) {
			return &domain.Stats{Events: 3, Members: 12, Budget: 3800, Reports: 2}, nil
		},
	}
	handler := NewManagementHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/management/stats", "")
	c.Set("club_id", "tech_club")

	if err := handler.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Success bool `json:"success"`
		Stats   struct {
			Events  int64   `json:"events"`
			Members int64   `json:"members"`
			Budget  float64 `json:"budget"`
			Reports int64   `json:"reports"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Stats.Members != 12 || resp.Stats.Budget != 3800 {
		t.Fatalf("unexpected stats payload: %+v", resp.Stats)
	}
}
