package service

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitpot/splitpot/internal/metrics"
	"github.com/splitpot/splitpot/internal/middleware"
	"github.com/splitpot/splitpot/internal/models"
	"github.com/splitpot/splitpot/internal/settlement"
	"github.com/splitpot/splitpot/internal/storage"
)

// ExpenseService handles expense logging and listing.
type ExpenseService struct {
	store     storage.Store
	collector *metrics.Collector
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store storage.Store, collector *metrics.Collector) *ExpenseService {
	return &ExpenseService{store: store, collector: collector}
}

type expensePayload struct {
	ID          string `json:"id"`
	GroupID     string `json:"groupId"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
	Category    string `json:"category"`
	PaidBy      string `json:"paidBy"`
	PaidByName  string `json:"paidByUsername"`
	CreatedAt   int64  `json:"createdAt"`
}

func toExpensePayload(e models.Expense) expensePayload {
	return expensePayload{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Amount:      settlement.Format(e.Amount),
		Description: e.Description,
		CategoryID:  e.CategoryID,
		Category:    e.CategoryName,
		PaidBy:      e.PaidBy,
		PaidByName:  e.PaidByUsername,
		CreatedAt:   e.CreatedAt,
	}
}

// Create logs an expense against a group, paid by the caller.
func (s *ExpenseService) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req struct {
		GroupID     string  `json:"groupId"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		CategoryID  string  `json:"categoryId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.GroupID == "" || req.CategoryID == "" {
		respondBadRequest(w, "groupId and categoryId are required")
		return
	}
	if !models.ValidAmount(req.Amount) {
		respondBadRequest(w, "amount must be non-negative with at most two decimal places")
		return
	}

	member, err := s.store.IsGroupMember(r.Context(), req.GroupID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !member {
		respondError(w, fmt.Errorf("%w: not a member of this group", models.ErrPermissionDenied))
		return
	}

	if _, err := s.store.GetCategory(r.Context(), req.CategoryID); err != nil {
		respondError(w, err)
		return
	}

	expense := &models.Expense{
		GroupID:     req.GroupID,
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PaidBy:      userID,
	}
	if err := s.store.CreateExpense(r.Context(), expense); err != nil {
		respondError(w, err)
		return
	}

	s.collector.RecordExpenseCreated()
	slog.Info("Expense created", "expense_id", expense.ID, "group_id", expense.GroupID, "paid_by", userID)

	respondJSON(w, http.StatusCreated, toExpensePayload(*expense))
}

// ListForGroup returns the group's expenses, newest first. The caller must
// be a member.
func (s *ExpenseService) ListForGroup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	groupID := chi.URLParam(r, "groupID")

	member, err := s.store.IsGroupMember(r.Context(), groupID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !member {
		respondError(w, fmt.Errorf("%w: not a member of this group", models.ErrPermissionDenied))
		return
	}

	expenses, err := s.store.ListGroupExpenses(r.Context(), groupID)
	if err != nil {
		respondError(w, err)
		return
	}

	payload := make([]expensePayload, len(expenses))
	for i, e := range expenses {
		payload[i] = toExpensePayload(e)
	}
	respondJSON(w, http.StatusOK, payload)
}

// Categories returns the full category list.
func (s *ExpenseService) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	payload := make([]map[string]string, len(categories))
	for i, c := range categories {
		payload[i] = map[string]string{"id": c.ID, "name": c.Name}
	}
	respondJSON(w, http.StatusOK, payload)
}
