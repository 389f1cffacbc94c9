package service

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitpot/splitpot/internal/middleware"
	"github.com/splitpot/splitpot/internal/models"
	"github.com/splitpot/splitpot/internal/settlement"
	"github.com/splitpot/splitpot/internal/storage"
)

// GroupService handles group management and the settlement views.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

type groupPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedBy string `json:"createdBy"`
	CreatedAt int64  `json:"createdAt"`
}

func toGroupPayload(g *models.Group) groupPayload {
	return groupPayload{ID: g.ID, Name: g.Name, CreatedBy: g.CreatedBy, CreatedAt: g.CreatedAt}
}

// requireMember checks that the user belongs to the group. Non-members get
// permission denied regardless of whether the group exists, to avoid
// leaking group IDs.
func (s *GroupService) requireMember(r *http.Request, groupID, userID string) error {
	ok, err := s.store.IsGroupMember(r.Context(), groupID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: not a member of this group", models.ErrPermissionDenied)
	}
	return nil
}

// Create makes a new group with the caller as its first member.
func (s *GroupService) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		respondBadRequest(w, "name is required")
		return
	}

	group := &models.Group{Name: req.Name, CreatedBy: userID}
	if err := s.store.CreateGroup(r.Context(), group); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Group created", "group_id", group.ID, "created_by", userID)

	respondJSON(w, http.StatusCreated, toGroupPayload(group))
}

// List returns the groups the caller belongs to.
func (s *GroupService) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	groups, err := s.store.ListGroupsForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	payload := make([]groupPayload, len(groups))
	for i, g := range groups {
		payload[i] = toGroupPayload(g)
	}
	respondJSON(w, http.StatusOK, payload)
}

// AddMember admits a user by username directly, without an invite. The
// caller must already belong to the group.
func (s *GroupService) AddMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	groupID := chi.URLParam(r, "groupID")

	var req struct {
		Username string `json:"username"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	if err := s.requireMember(r, groupID, userID); err != nil {
		respondError(w, err)
		return
	}

	target, err := s.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.store.AddGroupMember(r.Context(), groupID, target.ID); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Member added", "group_id", groupID, "user_id", target.ID, "added_by", userID)

	respondJSON(w, http.StatusCreated, map[string]string{"message": "user added to group"})
}

// Members returns the group's member list.
func (s *GroupService) Members(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	groupID := chi.URLParam(r, "groupID")

	if err := s.requireMember(r, groupID, userID); err != nil {
		respondError(w, err)
		return
	}

	members, err := s.store.ListGroupMembers(r.Context(), groupID)
	if err != nil {
		respondError(w, err)
		return
	}

	payload := make([]map[string]string, len(members))
	for i, m := range members {
		payload[i] = map[string]string{"id": m.ID, "username": m.Username}
	}
	respondJSON(w, http.StatusOK, payload)
}

type memberBalancePayload struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	TotalPaid  string `json:"totalPaid"`
	EqualShare string `json:"equalShare"`
	Balance    string `json:"balance"`
}

type summaryPayload struct {
	Total      string                 `json:"total"`
	EqualShare string                 `json:"equalShare"`
	Members    []memberBalancePayload `json:"members"`
}

// Summary computes who owes whom for the group. Balances are derived fresh
// from the membership and expense snapshot on every call.
func (s *GroupService) Summary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	groupID := chi.URLParam(r, "groupID")

	if err := s.requireMember(r, groupID, userID); err != nil {
		respondError(w, err)
		return
	}

	members, err := s.store.ListGroupMembers(r.Context(), groupID)
	if err != nil {
		respondError(w, err)
		return
	}
	expenses, err := s.store.ListGroupExpenses(r.Context(), groupID)
	if err != nil {
		respondError(w, err)
		return
	}

	summary := settlement.Summarize(members, expenses)

	payload := summaryPayload{
		Total:      settlement.Format(summary.Total),
		EqualShare: settlement.Format(summary.EqualShare),
		Members:    make([]memberBalancePayload, len(summary.Members)),
	}
	for i, m := range summary.Members {
		payload.Members[i] = memberBalancePayload{
			ID:         m.ID,
			Username:   m.Username,
			TotalPaid:  settlement.Format(m.Paid),
			EqualShare: settlement.Format(m.Share),
			Balance:    settlement.Format(m.Balance),
		}
	}
	respondJSON(w, http.StatusOK, payload)
}

type categoryTotalPayload struct {
	Name  string `json:"name"`
	Total string `json:"total"`
}

// CategorySummary aggregates the group's spend per category. Every known
// category is reported, zero when unused.
func (s *GroupService) CategorySummary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	groupID := chi.URLParam(r, "groupID")

	if err := s.requireMember(r, groupID, userID); err != nil {
		respondError(w, err)
		return
	}

	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	expenses, err := s.store.ListGroupExpenses(r.Context(), groupID)
	if err != nil {
		respondError(w, err)
		return
	}

	totals := settlement.CategoryTotals(categories, expenses)

	payload := make([]categoryTotalPayload, len(totals))
	for i, ct := range totals {
		payload[i] = categoryTotalPayload{Name: ct.Name, Total: settlement.Format(ct.Total)}
	}
	respondJSON(w, http.StatusOK, payload)
}
