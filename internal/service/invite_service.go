package service

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitpot/splitpot/internal/invite"
	"github.com/splitpot/splitpot/internal/metrics"
	"github.com/splitpot/splitpot/internal/middleware"
	"github.com/splitpot/splitpot/internal/models"
	"github.com/splitpot/splitpot/internal/storage"
)

// InviteService handles the invite lifecycle. Each handler reads a snapshot
// from storage, runs the pure transition, and persists the outcome; accept
// relies on the store's compare-and-set so concurrent resolutions of the
// same invite cannot both win.
type InviteService struct {
	store     storage.Store
	collector *metrics.Collector
}

// NewInviteService creates a new InviteService.
func NewInviteService(store storage.Store, collector *metrics.Collector) *InviteService {
	return &InviteService{store: store, collector: collector}
}

type invitePayload struct {
	ID          string `json:"id"`
	SenderID    string `json:"senderId"`
	ReceiverID  string `json:"receiverId"`
	GroupID     string `json:"groupId"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"createdAt"`
}

func toInvitePayload(inv models.Invite) invitePayload {
	return invitePayload{
		ID:          inv.ID,
		SenderID:    inv.SenderID,
		ReceiverID:  inv.ReceiverID,
		GroupID:     inv.GroupID,
		Description: inv.Description,
		Status:      string(inv.Status),
		CreatedAt:   inv.CreatedAt,
	}
}

// Create sends an invite from the caller to another user for a group.
func (s *InviteService) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req struct {
		ReceiverUsername string `json:"receiverUsername"`
		GroupID          string `json:"groupId"`
		Description      string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.ReceiverUsername == "" || req.GroupID == "" {
		respondBadRequest(w, "receiverUsername and groupId are required")
		return
	}

	facts := invite.CreateFacts{}

	var err error
	facts.SenderIsMember, err = s.store.IsGroupMember(r.Context(), req.GroupID, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	var receiverID string
	receiver, err := s.store.GetUserByUsername(r.Context(), req.ReceiverUsername)
	switch {
	case err == nil:
		facts.ReceiverExists = true
		receiverID = receiver.ID
	case isNotFound(err):
		// leave ReceiverExists false, Create reports it
	default:
		respondError(w, err)
		return
	}

	if facts.ReceiverExists {
		facts.ReceiverIsMember, err = s.store.IsGroupMember(r.Context(), req.GroupID, receiverID)
		if err != nil {
			respondError(w, err)
			return
		}
		facts.InviteExists, err = s.store.HasGroupInvite(r.Context(), req.GroupID, receiverID)
		if err != nil {
			respondError(w, err)
			return
		}
	}

	inv, err := invite.Create(userID, receiverID, req.GroupID, req.Description, facts)
	if err != nil {
		respondError(w, err)
		return
	}

	// The unique index backs up the InviteExists fact under concurrency.
	if err := s.store.CreateInvite(r.Context(), &inv); err != nil {
		respondError(w, err)
		return
	}

	s.collector.RecordInviteCreated()
	slog.Info("Invite created", "invite_id", inv.ID, "group_id", inv.GroupID,
		"sender_id", inv.SenderID, "receiver_id", inv.ReceiverID)

	respondJSON(w, http.StatusCreated, toInvitePayload(inv))
}

// Accept resolves a pending invite in the caller's favor and admits them to
// the group. The status flip and the admission commit together.
func (s *InviteService) Accept(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	inviteID := chi.URLParam(r, "inviteID")

	inv, err := s.store.GetInvite(r.Context(), inviteID)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, admission, err := invite.Accept(*inv, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.store.ResolveInvite(r.Context(), inviteID, models.StatusPending, updated.Status, &admission); err != nil {
		respondError(w, err)
		return
	}

	s.collector.RecordInviteResolved(string(updated.Status))
	slog.Info("Invite accepted", "invite_id", inviteID, "group_id", updated.GroupID, "user_id", userID)

	respondJSON(w, http.StatusOK, toInvitePayload(updated))
}

// Reject resolves a pending invite against the sender. No membership change.
func (s *InviteService) Reject(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	inviteID := chi.URLParam(r, "inviteID")

	inv, err := s.store.GetInvite(r.Context(), inviteID)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := invite.Reject(*inv, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.store.ResolveInvite(r.Context(), inviteID, models.StatusPending, updated.Status, nil); err != nil {
		respondError(w, err)
		return
	}

	s.collector.RecordInviteResolved(string(updated.Status))
	slog.Info("Invite rejected", "invite_id", inviteID, "user_id", userID)

	respondJSON(w, http.StatusOK, toInvitePayload(updated))
}

// Revoke withdraws a pending invite the caller sent.
func (s *InviteService) Revoke(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	inviteID := chi.URLParam(r, "inviteID")

	inv, err := s.store.GetInvite(r.Context(), inviteID)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := invite.Revoke(*inv, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.store.ResolveInvite(r.Context(), inviteID, models.StatusPending, updated.Status, nil); err != nil {
		respondError(w, err)
		return
	}

	s.collector.RecordInviteResolved(string(updated.Status))
	slog.Info("Invite revoked", "invite_id", inviteID, "user_id", userID)

	respondJSON(w, http.StatusOK, toInvitePayload(updated))
}

// ListSent returns invites the caller has sent, newest first.
func (s *InviteService) ListSent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	invites, err := s.store.ListSentInvites(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toInvitePayloads(invites))
}

// ListReceived returns invites addressed to the caller, newest first.
func (s *InviteService) ListReceived(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	invites, err := s.store.ListReceivedInvites(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toInvitePayloads(invites))
}

func toInvitePayloads(invites []models.Invite) []invitePayload {
	payload := make([]invitePayload, len(invites))
	for i, inv := range invites {
		payload[i] = toInvitePayload(inv)
	}
	return payload
}
