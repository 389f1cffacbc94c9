// Package invite implements the group-invite lifecycle as a pure state
// machine. Every status change goes through the transition functions here;
// nothing else in the codebase writes an invite's Status field. The
// functions do no I/O: callers read a snapshot from storage, run a
// transition, and persist the result.
package invite

import (
	"fmt"

	"github.com/splitpot/splitpot/internal/models"
)

// Admission instructs the repository to add a user to a group. It is
// emitted by Accept and must be applied atomically with the status update
// so an accepted invite and its membership never diverge.
type Admission struct {
	GroupID string
	UserID  string
}

// CreateFacts is the storage snapshot Create validates against.
type CreateFacts struct {
	// SenderIsMember is whether the sender currently belongs to the group.
	SenderIsMember bool

	// ReceiverExists is whether the receiver's account exists.
	ReceiverExists bool

	// ReceiverIsMember is whether the receiver already belongs to the group.
	ReceiverIsMember bool

	// InviteExists is whether any invite row exists for the (group, receiver)
	// pair in either role, regardless of status. A resolved invite blocks
	// re-inviting until the record is deleted.
	InviteExists bool
}

// Create validates facts and returns a new pending invite. The returned
// invite has no ID or timestamp; the repository assigns both on insert.
func Create(senderID, receiverID, groupID, description string, facts CreateFacts) (models.Invite, error) {
	if !facts.SenderIsMember {
		return models.Invite{}, fmt.Errorf("%w: sender is not a member of the group", models.ErrPermissionDenied)
	}
	if !facts.ReceiverExists {
		return models.Invite{}, fmt.Errorf("%w: receiver does not exist", models.ErrNotFound)
	}
	if facts.ReceiverIsMember {
		return models.Invite{}, fmt.Errorf("%w: receiver is already a member of the group", models.ErrConflict)
	}
	if facts.InviteExists {
		return models.Invite{}, fmt.Errorf("%w: an invite already exists for this user and group", models.ErrConflict)
	}

	return models.Invite{
		SenderID:    senderID,
		ReceiverID:  receiverID,
		GroupID:     groupID,
		Description: description,
		Status:      models.StatusPending,
	}, nil
}

// Accept transitions a pending invite to accepted and emits the membership
// admission for the receiver. Only the receiver may accept, and only while
// the invite is pending.
func Accept(inv models.Invite, receiverID string) (models.Invite, Admission, error) {
	if inv.ReceiverID != receiverID {
		return inv, Admission{}, fmt.Errorf("%w: only the receiver can accept an invite", models.ErrPermissionDenied)
	}
	if inv.Status != models.StatusPending {
		return inv, Admission{}, fmt.Errorf("%w: invite is %s, not pending", models.ErrInvalidState, inv.Status)
	}

	inv.Status = models.StatusAccepted
	return inv, Admission{GroupID: inv.GroupID, UserID: inv.ReceiverID}, nil
}

// Reject transitions a pending invite to rejected. Only the receiver may
// reject, and only while the invite is pending. No membership side effect.
func Reject(inv models.Invite, receiverID string) (models.Invite, error) {
	if inv.ReceiverID != receiverID {
		return inv, fmt.Errorf("%w: only the receiver can reject an invite", models.ErrPermissionDenied)
	}
	if inv.Status != models.StatusPending {
		return inv, fmt.Errorf("%w: invite is %s, not pending", models.ErrInvalidState, inv.Status)
	}

	inv.Status = models.StatusRejected
	return inv, nil
}

// Revoke transitions a pending invite to revoked. Only the sender may
// revoke. Resolved invites cannot be revoked.
func Revoke(inv models.Invite, senderID string) (models.Invite, error) {
	if inv.SenderID != senderID {
		return inv, fmt.Errorf("%w: only the sender can revoke an invite", models.ErrPermissionDenied)
	}
	if inv.Status != models.StatusPending {
		return inv, fmt.Errorf("%w: invite is %s, not pending", models.ErrInvalidState, inv.Status)
	}

	inv.Status = models.StatusRevoked
	return inv, nil
}
