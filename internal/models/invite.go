package models

// InviteStatus is the closed set of states an invite can be in.
// Only StatusPending has outgoing transitions; the other three are terminal.
type InviteStatus string

const (
	StatusPending  InviteStatus = "pending"
	StatusAccepted InviteStatus = "accepted"
	StatusRejected InviteStatus = "rejected"
	StatusRevoked  InviteStatus = "revoked"
)

// Valid reports whether s is one of the four known statuses.
func (s InviteStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusRevoked:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s InviteStatus) Terminal() bool {
	return s.Valid() && s != StatusPending
}

// Invite represents a proposed group membership awaiting the receiver's
// decision. At most one invite may exist per (sender, receiver, group)
// triple, regardless of status.
type Invite struct {
	// ID is the unique identifier for the invite (UUID format).
	ID string

	// SenderID is the group member who sent the invite.
	SenderID string

	// ReceiverID is the user being invited.
	ReceiverID string

	// GroupID is the group the receiver is invited to join.
	GroupID string

	// Description is a short message from the sender.
	Description string

	// Status is the invite's lifecycle state.
	Status InviteStatus

	// CreatedAt is the Unix timestamp when the invite was sent.
	CreatedAt int64
}
