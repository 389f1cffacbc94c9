package models

import "errors"

// Domain error kinds. Services wrap these with %w and callers match them
// with errors.Is to pick a transport status. They are expected, recoverable
// conditions, never panics.
var (
	// ErrNotFound means a referenced user, group, invite or expense does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied means the actor lacks the required relationship
	// (not a group member, not the invite's sender or receiver).
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConflict means a uniqueness rule would be violated, e.g. an invite
	// already exists for the (sender, receiver, group) triple.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState means the action is not allowed for the record's
	// current status, e.g. accepting an already-resolved invite.
	ErrInvalidState = errors.New("invalid state")
)
