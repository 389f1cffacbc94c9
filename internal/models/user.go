package models

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the unique display name used to log in and to address
	// invites ("invite @username to the group").
	Username string

	// Email is the user's email address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to clients.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// Member is the projection of a user inside a group: just enough identity
// to compute and render balances.
type Member struct {
	ID       string
	Username string
}
