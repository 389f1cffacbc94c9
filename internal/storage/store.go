// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/splitpot/splitpot/internal/invite"
	"github.com/splitpot/splitpot/internal/models"
)

// Store defines the interface for Splitpot's storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer, and lets service tests run against a
// throwaway database file.
type Store interface {
	// CreateUser persists a new user. Returns models.ErrConflict if the
	// username or email is already taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by username.
	// Returns models.ErrNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns models.ErrNotFound if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroup persists a new group and admits the creator as its first
	// member, atomically. The group.ID field is populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID.
	// Returns models.ErrNotFound if no such group exists.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsForUser retrieves the groups the user is a member of.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// IsGroupMember reports whether the user belongs to the group.
	IsGroupMember(ctx context.Context, groupID, userID string) (bool, error)

	// AddGroupMember admits a user to a group. Adding an existing member is
	// a no-op.
	AddGroupMember(ctx context.Context, groupID, userID string) error

	// ListGroupMembers retrieves the members of a group.
	ListGroupMembers(ctx context.Context, groupID string) ([]models.Member, error)

	// ListCategories retrieves all expense categories.
	ListCategories(ctx context.Context) ([]models.Category, error)

	// GetCategory retrieves a category by ID.
	// Returns models.ErrNotFound if no such category exists.
	GetCategory(ctx context.Context, id string) (*models.Category, error)

	// CreateExpense persists a new expense. The expense.ID field is
	// populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListGroupExpenses retrieves a group's expenses, newest first, with
	// payer username and category name populated.
	ListGroupExpenses(ctx context.Context, groupID string) ([]models.Expense, error)

	// CreateInvite persists a new invite. Returns models.ErrConflict if an
	// invite already exists for the (sender, receiver, group) triple. The
	// invite.ID field is populated by the store.
	CreateInvite(ctx context.Context, inv *models.Invite) error

	// GetInvite retrieves an invite by ID.
	// Returns models.ErrNotFound if no such invite exists.
	GetInvite(ctx context.Context, inviteID string) (*models.Invite, error)

	// HasGroupInvite reports whether any invite row exists for the group
	// with the user in either the sender or receiver role, regardless of
	// status.
	HasGroupInvite(ctx context.Context, groupID, userID string) (bool, error)

	// ListSentInvites retrieves invites sent by the user, newest first.
	ListSentInvites(ctx context.Context, userID string) ([]models.Invite, error)

	// ListReceivedInvites retrieves invites addressed to the user, newest
	// first.
	ListReceivedInvites(ctx context.Context, userID string) ([]models.Invite, error)

	// ResolveInvite moves an invite from one status to another with a
	// compare-and-set: the update applies only if the invite is still in
	// the `from` status, otherwise models.ErrInvalidState is returned and
	// nothing changes. When admit is non-nil the membership is inserted in
	// the same transaction, so two concurrent accepts yield exactly one
	// success and exactly one admission.
	ResolveInvite(ctx context.Context, inviteID string, from, to models.InviteStatus, admit *invite.Admission) error

	// Close releases any resources held by the store.
	Close() error
}
