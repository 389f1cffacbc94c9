package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitpot/splitpot/internal/invite"
	"github.com/splitpot/splitpot/internal/models"
)

// CreateInvite persists a new invite. The UNIQUE(sender_id, receiver_id,
// group_id) constraint backs the one-invite-per-triple rule even when two
// create calls race past the service-level check.
func (s *SQLiteStore) CreateInvite(ctx context.Context, inv *models.Invite) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.CreatedAt == 0 {
		inv.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO group_invites (id, sender_id, receiver_id, group_id, description, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.SenderID, inv.ReceiverID, inv.GroupID, inv.Description, string(inv.Status), inv.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: invite already exists for this user and group", models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert invite: %w", err)
	}

	return nil
}

// GetInvite retrieves an invite by ID.
func (s *SQLiteStore) GetInvite(ctx context.Context, inviteID string) (*models.Invite, error) {
	inv := &models.Invite{}
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, sender_id, receiver_id, group_id, description, status, created_at
		 FROM group_invites WHERE id = ?`,
		inviteID,
	).Scan(&inv.ID, &inv.SenderID, &inv.ReceiverID, &inv.GroupID, &inv.Description, &status, &inv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: invite %s", models.ErrNotFound, inviteID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	inv.Status = models.InviteStatus(status)
	return inv, nil
}

// HasGroupInvite reports whether any invite row exists for the group with
// the user in either role, regardless of status.
func (s *SQLiteStore) HasGroupInvite(ctx context.Context, groupID, userID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM group_invites WHERE group_id = ? AND (receiver_id = ? OR sender_id = ?)",
		groupID, userID, userID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check invites: %w", err)
	}

	return true, nil
}

// ListSentInvites retrieves invites sent by the user, newest first.
func (s *SQLiteStore) ListSentInvites(ctx context.Context, userID string) ([]models.Invite, error) {
	return s.listInvites(ctx, "sender_id", userID)
}

// ListReceivedInvites retrieves invites addressed to the user, newest first.
func (s *SQLiteStore) ListReceivedInvites(ctx context.Context, userID string) ([]models.Invite, error) {
	return s.listInvites(ctx, "receiver_id", userID)
}

func (s *SQLiteStore) listInvites(ctx context.Context, column, userID string) ([]models.Invite, error) {
	query := fmt.Sprintf(
		`SELECT id, sender_id, receiver_id, group_id, description, status, created_at
		 FROM group_invites WHERE %s = ?
		 ORDER BY created_at DESC, id`, column)

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	var invites []models.Invite
	for rows.Next() {
		var inv models.Invite
		var status string
		if err := rows.Scan(
			&inv.ID, &inv.SenderID, &inv.ReceiverID, &inv.GroupID,
			&inv.Description, &status, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		inv.Status = models.InviteStatus(status)
		invites = append(invites, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invites: %w", err)
	}

	return invites, nil
}

// ResolveInvite moves an invite to a terminal status with a compare-and-set
// on the current status, inserting the membership in the same transaction
// when an admission is supplied. If the invite was already resolved by a
// concurrent call, models.ErrInvalidState is returned and nothing changes.
func (s *SQLiteStore) ResolveInvite(ctx context.Context, inviteID string, from, to models.InviteStatus, admit *invite.Admission) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE group_invites SET status = ? WHERE id = ? AND status = ?",
		string(to), inviteID, string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to update invite status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		// Either the invite vanished or it is no longer in `from`.
		var one int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM group_invites WHERE id = ?", inviteID).Scan(&one)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: invite %s", models.ErrNotFound, inviteID)
		}
		if err != nil {
			return fmt.Errorf("failed to check invite existence: %w", err)
		}
		return fmt.Errorf("%w: invite %s is no longer %s", models.ErrInvalidState, inviteID, from)
	}

	if admit != nil {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO group_members (group_id, user_id) VALUES (?, ?)",
			admit.GroupID, admit.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to admit member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
