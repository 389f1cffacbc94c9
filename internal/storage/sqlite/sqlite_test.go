package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/splitpot/splitpot/internal/invite"
	"github.com/splitpot/splitpot/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitpot-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustCreateUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", username, err)
	}
	return user
}

func mustCreateGroup(t *testing.T, store *SQLiteStore, name, createdBy string) *models.Group {
	t.Helper()
	group := &models.Group{Name: name, CreatedBy: createdBy}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup(%s) failed: %v", name, err)
	}
	return group
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID and timestamp", func(t *testing.T) {
		user := mustCreateUser(t, store, "alice")
		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		dup := &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"}
		err := store.CreateUser(ctx, dup)
		if !errors.Is(err, models.ErrConflict) {
			t.Errorf("CreateUser error = %v, want conflict", err)
		}
	})

	t.Run("lookup by username and ID", func(t *testing.T) {
		byName, err := store.GetUserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		byID, err := store.GetUserByID(ctx, byName.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID.Username != "alice" {
			t.Errorf("username = %s, want alice", byID.Username)
		}
	})

	t.Run("missing user is not found", func(t *testing.T) {
		_, err := store.GetUserByUsername(ctx, "nobody")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("GetUserByUsername error = %v, want not found", err)
		}
	})
}

func TestGroupsAndMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")
	group := mustCreateGroup(t, store, "Roommates", alice.ID)

	t.Run("creator is auto-admitted", func(t *testing.T) {
		ok, err := store.IsGroupMember(ctx, group.ID, alice.ID)
		if err != nil {
			t.Fatalf("IsGroupMember failed: %v", err)
		}
		if !ok {
			t.Error("Expected creator to be a member")
		}
	})

	t.Run("AddGroupMember is idempotent", func(t *testing.T) {
		if err := store.AddGroupMember(ctx, group.ID, bob.ID); err != nil {
			t.Fatalf("AddGroupMember failed: %v", err)
		}
		if err := store.AddGroupMember(ctx, group.ID, bob.ID); err != nil {
			t.Fatalf("second AddGroupMember failed: %v", err)
		}
		members, err := store.ListGroupMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListGroupMembers failed: %v", err)
		}
		if len(members) != 2 {
			t.Errorf("members = %d, want 2", len(members))
		}
	})

	t.Run("ListGroupsForUser sees only memberships", func(t *testing.T) {
		other := mustCreateGroup(t, store, "Ski Trip", bob.ID)

		groups, err := store.ListGroupsForUser(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListGroupsForUser failed: %v", err)
		}
		for _, g := range groups {
			if g.ID == other.ID {
				t.Error("alice must not see bob's group")
			}
		}
	})

	t.Run("missing group is not found", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "missing")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("GetGroup error = %v, want not found", err)
		}
	})
}

func TestCategoriesSeeded(t *testing.T) {
	store := newTestStore(t)

	categories, err := store.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != len(defaultCategories) {
		t.Fatalf("categories = %d, want %d", len(categories), len(defaultCategories))
	}

	names := make(map[string]bool, len(categories))
	for _, c := range categories {
		names[c.Name] = true
	}
	for _, want := range defaultCategories {
		if !names[want] {
			t.Errorf("missing seeded category %q", want)
		}
	}
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	group := mustCreateGroup(t, store, "Roommates", alice.ID)
	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Amount:      30.00,
		Description: "weekly shop",
		CategoryID:  categories[0].ID,
		PaidBy:      alice.ID,
	}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if expense.ID == "" || expense.CreatedAt == 0 {
		t.Error("Expected ID and CreatedAt to be generated")
	}

	expenses, err := store.ListGroupExpenses(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListGroupExpenses failed: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expenses = %d, want 1", len(expenses))
	}
	got := expenses[0]
	if got.PaidByUsername != "alice" {
		t.Errorf("payer username = %s, want alice", got.PaidByUsername)
	}
	if got.CategoryName != categories[0].Name {
		t.Errorf("category name = %s, want %s", got.CategoryName, categories[0].Name)
	}
	if got.Amount != 30.00 {
		t.Errorf("amount = %v, want 30.00", got.Amount)
	}
}

func TestInvites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")
	group := mustCreateGroup(t, store, "Roommates", alice.ID)

	newInvite := func() *models.Invite {
		return &models.Invite{
			SenderID:    alice.ID,
			ReceiverID:  bob.ID,
			GroupID:     group.ID,
			Description: "join us",
			Status:      models.StatusPending,
		}
	}

	t.Run("create and fetch", func(t *testing.T) {
		inv := newInvite()
		if err := store.CreateInvite(ctx, inv); err != nil {
			t.Fatalf("CreateInvite failed: %v", err)
		}

		got, err := store.GetInvite(ctx, inv.ID)
		if err != nil {
			t.Fatalf("GetInvite failed: %v", err)
		}
		if got.Status != models.StatusPending {
			t.Errorf("status = %s, want pending", got.Status)
		}
	})

	t.Run("duplicate triple conflicts at the constraint", func(t *testing.T) {
		err := store.CreateInvite(ctx, newInvite())
		if !errors.Is(err, models.ErrConflict) {
			t.Errorf("CreateInvite error = %v, want conflict", err)
		}
	})

	t.Run("HasGroupInvite sees receiver role", func(t *testing.T) {
		ok, err := store.HasGroupInvite(ctx, group.ID, bob.ID)
		if err != nil {
			t.Fatalf("HasGroupInvite failed: %v", err)
		}
		if !ok {
			t.Error("Expected invite row for bob")
		}
	})

	t.Run("sent and received listings", func(t *testing.T) {
		sent, err := store.ListSentInvites(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListSentInvites failed: %v", err)
		}
		received, err := store.ListReceivedInvites(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListReceivedInvites failed: %v", err)
		}
		if len(sent) != 1 || len(received) != 1 {
			t.Errorf("sent=%d received=%d, want 1/1", len(sent), len(received))
		}
	})
}

func TestResolveInvite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")
	group := mustCreateGroup(t, store, "Roommates", alice.ID)

	inv := &models.Invite{
		SenderID:   alice.ID,
		ReceiverID: bob.ID,
		GroupID:    group.ID,
		Status:     models.StatusPending,
	}
	if err := store.CreateInvite(ctx, inv); err != nil {
		t.Fatalf("CreateInvite failed: %v", err)
	}

	adm := &invite.Admission{GroupID: group.ID, UserID: bob.ID}

	t.Run("accept updates status and admits atomically", func(t *testing.T) {
		err := store.ResolveInvite(ctx, inv.ID, models.StatusPending, models.StatusAccepted, adm)
		if err != nil {
			t.Fatalf("ResolveInvite failed: %v", err)
		}

		got, err := store.GetInvite(ctx, inv.ID)
		if err != nil {
			t.Fatalf("GetInvite failed: %v", err)
		}
		if got.Status != models.StatusAccepted {
			t.Errorf("status = %s, want accepted", got.Status)
		}

		ok, err := store.IsGroupMember(ctx, group.ID, bob.ID)
		if err != nil {
			t.Fatalf("IsGroupMember failed: %v", err)
		}
		if !ok {
			t.Error("Expected bob to be admitted")
		}
	})

	t.Run("second resolve loses the compare-and-set", func(t *testing.T) {
		err := store.ResolveInvite(ctx, inv.ID, models.StatusPending, models.StatusAccepted, adm)
		if !errors.Is(err, models.ErrInvalidState) {
			t.Errorf("ResolveInvite error = %v, want invalid state", err)
		}
	})

	t.Run("missing invite is not found", func(t *testing.T) {
		err := store.ResolveInvite(ctx, "missing", models.StatusPending, models.StatusRevoked, nil)
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("ResolveInvite error = %v, want not found", err)
		}
	})
}
