// Package models defines the core domain models for Splitpot.
//
// # Models
//
//   - User: Registered account, identified by a unique username
//   - Group: A named collection of users who share expenses
//   - Member: A (user id, username) pair belonging to a group
//   - Invite: A proposed group membership awaiting the receiver's decision
//   - Expense: A paid amount logged against a group and a category
//   - Category: Static reference data for classifying expenses
//
// # Design Principles
//
// 1. **Avoid circular references**: Use ID strings instead of pointers for relationships
// 2. **Immutable records**: Expenses and memberships are never mutated after creation;
//    invites change state only through the transitions in the invite package
// 3. **Typed failures**: The error sentinels in errors.go are the only error kinds
//    that cross the domain boundary
package models
