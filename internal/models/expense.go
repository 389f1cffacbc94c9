package models

import "math"

// Expense represents a paid amount logged against a group.
// Expenses are immutable once created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Amount is the paid amount. Non-negative, at most two fractional digits.
	Amount float64

	// Description is what the expense was for.
	Description string

	// CategoryID references a Category.
	CategoryID string

	// PaidBy is the user ID of the member who paid.
	PaidBy string

	// CreatedAt is the Unix timestamp when the expense was logged.
	CreatedAt int64

	// PaidByUsername and CategoryName are denormalized for listing.
	// Populated by storage reads, never written back.
	PaidByUsername string
	CategoryName   string
}

// Category is static reference data for classifying expenses.
type Category struct {
	ID   string
	Name string
}

// ValidAmount reports whether v is a well-formed expense amount:
// non-negative and expressible with two fractional digits.
func ValidAmount(v float64) bool {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	cents := v * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}
