// Package settlement computes who owes whom within one group. It is pure:
// callers pass a snapshot of the group's members and expenses, and the
// functions here derive totals, equal shares and balances without touching
// storage. Results are never cached; every query recomputes from the
// snapshot it is given.
package settlement

import (
	"fmt"
	"math"
	"sort"

	"github.com/splitpot/splitpot/internal/models"
)

// MemberBalance is one member's derived financial position.
type MemberBalance struct {
	ID       string
	Username string
	Paid     float64 // Sum of this member's expense amounts
	Share    float64 // The group's equal per-member share
	Balance  float64 // Paid - Share; positive = owed money, negative = owes money
}

// Summary is the settlement view of one group.
type Summary struct {
	Total      float64
	EqualShare float64
	Members    []MemberBalance
}

// CategoryTotal is the aggregate spend for one category.
type CategoryTotal struct {
	Name  string
	Total float64
}

// Summarize computes the group total, the equal per-member share and each
// member's balance. A group with no members yields zeros rather than a
// division fault. Members are ordered by Paid descending; ties break on
// member ID ascending so the output is deterministic.
//
// Arithmetic stays in float64 end to end; rounding to two decimals happens
// only when amounts are formatted at the boundary, so per-member rounding
// error does not compound.
func Summarize(members []models.Member, expenses []models.Expense) Summary {
	var total float64
	paidBy := make(map[string]float64, len(members))
	for _, e := range expenses {
		total += e.Amount
		paidBy[e.PaidBy] += e.Amount
	}

	var share float64
	if len(members) > 0 {
		share = total / float64(len(members))
	}

	balances := make([]MemberBalance, len(members))
	for i, m := range members {
		paid := paidBy[m.ID]
		balances[i] = MemberBalance{
			ID:       m.ID,
			Username: m.Username,
			Paid:     paid,
			Share:    share,
			Balance:  paid - share,
		}
	}

	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Paid != balances[j].Paid {
			return balances[i].Paid > balances[j].Paid
		}
		return balances[i].ID < balances[j].ID
	})

	return Summary{
		Total:      total,
		EqualShare: share,
		Members:    balances,
	}
}

// CategoryTotals sums the given expenses per category. Every known category
// appears exactly once, with a zero total when unused. Output is ordered by
// total descending, ties broken by name ascending.
func CategoryTotals(categories []models.Category, expenses []models.Expense) []CategoryTotal {
	byCategory := make(map[string]float64, len(categories))
	for _, e := range expenses {
		byCategory[e.CategoryID] += e.Amount
	}

	totals := make([]CategoryTotal, len(categories))
	for i, c := range categories {
		totals[i] = CategoryTotal{Name: c.Name, Total: byCategory[c.ID]}
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Name < totals[j].Name
	})

	return totals
}

// Format renders an amount as a decimal string with exactly two fractional
// digits, the only rounding step in the settlement path. Values that round
// to zero are normalized so float noise never prints as "-0.00".
func Format(v float64) string {
	if math.Abs(v) < 0.005 {
		v = 0
	}
	return fmt.Sprintf("%.2f", v)
}
