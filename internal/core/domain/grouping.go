package domain

import "strings"

// ExpenseGroup holds all expenses sharing a title, keyed case-insensitively.
// Title keeps the trimmed casing of the first expense seen for the group.
type ExpenseGroup struct {
	Title    string    `json:"title"`
	Expenses []Expense `json:"transactions"`
}

// GroupExpensesByTitle buckets expenses by trimmed, lower-cased title.
// Expenses with empty or whitespace-only titles are excluded. Groups are
// returned in first-appearance order; any presentation ordering (recency
// sorts and the like) is layered on top by the caller.
func GroupExpensesByTitle(expenses []Expense) []ExpenseGroup {
	index := make(map[string]int)
	groups := make([]ExpenseGroup, 0)

	for _, exp := range expenses {
		trimmed := strings.TrimSpace(exp.Title)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ExpenseGroup{Title: trimmed})
		}
		groups[i].Expenses = append(groups[i].Expenses, exp)
	}

	return groups
}
