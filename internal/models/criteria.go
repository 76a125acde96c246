package models

import "strings"

// FilterCriteria is the single source of truth for the list page's search box
// and category select. A zero CategoryID means "All Categories".
type FilterCriteria struct {
	SearchText string `json:"searchText"`
	CategoryID ID     `json:"categoryId"`
}

// HasCategory reports whether a category filter is active.
func (c FilterCriteria) HasCategory() bool {
	return c.CategoryID != 0
}

// IsZero reports whether no criterion is set.
func (c FilterCriteria) IsZero() bool {
	return c.SearchText == "" && c.CategoryID == 0
}

// Matches applies both predicates: a case-insensitive title substring match
// and category membership.
func (c FilterCriteria) Matches(e Event) bool {
	if c.SearchText != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(c.SearchText)) {
		return false
	}
	if c.HasCategory() && !e.HasCategory(c.CategoryID) {
		return false
	}
	return true
}
