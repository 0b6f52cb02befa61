package domain

import "strings"

// Matches reports whether the entry mentions query in its debtor, creditor
// or description, ignoring case. An empty query matches every entry.
func (e *Entry) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	return strings.Contains(strings.ToLower(e.Debtor), q) ||
		strings.Contains(strings.ToLower(e.Creditor), q) ||
		strings.Contains(strings.ToLower(e.Description), q)
}

// FilterEntries returns the entries matching both status (empty means any)
// and query, preserving their order.
func FilterEntries(entries []*Entry, status EntryStatus, query string) []*Entry {
	filtered := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		if !e.Matches(query) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
