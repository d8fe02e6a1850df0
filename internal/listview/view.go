package listview

import (
	"slices"
	"strings"
)

// CategoryAll disables the category gate.
const CategoryAll = "all"

// SortKey names a registered ordering.
type SortKey string

// Query is the user-controlled part of a list screen.
type Query struct {
	Text     string
	Category string
	Sort     SortKey
}

// Options describe how items of a given type are matched and ordered.
type Options[T any] struct {
	// Category returns the exact-match category of an item. Nil disables
	// category filtering.
	Category func(T) string
	// Fields returns the texts a free-text query is matched against.
	Fields func(T) []string
	// Sorts maps sort keys to orderings. Unknown keys keep input order.
	Sorts map[SortKey]Compare[T]
}

// Derive filters and orders items for q. The result only ever contains
// items from the input, each at most once.
func Derive[T any](items []T, q Query, opts Options[T]) []T {
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	out := make([]T, 0, len(items))

	for _, item := range items {
		if !matchCategory(item, q.Category, opts) {
			continue
		}
		if !matchText(item, needle, opts) {
			continue
		}
		out = append(out, item)
	}

	if cmp, ok := opts.Sorts[q.Sort]; ok && cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

func matchCategory[T any](item T, category string, opts Options[T]) bool {
	if category == "" || category == CategoryAll || opts.Category == nil {
		return true
	}
	return opts.Category(item) == category
}

func matchText[T any](item T, needle string, opts Options[T]) bool {
	if needle == "" {
		return true
	}
	if opts.Fields == nil {
		return false
	}
	for _, f := range opts.Fields(item) {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
