package list

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/talkpad/talkpad/internal/logging/events"
)

// Filter returns the active query.
func (n *Navigator) Filter() string {
	return n.filter
}

// SetFilter narrows the visible items to those matching query and moves the
// cursor onto the best match. Clearing the query restores the cursor held
// before filtering began.
func (n *Navigator) SetFilter(query string) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(n.filter)
	n.filter = query
	restore := -1
	if trimmed != "" && prevTrimmed == "" {
		n.lastCursor = n.cursor
	}
	if trimmed == "" && prevTrimmed != "" {
		restore = n.lastCursor
		n.lastCursor = -1
	}
	n.applyFilter()
	if trimmed != "" {
		if idx := BestMatchIndex(n.items, trimmed); idx >= 0 {
			n.cursor = idx
		}
		events.Nav.ListFilter(n.Region, trimmed, len(n.items))
		return
	}
	if restore >= 0 && restore < len(n.items) {
		n.cursor = restore
	}
}

func (n *Navigator) applyFilter() {
	n.items = FilterItems(n.full, n.filter)
	if len(n.items) == 0 {
		n.cursor = 0
		return
	}
	if n.cursor < 0 {
		n.cursor = 0
	}
	if n.cursor >= len(n.items) {
		n.cursor = len(n.items) - 1
	}
}

// FilterItems returns the items whose labels fuzzily match query. Without a
// fuzzy hit it falls back to substring matches on label and detail.
func FilterItems(items []Item, query string) []Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return cloneItems(items)
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Item, 0, len(matches))
		for idx, item := range items {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) ||
			strings.Contains(strings.ToLower(item.Detail), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex picks the index of the strongest match for query: an exact
// label, then a label prefix, then the closest fuzzy rank.
func BestMatchIndex(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item.Label, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
