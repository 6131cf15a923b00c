package list

import "testing"

func labels(names ...string) []Item {
	items := make([]Item, len(names))
	for i, name := range names {
		items[i] = Item{ID: name, Label: name}
	}
	return items
}

func TestNextPreviousClampByDefault(t *testing.T) {
	n := New("sidebar", labels("a", "b", "c"))
	if n.Previous() {
		t.Fatalf("expected previous at index 0 to report no movement")
	}
	n.Next()
	n.Next()
	if n.Next() {
		t.Fatalf("expected next at the end to clamp")
	}
	if n.Index() != 2 {
		t.Fatalf("expected index 2, got %d", n.Index())
	}
}

func TestWrappingNavigator(t *testing.T) {
	n := NewWrapping("menu", labels("a", "b", "c"))
	n.Previous()
	if n.Index() != 2 {
		t.Fatalf("expected wrap to last item, got %d", n.Index())
	}
	n.Next()
	if n.Index() != 0 {
		t.Fatalf("expected wrap to first item, got %d", n.Index())
	}
}

func TestActivateFiresOnce(t *testing.T) {
	calls := map[string]int{}
	items := []Item{
		{ID: "one", Label: "One", Action: func() { calls["one"]++ }},
		{ID: "two", Label: "Two", Action: func() { calls["two"]++ }},
	}
	n := New("topbar", items)
	n.Next()
	if !n.Activate() {
		t.Fatalf("expected activation to run the action")
	}
	if calls["two"] != 1 || calls["one"] != 0 {
		t.Fatalf("expected only the current item to fire once, got %v", calls)
	}
}

func TestEmptyListIsNoop(t *testing.T) {
	n := New("sidebar", nil)
	if n.Next() || n.Previous() || n.Activate() || n.Home() || n.End() {
		t.Fatalf("expected every operation on an empty list to be a no-op")
	}
	if n.Index() != -1 {
		t.Fatalf("expected index -1 for empty list, got %d", n.Index())
	}
	if _, ok := n.Current(); ok {
		t.Fatalf("expected no current item")
	}
}

func TestSetItemsKeepsCursorInRange(t *testing.T) {
	n := New("sidebar", labels("a", "b", "c", "d"))
	n.End()
	n.SetItems(labels("x", "y"))
	if n.Index() != 1 {
		t.Fatalf("expected cursor clamped to 1, got %d", n.Index())
	}
	n.Reset()
	if n.Index() != 0 {
		t.Fatalf("expected reset to index 0, got %d", n.Index())
	}
}

func TestSelectByID(t *testing.T) {
	n := New("sidebar", labels("anna", "bjorn", "carl"))
	if !n.Select("carl") || n.Index() != 2 {
		t.Fatalf("expected select to move onto carl, got %d", n.Index())
	}
	if n.Select("nobody") {
		t.Fatalf("expected unknown id to be rejected")
	}
}

func TestSetIndex(t *testing.T) {
	n := New("sidebar", labels("anna", "bjorn", "carl"))
	if !n.SetIndex(2) || n.Index() != 2 {
		t.Fatalf("expected cursor on 2, got %d", n.Index())
	}
	if n.SetIndex(3) || n.SetIndex(-1) || n.Index() != 2 {
		t.Fatalf("expected out of range indexes to be rejected, got %d", n.Index())
	}
}

func TestFilterNarrowsAndRestoresCursor(t *testing.T) {
	n := New("sidebar", labels("Anna", "Bjorn", "Carl", "Berit"))
	n.Next()
	n.Next()
	n.SetFilter("b")
	if n.Len() != 2 {
		t.Fatalf("expected two matches for b, got %d", n.Len())
	}
	item, _ := n.Current()
	if item.ID != "Bjorn" {
		t.Fatalf("expected prefix match Bjorn, got %q", item.ID)
	}
	n.SetFilter("")
	if n.Len() != 4 {
		t.Fatalf("expected full list after clearing filter, got %d", n.Len())
	}
	if n.Index() != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", n.Index())
	}
}

func TestFilterFallsBackToDetail(t *testing.T) {
	items := []Item{
		{ID: "1", Label: "Anna", Detail: "+4712345678"},
		{ID: "2", Label: "Carl", Detail: "+4799999999"},
	}
	got := FilterItems(items, "9999")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected detail match on Carl, got %+v", got)
	}
}

func TestBestMatchIndexPrefersExact(t *testing.T) {
	items := labels("Settings", "Set", "Sett")
	if idx := BestMatchIndex(items, "set"); idx != 1 {
		t.Fatalf("expected exact match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for empty input, got %d", idx)
	}
}
