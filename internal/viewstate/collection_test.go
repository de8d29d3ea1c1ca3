package viewstate

import (
	"errors"
	"testing"
)

type row struct {
	ID   int
	Text string
}

func TestCollection_BeginClearsPreviousState(t *testing.T) {
	var c Collection[row]

	seq := c.Begin("inbox", 1)
	if !c.Resolve(seq, []row{{ID: 1}, {ID: 2}}, 1) {
		t.Fatalf("Resolve rejected the current sequence")
	}
	if c.Len() != 2 || !c.Loaded() {
		t.Fatalf("collection = %d items loaded=%v, want 2 items loaded", c.Len(), c.Loaded())
	}

	c.Begin("archive", 1)
	if c.Len() != 0 {
		t.Fatalf("Begin kept %d stale items, want 0", c.Len())
	}
	if !c.Loading() || c.Loaded() {
		t.Fatalf("loading=%v loaded=%v after Begin, want loading only", c.Loading(), c.Loaded())
	}
	if c.Filter() != "archive" {
		t.Fatalf("Filter = %q, want archive", c.Filter())
	}
}

func TestCollection_StaleResultsAreDiscarded(t *testing.T) {
	var c Collection[row]

	first := c.Begin("inbox", 1)
	second := c.Begin("archive", 1)

	// The inbox response arrives after the user already switched away.
	if c.Resolve(first, []row{{ID: 1, Text: "old"}}, 1) {
		t.Fatalf("Resolve accepted a superseded sequence")
	}
	if c.Len() != 0 || c.Filter() != "archive" {
		t.Fatalf("stale resolve mutated state: %d items filter=%q", c.Len(), c.Filter())
	}

	if c.Fail(first, errors.New("late failure")) {
		t.Fatalf("Fail accepted a superseded sequence")
	}
	if c.Err() != nil {
		t.Fatalf("stale failure set Err = %v, want nil", c.Err())
	}

	if !c.Resolve(second, []row{{ID: 9, Text: "new"}}, 1) {
		t.Fatalf("Resolve rejected the current sequence")
	}
	items := c.Items()
	if len(items) != 1 || items[0].ID != 9 {
		t.Fatalf("items = %#v, want the archive row", items)
	}
}

func TestCollection_FailLeavesNoStaleRows(t *testing.T) {
	var c Collection[row]

	seq := c.Begin("inbox", 1)
	c.Resolve(seq, []row{{ID: 1}}, 1)

	seq = c.Begin("inbox", 1)
	loadErr := errors.New("boom")
	if !c.Fail(seq, loadErr) {
		t.Fatalf("Fail rejected the current sequence")
	}
	if c.Len() != 0 {
		t.Fatalf("failed load kept %d rows, want 0", c.Len())
	}
	if !errors.Is(c.Err(), loadErr) {
		t.Fatalf("Err = %v, want %v", c.Err(), loadErr)
	}
	if c.Empty() {
		t.Fatalf("Empty = true after failure, want false (empty means a load resolved)")
	}
}

func TestCollection_EmptyOnlyAfterResolvedLoad(t *testing.T) {
	var c Collection[row]

	if c.Empty() {
		t.Fatalf("Empty = true before any load")
	}

	seq := c.Begin("inbox", 1)
	if c.Empty() {
		t.Fatalf("Empty = true while loading")
	}
	c.Resolve(seq, nil, 1)
	if !c.Empty() {
		t.Fatalf("Empty = false after a zero-item load")
	}
}

func TestCollection_ItemAndReplace(t *testing.T) {
	var c Collection[row]

	seq := c.Begin("all", 2)
	c.Resolve(seq, []row{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}, 4)

	if c.Page() != 2 || c.TotalPages() != 4 {
		t.Fatalf("page = %d/%d, want 2/4", c.Page(), c.TotalPages())
	}

	item, ok := c.Item(1)
	if !ok || item.ID != 2 {
		t.Fatalf("Item(1) = %#v ok=%v, want id 2", item, ok)
	}
	if _, ok := c.Item(5); ok {
		t.Fatalf("Item(5) reported ok out of range")
	}

	if !c.Replace(1, row{ID: 2, Text: "b-edited"}) {
		t.Fatalf("Replace rejected a valid index")
	}
	item, _ = c.Item(1)
	if item.Text != "b-edited" {
		t.Fatalf("Replace did not store the new item: %#v", item)
	}
	if c.Replace(7, row{}) {
		t.Fatalf("Replace accepted an out-of-range index")
	}
}
