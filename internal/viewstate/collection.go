package viewstate

// Collection tracks one screen's list of server items across load cycles.
// Each load begins by bumping the sequence counter; the result message
// carries the sequence it was issued with, and results from superseded loads
// are rejected so rapid filter or page changes can never render stale data.
//
// A Collection belongs to a single Bubble Tea model and is only touched from
// Update, so it needs no locking.
type Collection[T any] struct {
	filter     string
	page       int
	totalPages int
	seq        uint64
	items      []T
	loading    bool
	loaded     bool
	err        error
}

// Begin starts a load for the given filter and page. Previous items and
// errors are dropped immediately so the view shows a loading state rather
// than another filter's rows. The returned sequence must be carried by the
// load's result message.
func (c *Collection[T]) Begin(filter string, page int) uint64 {
	c.seq++
	c.filter = filter
	c.page = page
	c.totalPages = 0
	c.items = nil
	c.loading = true
	c.loaded = false
	c.err = nil
	return c.seq
}

// Stale reports whether seq belongs to a superseded load.
func (c *Collection[T]) Stale(seq uint64) bool { return seq != c.seq }

// Resolve stores a successful load. It reports false, changing nothing,
// when the result is stale.
func (c *Collection[T]) Resolve(seq uint64, items []T, totalPages int) bool {
	if c.Stale(seq) {
		return false
	}
	c.items = items
	c.totalPages = totalPages
	c.loading = false
	c.loaded = true
	c.err = nil
	return true
}

// Fail records a failed load. The collection stays empty; the caller
// surfaces err through the alert. It reports false, changing nothing, when
// the result is stale.
func (c *Collection[T]) Fail(seq uint64, err error) bool {
	if c.Stale(seq) {
		return false
	}
	c.items = nil
	c.loading = false
	c.loaded = false
	c.err = err
	return true
}

// Filter returns the selector the current or most recent load was issued for.
func (c *Collection[T]) Filter() string { return c.filter }

// Page returns the page the current or most recent load was issued for.
func (c *Collection[T]) Page() int { return c.page }

// TotalPages returns the page count the server reported, 0 when unknown.
func (c *Collection[T]) TotalPages() int { return c.totalPages }

// Items returns the loaded items in server order.
func (c *Collection[T]) Items() []T { return c.items }

// Len returns the number of loaded items.
func (c *Collection[T]) Len() int { return len(c.items) }

// Item returns the item at index when it exists.
func (c *Collection[T]) Item(index int) (T, bool) {
	if index < 0 || index >= len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[index], true
}

// Replace swaps the item at index for the server-confirmed copy, the
// in-place reconciliation path after a mutation.
func (c *Collection[T]) Replace(index int, item T) bool {
	if index < 0 || index >= len(c.items) {
		return false
	}
	c.items[index] = item
	return true
}

// Loading reports whether a load is in flight.
func (c *Collection[T]) Loading() bool { return c.loading }

// Loaded reports whether the current filter's load has resolved.
func (c *Collection[T]) Loaded() bool { return c.loaded }

// Err returns the current filter's load error, nil after success.
func (c *Collection[T]) Err() error { return c.err }

// Empty reports whether a load resolved with zero items, the state that
// renders the explicit empty-state message.
func (c *Collection[T]) Empty() bool { return c.loaded && len(c.items) == 0 }
