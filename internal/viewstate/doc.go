// Package viewstate holds the client-side view synchronization primitives
// shared by every satchel screen.
//
// # Overview
//
// The screens all follow the same cycle: fetch a collection, render it, let
// the user mutate one item, reconcile with the server's response. This
// package owns the two pieces of state that cycle needs:
//
//   - Collection[T]: one screen's list of server items, with the sequence
//     guard that discards results from superseded loads
//   - Alert: the single-slot notification region
//
// # Sequence Guard
//
// Rapid navigation can put two loads in flight at once, and nothing
// guarantees their responses arrive in order. Begin returns a sequence
// number the load's result message must carry; Resolve and Fail reject any
// result whose sequence no longer matches. The last *issued* load wins, not
// the last response to arrive:
//
//	seq := m.posts.Begin(feed, page)
//	return m, m.loadPostsCmd(seq, feed, page)
//
//	case postsLoadedMsg:
//	    if msg.err != nil {
//	        if m.posts.Fail(msg.seq, msg.err) { ... surface alert ... }
//	        return m, nil
//	    }
//	    m.posts.Resolve(msg.seq, msg.page.Results, msg.page.TotalPages)
//
// # Ownership
//
// Both types are owned by a single Bubble Tea model and touched only from
// its Update method, which the runtime calls serially. They are plain
// mutable values with no locking; they must not be shared across goroutines.
package viewstate
