package matching

// location pins a resting order to its physical position: which
// security's book, which side, which arena slot (§3).
type location struct {
	security SecurityID
	side     Side
	index    int32
}

// registry is the global cross-book index from external order id to
// location. Exactly one entry exists per currently-resting order (§3
// invariant 5). A single flat map is sufficient since nothing here
// needs a per-half-book view independently of the global one.
type registry struct {
	entries map[OrderID]location
}

func newRegistry() *registry {
	return &registry{entries: make(map[OrderID]location)}
}

func (r *registry) get(id OrderID) (location, bool) {
	loc, ok := r.entries[id]
	return loc, ok
}

func (r *registry) insert(id OrderID, loc location) {
	r.entries[id] = loc
}

// delete removes id's entry. Callers must call this before freeing the
// corresponding arena slot (cancel) or resubmitting (modify), so a
// re-entrant lookup under the same id during resubmission never
// observes a stale location (§9 "Cross-index consistency").
func (r *registry) delete(id OrderID) {
	delete(r.entries, id)
}

func (r *registry) len() int { return len(r.entries) }
