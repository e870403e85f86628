package matching

import "github.com/tidwall/btree"

// orderNode is a single resting order. Links reference positions in the
// same half-book's arena; noIndex marks the absence of a neighbor (§3).
type orderNode struct {
	id         OrderID
	price      uint32
	initialQty uint32
	currentQty uint32
	next       int32
	prev       int32
}

// priceLevel is the FIFO queue of resting orders sharing one exact
// price within one half-book (§3).
type priceLevel struct {
	price         uint32
	head          int32
	tail          int32
	orderCount    uint32
	totalQuantity uint32
}

// halfBook is one side (bids or asks) of one security's order book: a
// price-ordered map of levels over an arena of order nodes.
type halfBook struct {
	side   Side
	levels *btree.BTreeG[*priceLevel]
	arena  *arena[orderNode]
}

func ascByPrice(a, b *priceLevel) bool  { return a.price < b.price }
func descByPrice(a, b *priceLevel) bool { return a.price > b.price }

// newHalfBook builds an empty half-book. Asks are kept ascending (best
// = lowest price first); bids are kept descending (best = highest price
// first).
func newHalfBook(side Side) *halfBook {
	less := ascByPrice
	if side == Buy {
		less = descByPrice
	}
	return &halfBook{
		side:   side,
		levels: btree.NewBTreeG(less),
		arena:  newArena[orderNode](),
	}
}

// append rests a new order of initialQty (the order's original,
// unmatched size) resting with currentQty remaining at price p,
// returning its arena index (§4.2 "Append at price p with quantity q").
//
// initialQty and currentQty differ when this call is resting the
// aftermath of a partial match (fresh order) or a modify resubmission
// (currentQty is what survived the resubmission's own matching pass;
// initialQty is the new size the modify requested, or the old initial
// size for a reprice that requested none).
func (h *halfBook) append(id OrderID, price, initialQty, currentQty uint32) int32 {
	node := orderNode{id: id, price: price, initialQty: initialQty, currentQty: currentQty, next: noIndex, prev: noIndex}
	idx := h.arena.allocate(node)

	if level, ok := h.levels.GetMut(&priceLevel{price: price}); ok {
		oldTail := level.tail
		h.arena.get(idx).prev = oldTail
		h.arena.get(oldTail).next = idx
		level.tail = idx
		level.orderCount++
		level.totalQuantity += currentQty
		return idx
	}

	h.levels.Set(&priceLevel{
		price:         price,
		head:          idx,
		tail:          idx,
		orderCount:    1,
		totalQuantity: currentQty,
	})
	return idx
}

// unlink removes the order at arena index i from its half-book,
// wherever it sits in its price level's chain, and recycles its arena
// slot (§4.2). Used directly by cancel and modify-forfeit, and reused
// by the matching loop to retire a fully-consumed resting order — both
// are "remove this node from its chain", the only difference is who
// calls it.
func (h *halfBook) unlink(i int32) {
	node := h.arena.get(i)
	prev, next := node.prev, node.next
	price, qty := node.price, node.currentQty

	level, ok := h.levels.GetMut(&priceLevel{price: price})
	if !ok {
		panic(corruption("halfbook: unlink %d: no price level at %d", i, price))
	}

	if prev != noIndex {
		h.arena.get(prev).next = next
	}
	if next != noIndex {
		h.arena.get(next).prev = prev
	}
	if level.head == i {
		level.head = next
	}
	if level.tail == i {
		level.tail = prev
	}
	level.totalQuantity -= qty
	level.orderCount--

	if level.orderCount == 0 {
		h.levels.Delete(&priceLevel{price: price})
	}

	h.arena.free(i)
}

// resize mutates the current (remaining) quantity of a resting order in
// place, preserving its position in its price level's chain, and keeps
// the level's aggregate in sync (§4.5 Inplace modify). It mutates
// current_quantity, not initial_quantity: a level's totalQuantity is the
// sum of current_quantity (§3 invariant 2), so an Inplace reduction only
// shrinks the depth aggregate if current_quantity changes.
// initial_quantity is left alone; it only ever serves as the
// Requantized guard's ceiling.
func (h *halfBook) resize(i int32, newQty uint32) {
	node := h.arena.get(i)
	level, ok := h.levels.GetMut(&priceLevel{price: node.price})
	if !ok {
		panic(corruption("halfbook: resize %d: no price level at %d", i, node.price))
	}
	if newQty >= node.currentQty {
		level.totalQuantity += newQty - node.currentQty
	} else {
		level.totalQuantity -= node.currentQty - newQty
	}
	node.currentQty = newQty
}

// best returns the best (price-time-priority-first) level on this side,
// or false if the side is empty.
func (h *halfBook) best() (*priceLevel, bool) {
	return h.levels.MinMut()
}

// head returns the order resting at the front of level's FIFO chain.
func (h *halfBook) head(level *priceLevel) *orderNode {
	return h.arena.get(level.head)
}

// depth returns up to n (price, aggregate quantity) levels in this
// half-book's natural order (ascending for asks, descending for bids),
// or every level if n <= 0 (§4.6). Read-only: never mutates the book.
func (h *halfBook) depth(n int) []DepthLevel {
	out := make([]DepthLevel, 0, h.levels.Len())
	h.levels.Scan(func(level *priceLevel) bool {
		if n > 0 && len(out) >= n {
			return false
		}
		out = append(out, DepthLevel{Price: level.price, Quantity: level.totalQuantity})
		return true
	})
	return out
}
