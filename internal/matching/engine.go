package matching

import "errors"

// ErrUnknownSecurity is a programming-error guard: the registry should
// never point at a security the engine has no Book for.
var ErrUnknownSecurity = errors.New("matching: registry points at unknown security")

// Engine is the matching core: a security id -> Book index plus the
// global order registry (§3 "Engine state"). It is single-threaded and
// synchronous by design (§5) — every exported method runs a submission
// to completion with no suspension points. Books are created lazily on
// first sight of a security id (§4.7) rather than drawn from a fixed
// enumeration.
type Engine struct {
	books    map[SecurityID]*Book
	registry *registry
	sink     Sink
}

// New builds an empty engine. A nil sink is replaced with NopSink.
func New(sink Sink) *Engine {
	if sink == nil {
		sink = NopSink{}
	}
	return &Engine{
		books:    make(map[SecurityID]*Book),
		registry: newRegistry(),
		sink:     sink,
	}
}

// bookFor returns the Book for sec, creating it on first sight (§4.7).
func (e *Engine) bookFor(sec SecurityID) *Book {
	b, ok := e.books[sec]
	if !ok {
		b = newBook(sec)
		e.books[sec] = b
	}
	return b
}

// Submit runs a new order through the matching loop and rests any
// eligible remainder (§4.7 submit).
func (e *Engine) Submit(o NewOrder) SubmitResult {
	if o.Quantity == 0 {
		return e.reject(o.OrderID, "quantity must be positive")
	}
	if o.OrderType == Limit && o.Price == 0 {
		return e.reject(o.OrderID, "limit order requires a price")
	}

	book := e.bookFor(o.SecurityID)
	var fills []Fill
	remaining := book.match(o.Side, o.OrderType, o.Price, o.ProtectiveCap, o.Quantity, o.OrderID, func(f Fill) {
		fills = append(fills, f)
		e.sink.Emit(OrderFilled{Fill: f})
	}, e.registry.delete)

	result := SubmitResult{Fills: fills, Accepted: true}

	if o.OrderType == Limit && remaining > 0 {
		idx := book.half(o.Side).append(o.OrderID, o.Price, o.Quantity, remaining)
		e.registry.insert(o.OrderID, location{security: o.SecurityID, side: o.Side, index: idx})
		result.Rested = true
		result.RestingID = o.OrderID
	}

	e.sink.Emit(OrderAccepted{OrderID: o.OrderID, SecurityID: o.SecurityID, Rested: result.Rested})
	return result
}

func (e *Engine) reject(id OrderID, reason string) SubmitResult {
	e.sink.Emit(OrderRejected{OrderID: id, Reason: reason})
	return SubmitResult{Rejected: true, RejectReason: reason}
}

// Cancel removes a resting order (§4.4). Removing the registry entry
// before freeing the arena slot keeps the two views from ever being
// observed out of sync mid-operation (§9).
func (e *Engine) Cancel(req CancelRequest) CancelResult {
	loc, ok := e.registry.get(req.OrderID)
	if !ok {
		e.sink.Emit(CancelNotFoundEvent{OrderID: req.OrderID})
		return CancelResult{Outcome: CancelNotFound, Reason: "order not found"}
	}

	book, ok := e.books[loc.security]
	if !ok {
		panic(corruption("cancel %s: %v", req.OrderID, ErrUnknownSecurity))
	}

	e.registry.delete(req.OrderID)
	book.half(loc.side).unlink(loc.index)

	e.sink.Emit(OrderCancelled{OrderID: req.OrderID})
	return CancelResult{Outcome: CancelSuccess}
}

// Modify applies the decision table of §4.5.
func (e *Engine) Modify(req ModifyRequest) ModifyOutcome {
	loc, ok := e.registry.get(req.OrderID)
	if !ok {
		return ModifyNotFound
	}

	book, ok := e.books[loc.security]
	if !ok {
		panic(corruption("modify %s: %v", req.OrderID, ErrUnknownSecurity))
	}
	half := book.half(loc.side)
	node := half.arena.get(loc.index)
	oldPrice, oldInitial, oldCurrent := node.price, node.initialQty, node.currentQty

	switch {
	case req.NewPrice == nil && req.NewQuantity == nil:
		return ModifyNoop

	case req.NewPrice == nil || *req.NewPrice == oldPrice:
		// Price absent or unchanged: quantity-only rules (§4.5 rows 1, 4, 5).
		if req.NewQuantity == nil {
			return ModifyNoop
		}
		newQty := *req.NewQuantity
		if newQty > oldInitial {
			// Requantized: forfeit priority, resubmit at the same price.
			e.registry.delete(req.OrderID)
			half.unlink(loc.index)
			return e.resubmitModify(loc.security, loc.side, req.OrderID, oldPrice, newQty, oldCurrent, ModifyRequantized)
		}
		// Inplace: priority preserved, no resubmission.
		half.resize(loc.index, newQty)
		e.sink.Emit(OrderModified{OrderID: req.OrderID, Outcome: ModifyInplace})
		return ModifyInplace

	default:
		// New price differs from old: always forfeits priority (§4.5 rows 2, 3).
		newPrice := *req.NewPrice
		e.registry.delete(req.OrderID)
		half.unlink(loc.index)
		if req.NewQuantity != nil {
			return e.resubmitModify(loc.security, loc.side, req.OrderID, newPrice, *req.NewQuantity, oldCurrent, ModifyBoth)
		}
		return e.resubmitModify(loc.security, loc.side, req.OrderID, newPrice, oldInitial, oldCurrent, ModifyRepriced)
	}
}

// resubmitModify re-enters the matching loop for an order that forfeit
// its time priority. newInitial is the size recorded against the
// resubmitted order; currentQty is the quantity actually fed into
// matching (the order's remaining size before the modify, per the
// open-question resolution in §9: a partially-filled order keeps its
// fill history rather than having it reset). This is modeled uniformly
// as unlink-then-submit (§9 "Modify as cancel + resubmit"), so a
// resubmission that now crosses the market executes instead of merely
// resting.
func (e *Engine) resubmitModify(sec SecurityID, side Side, id OrderID, price, newInitial, currentQty uint32, outcome ModifyOutcome) ModifyOutcome {
	e.sink.Emit(OrderModified{OrderID: id, Outcome: outcome})

	book := e.bookFor(sec)
	remaining := book.match(side, Limit, price, nil, currentQty, id, func(f Fill) {
		e.sink.Emit(OrderFilled{Fill: f})
	}, e.registry.delete)
	if remaining > 0 {
		idx := book.half(side).append(id, price, newInitial, remaining)
		e.registry.insert(id, location{security: sec, side: side, index: idx})
	}
	return outcome
}

// Depth reports the current book shape for a security (§4.6). Pure
// read; an unknown security yields empty sequences rather than an
// error.
func (e *Engine) Depth(q DepthQuery) DepthResult {
	book, ok := e.books[q.SecurityID]
	if !ok {
		return DepthResult{}
	}
	return DepthResult{
		Bids: book.Bid.depth(q.Levels),
		Asks: book.Ask.depth(q.Levels),
	}
}

// match consumes the opposite half-book from its best edge under
// price-time priority until the incoming quantity is exhausted, the
// opposite book runs dry, or the price gate fails (§4.3). It returns
// whatever quantity remains unmatched.
//
// onMakerConsumed is called with the order id of every resting order
// that match fully consumes, before that order's arena slot is freed
// — the caller (Engine) uses this to delete the now-stale registry
// entry. Registry removal must happen before the arena free, same as
// Cancel (§9 "cross-index consistency"): a maker fully filled here is
// indistinguishable from a cancelled order as far as the registry is
// concerned, and leaving its entry behind would let a later Cancel or
// Modify either panic on an unoccupied arena slot or, once the slot is
// LIFO-recycled, silently operate on a different, unrelated live order.
func (b *Book) match(side Side, orderType OrderType, limitPrice uint32, cap *uint32, quantity uint32, takerID OrderID, emit func(Fill), onMakerConsumed func(OrderID)) uint32 {
	opposite := b.half(side.opposite())
	remaining := quantity

	for remaining > 0 {
		level, ok := opposite.best()
		if !ok {
			break // EmptyOppositeBook: not an error, just done.
		}
		if !priceGate(side, orderType, limitPrice, cap, level.price) {
			break // PriceGateFailed: not an error, just done.
		}

		for remaining > 0 && level.orderCount > 0 {
			headIdx := level.head
			head := opposite.head(level)

			if remaining >= head.currentQty {
				makerID := head.id
				matchQty := head.currentQty
				remaining -= matchQty
				emit(Fill{MakerOrderID: makerID, TakerOrderID: takerID, Price: level.price, Quantity: matchQty, SideTaken: side})
				onMakerConsumed(makerID)
				opposite.unlink(headIdx) // fully consumed: same primitive cancel uses.
			} else {
				matchQty := remaining
				head.currentQty -= matchQty
				level.totalQuantity -= matchQty
				emit(Fill{MakerOrderID: head.id, TakerOrderID: takerID, Price: level.price, Quantity: matchQty, SideTaken: side})
				remaining = 0
			}
		}
	}

	return remaining
}

// priceGate decides whether matching may continue against a resting
// price of bestOpp, per the table in §4.3.
//
// The Market-with-cap case is cap-inclusive and uses the same
// direction (cap >= bestOpp) for both sides, not a per-side
// ceiling/floor split: §8 seed scenario 5 (bids resting at 100 and 99,
// a protective-cap-100 market sell) requires both levels to be
// consumed, which only holds if the cap gate does not tighten as the
// sweep walks down through lower-priced bids. This resolves the
// buy/sell directionality §9's "Open questions" flags as inconsistent
// in the source in favor of the worked seed scenario's expected fills.
func priceGate(side Side, orderType OrderType, limitPrice uint32, cap *uint32, bestOpp uint32) bool {
	switch orderType {
	case Limit:
		if side == Buy {
			return limitPrice >= bestOpp
		}
		return limitPrice <= bestOpp
	case Market:
		if cap == nil {
			return true
		}
		return *cap >= bestOpp
	default:
		return false
	}
}
