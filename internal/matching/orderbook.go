package matching

// Book is one security's order book: an ask half-book and a bid
// half-book, per §3. Keyed by SecurityID at the Engine level, so a
// book is created lazily on first sight of a security rather than
// drawn from a fixed enumeration.
type Book struct {
	SecurityID SecurityID
	Bid        *halfBook
	Ask        *halfBook
}

func newBook(id SecurityID) *Book {
	return &Book{
		SecurityID: id,
		Bid:        newHalfBook(Buy),
		Ask:        newHalfBook(Sell),
	}
}

// half returns the half-book resting orders of side s live on.
func (b *Book) half(s Side) *halfBook {
	if s == Buy {
		return b.Bid
	}
	return b.Ask
}

// crossed reports whether the book is in a forbidden state: best bid
// at or above best ask. Used only by tests/property checks (§8) — the
// matching loop is constructed so this can never be observed after a
// submission completes (§3 invariant 6).
func (b *Book) crossed() bool {
	bid, bidOK := b.Bid.best()
	ask, askOK := b.Ask.best()
	if !bidOK || !askOK {
		return false
	}
	return bid.price >= ask.price
}
