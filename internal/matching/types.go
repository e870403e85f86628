package matching

import "github.com/google/uuid"

// OrderID and SecurityID are opaque 128-bit identifiers supplied by the
// submitter (§6). They are distinct named types over uuid.UUID so a
// security id can never be mistaken for an order id at a call site,
// even though both are backed by the same 16-byte array.
type OrderID uuid.UUID
type SecurityID uuid.UUID

func (id OrderID) String() string    { return uuid.UUID(id).String() }
func (id SecurityID) String() string { return uuid.UUID(id).String() }
func (id OrderID) IsZero() bool      { return id == OrderID{} }
func (id SecurityID) IsZero() bool   { return id == SecurityID{} }

// NewOrderID generates a fresh random order identifier. Convenience for
// callers outside the core (the core itself never generates ids).
func NewOrderID() OrderID { return OrderID(uuid.New()) }

// NewSecurityID generates a fresh random security identifier.
func NewSecurityID() SecurityID { return SecurityID(uuid.New()) }

type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// opposite returns the other side of the book.
func (s Side) opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

type OrderType int

const (
	// Limit orders rest on the book until filled or cancelled.
	Limit OrderType = iota
	// Market orders execute immediately against whatever liquidity is
	// available; any unfilled remainder is discarded (§4.3).
	Market
)

func (t OrderType) String() string {
	if t == Limit {
		return "limit"
	}
	return "market"
}

// NewOrder is a submission of fresh liquidity intent (§6).
type NewOrder struct {
	OrderID    OrderID
	SecurityID SecurityID
	Side       Side
	OrderType  OrderType

	// Price is the limit price. Required (non-zero) for Limit orders;
	// ignored for Market orders.
	Price uint32

	// ProtectiveCap is an optional bound for a Market order: matching
	// continues only while the opposite side's best price is at or
	// below the cap, for both buy and sell (§4.3 resolves the
	// buy/sell directionality the source left inconsistent this way,
	// so a cap does not re-tighten as a sell sweeps down through
	// progressively lower-priced bids). Nil means no gate at all.
	ProtectiveCap *uint32

	Quantity uint32
}

// ModifyRequest asks to reprice and/or resize a resting order (§4.5).
// Nil fields are "absent" in the decision table.
type ModifyRequest struct {
	OrderID     OrderID
	NewPrice    *uint32
	NewQuantity *uint32
}

// CancelRequest asks to remove a resting order (§4.4).
type CancelRequest struct {
	OrderID OrderID
}

// DepthQuery asks for the current book shape of one security (§4.6).
// Levels <= 0 means unbounded.
type DepthQuery struct {
	SecurityID SecurityID
	Levels     int
}

// Fill is emitted once per consumed (fully or partially) resting order
// during a submission's matching pass, in consumption order (§6, §5).
type Fill struct {
	MakerOrderID OrderID
	TakerOrderID OrderID
	Price        uint32
	Quantity     uint32
	SideTaken    Side
}

// SubmitResult is the terminal disposition of a NewOrder submission.
type SubmitResult struct {
	Fills        []Fill
	Accepted     bool
	Rejected     bool
	RejectReason string
	Rested       bool
	RestingID    OrderID
}

// ModifyOutcome is the terminal disposition of a ModifyRequest (§4.5,
// §6). Noop covers the "both fields absent" row of the decision table.
type ModifyOutcome int

const (
	ModifyNotFound ModifyOutcome = iota
	ModifyInplace
	ModifyRepriced
	ModifyRequantized
	ModifyBoth
	ModifyNoop
)

func (m ModifyOutcome) String() string {
	switch m {
	case ModifyNotFound:
		return "not_found"
	case ModifyInplace:
		return "inplace"
	case ModifyRepriced:
		return "repriced"
	case ModifyRequantized:
		return "requantized"
	case ModifyBoth:
		return "both"
	case ModifyNoop:
		return "noop"
	default:
		return "unknown"
	}
}

// CancelOutcome is the terminal disposition of a CancelRequest (§4.4, §6).
type CancelOutcome int

const (
	CancelSuccess CancelOutcome = iota
	CancelNotFound
)

func (c CancelOutcome) String() string {
	if c == CancelSuccess {
		return "success"
	}
	return "not_found"
}

// CancelResult carries the outcome and, on failure, a human-readable
// reason (§7's "structured Failed with a reason").
type CancelResult struct {
	Outcome CancelOutcome
	Reason  string
}

// DepthLevel is one (price, aggregate quantity) entry of a depth query.
type DepthLevel struct {
	Price    uint32
	Quantity uint32
}

// DepthResult is the output of a depth query: bids descending, asks
// ascending (§4.6).
type DepthResult struct {
	Bids []DepthLevel
	Asks []DepthLevel
}
