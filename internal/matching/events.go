package matching

import "github.com/rs/zerolog"

// Event is a trace record emitted as a pure side channel during a
// submission (§9 "Observability"). The core never blocks on or depends
// on the sink consuming these.
type Event interface{ isEvent() }

// OrderAccepted is emitted once per submission that is not rejected,
// whether or not it rested.
type OrderAccepted struct {
	OrderID    OrderID
	SecurityID SecurityID
	Rested     bool
}

// OrderRejected is emitted for an invalid submission (§7).
type OrderRejected struct {
	OrderID OrderID
	Reason  string
}

// OrderFilled is emitted once per consumed resting order, in
// consumption order (§5, §6).
type OrderFilled struct {
	Fill Fill
}

// OrderCancelled is emitted on a successful cancel.
type OrderCancelled struct {
	OrderID OrderID
}

// CancelNotFoundEvent is emitted when a cancel targets an unknown id.
type CancelNotFoundEvent struct {
	OrderID OrderID
}

// OrderModified is emitted once per modify request that resolved to
// something other than NotFound or Noop. For Repriced/Requantized/Both, this
// is emitted before any fill events the resubmission produces (§5 "A
// modify that resubmits emits its cancellation/unlink event before any
// resulting fill events").
type OrderModified struct {
	OrderID OrderID
	Outcome ModifyOutcome
}

func (OrderAccepted) isEvent()       {}
func (OrderRejected) isEvent()       {}
func (OrderFilled) isEvent()         {}
func (OrderCancelled) isEvent()      {}
func (CancelNotFoundEvent) isEvent() {}
func (OrderModified) isEvent()       {}

// Sink receives engine events. The default is a no-op (§9); an injected
// sink abstraction of exactly one method is sufficient.
type Sink interface {
	Emit(Event)
}

// NopSink discards every event. The engine's default.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// FuncSink adapts a plain function to Sink.
type FuncSink func(Event)

func (f FuncSink) Emit(e Event) { f(e) }

// LogSink emits events as structured zerolog records: one
// log.Info()/.Debug()/.Warn().Str(...).Msg(...) chain per event kind.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) LogSink {
	return LogSink{logger: logger}
}

func (s LogSink) Emit(e Event) {
	switch ev := e.(type) {
	case OrderAccepted:
		s.logger.Debug().
			Str("order_id", ev.OrderID.String()).
			Str("security_id", ev.SecurityID.String()).
			Bool("rested", ev.Rested).
			Msg("order accepted")
	case OrderRejected:
		s.logger.Warn().
			Str("order_id", ev.OrderID.String()).
			Str("reason", ev.Reason).
			Msg("order rejected")
	case OrderFilled:
		s.logger.Info().
			Str("maker_order_id", ev.Fill.MakerOrderID.String()).
			Str("taker_order_id", ev.Fill.TakerOrderID.String()).
			Uint32("price", ev.Fill.Price).
			Uint32("quantity", ev.Fill.Quantity).
			Str("side_taken", ev.Fill.SideTaken.String()).
			Msg("fill")
	case OrderCancelled:
		s.logger.Debug().
			Str("order_id", ev.OrderID.String()).
			Msg("order cancelled")
	case CancelNotFoundEvent:
		s.logger.Warn().
			Str("order_id", ev.OrderID.String()).
			Msg("cancel: order not found")
	case OrderModified:
		s.logger.Debug().
			Str("order_id", ev.OrderID.String()).
			Str("outcome", ev.Outcome.String()).
			Msg("order modified")
	}
}
