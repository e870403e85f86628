package main

import (
	"fmt"

	"fenrir/internal/matching"
)

// applyRecord dispatches one feed record against eng and returns a
// one-line human summary of the terminal disposition (§6). Unknown or
// malformed ops are reported rather than silently dropped.
func applyRecord(eng *matching.Engine, r feedRecord) string {
	switch r.Op {
	case "new":
		o, err := r.toNewOrder()
		if err != nil {
			return err.Error()
		}
		res := eng.Submit(o)
		switch {
		case res.Rejected:
			return fmt.Sprintf("new %s: rejected (%s)", o.OrderID, res.RejectReason)
		case res.Rested:
			return fmt.Sprintf("new %s: accepted, %d fills, rested", o.OrderID, len(res.Fills))
		default:
			return fmt.Sprintf("new %s: accepted, %d fills", o.OrderID, len(res.Fills))
		}

	case "modify":
		m, err := r.toModifyRequest()
		if err != nil {
			return err.Error()
		}
		outcome := eng.Modify(m)
		return fmt.Sprintf("modify %s: %s", m.OrderID, outcome)

	case "cancel":
		c, err := r.toCancelRequest()
		if err != nil {
			return err.Error()
		}
		res := eng.Cancel(c)
		return fmt.Sprintf("cancel %s: %s", c.OrderID, res.Outcome)

	case "depth":
		q, err := r.toDepthQuery()
		if err != nil {
			return err.Error()
		}
		d := eng.Depth(q)
		return fmt.Sprintf("depth %s: %d bid levels, %d ask levels", q.SecurityID, len(d.Bids), len(d.Asks))

	default:
		return fmt.Sprintf("unknown op %q", r.Op)
	}
}
