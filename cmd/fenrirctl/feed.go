package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"fenrir/internal/matching"
)

// feedRecord is one line of a replay feed: a tagged union over the
// core's four submission shapes (§6). JSON field names are the wire
// vocabulary this CLI speaks; the core itself knows nothing of JSON.
type feedRecord struct {
	Op            string  `json:"op"`
	OrderID       string  `json:"order_id"`
	SecurityID    string  `json:"security_id"`
	Side          string  `json:"side"`
	OrderType     string  `json:"order_type"`
	Price         uint32  `json:"price"`
	ProtectiveCap *uint32 `json:"protective_cap"`
	Quantity      uint32  `json:"quantity"`
	NewPrice      *uint32 `json:"new_price"`
	NewQuantity   *uint32 `json:"new_quantity"`
	Levels        int     `json:"levels"`
}

func parseFeedLine(line []byte) (feedRecord, error) {
	var r feedRecord
	if err := json.Unmarshal(line, &r); err != nil {
		return feedRecord{}, fmt.Errorf("fenrirctl: malformed feed record: %w", err)
	}
	return r, nil
}

func parseOrderID(s string) (matching.OrderID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return matching.OrderID{}, fmt.Errorf("fenrirctl: order_id: %w", err)
	}
	return matching.OrderID(u), nil
}

func parseSecurityID(s string) (matching.SecurityID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return matching.SecurityID{}, fmt.Errorf("fenrirctl: security_id: %w", err)
	}
	return matching.SecurityID(u), nil
}

func parseSide(s string) (matching.Side, error) {
	switch s {
	case "buy":
		return matching.Buy, nil
	case "sell":
		return matching.Sell, nil
	default:
		return 0, fmt.Errorf("fenrirctl: unknown side %q", s)
	}
}

func parseOrderType(s string) (matching.OrderType, error) {
	switch s {
	case "limit", "":
		return matching.Limit, nil
	case "market":
		return matching.Market, nil
	default:
		return 0, fmt.Errorf("fenrirctl: unknown order_type %q", s)
	}
}

// toNewOrder converts a "new" feed record into a core submission.
func (r feedRecord) toNewOrder() (matching.NewOrder, error) {
	id, err := parseOrderID(r.OrderID)
	if err != nil {
		return matching.NewOrder{}, err
	}
	sec, err := parseSecurityID(r.SecurityID)
	if err != nil {
		return matching.NewOrder{}, err
	}
	side, err := parseSide(r.Side)
	if err != nil {
		return matching.NewOrder{}, err
	}
	orderType, err := parseOrderType(r.OrderType)
	if err != nil {
		return matching.NewOrder{}, err
	}
	return matching.NewOrder{
		OrderID:       id,
		SecurityID:    sec,
		Side:          side,
		OrderType:     orderType,
		Price:         r.Price,
		ProtectiveCap: r.ProtectiveCap,
		Quantity:      r.Quantity,
	}, nil
}

func (r feedRecord) toModifyRequest() (matching.ModifyRequest, error) {
	id, err := parseOrderID(r.OrderID)
	if err != nil {
		return matching.ModifyRequest{}, err
	}
	return matching.ModifyRequest{OrderID: id, NewPrice: r.NewPrice, NewQuantity: r.NewQuantity}, nil
}

func (r feedRecord) toCancelRequest() (matching.CancelRequest, error) {
	id, err := parseOrderID(r.OrderID)
	if err != nil {
		return matching.CancelRequest{}, err
	}
	return matching.CancelRequest{OrderID: id}, nil
}

func (r feedRecord) toDepthQuery() (matching.DepthQuery, error) {
	sec, err := parseSecurityID(r.SecurityID)
	if err != nil {
		return matching.DepthQuery{}, err
	}
	return matching.DepthQuery{SecurityID: sec, Levels: r.Levels}, nil
}
