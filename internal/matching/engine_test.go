package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cap32 is a small helper for building *uint32 protective caps inline.
func cap32(v uint32) *uint32 { return &v }

func TestEngine_Scenario1_PartialFillLeavesRemainderResting(t *testing.T) {
	e := New(nil)
	sec := NewSecurityID()
	a := NewOrderID()
	b := NewOrderID()

	res := e.Submit(NewOrder{OrderID: a, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 100, Quantity: 10})
	assert.True(t, res.Accepted)
	assert.True(t, res.Rested)
	assert.Empty(t, res.Fills)

	depth := e.Depth(DepthQuery{SecurityID: sec})
	assert.Equal(t, []DepthLevel{{Price: 100, Quantity: 10}}, depth.Bids)
	assert.Empty(t, depth.Asks)

	res = e.Submit(NewOrder{OrderID: b, SecurityID: sec, Side: Sell, OrderType: Limit, Price: 100, Quantity: 4})
	require.Len(t, res.Fills, 1)
	assert.Equal(t, Fill{MakerOrderID: a, TakerOrderID: b, Price: 100, Quantity: 4, SideTaken: Sell}, res.Fills[0])

	depth = e.Depth(DepthQuery{SecurityID: sec})
	assert.Equal(t, []DepthLevel{{Price: 100, Quantity: 6}}, depth.Bids)
	assert.Empty(t, depth.Asks)
}

func TestEngine_Scenario2_MarketSweepsMultipleLevelsAndOrders(t *testing.T) {
	e := New(nil)
	sec := NewSecurityID()
	a, b, c, x := NewOrderID(), NewOrderID(), NewOrderID(), NewOrderID()

	e.Submit(NewOrder{OrderID: a, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 100, Quantity: 5})
	e.Submit(NewOrder{OrderID: b, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 100, Quantity: 3})
	e.Submit(NewOrder{OrderID: c, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 101, Quantity: 2})

	res := e.Submit(NewOrder{OrderID: x, SecurityID: sec, Side: Sell, OrderType: Market, Quantity: 8})

	require.Len(t, res.Fills, 3)
	assert.Equal(t, Fill{MakerOrderID: c, TakerOrderID: x, Price: 101, Quantity: 2, SideTaken: Sell}, res.Fills[0])
	assert.Equal(t, Fill{MakerOrderID: a, TakerOrderID: x, Price: 100, Quantity: 5, SideTaken: Sell}, res.Fills[1])
	assert.Equal(t, Fill{MakerOrderID: b, TakerOrderID: x, Price: 100, Quantity: 1, SideTaken: Sell}, res.Fills[2])

	depth := e.Depth(DepthQuery{SecurityID: sec})
	assert.Equal(t, []DepthLevel{{Price: 100, Quantity: 2}}, depth.Bids)
}

func TestEngine_Scenario4_CancelThenCancelAgainIsNotFound(t *testing.T) {
	e := New(nil)
	sec := NewSecurityID()
	a := NewOrderID()

	e.Submit(NewOrder{OrderID: a, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 100, Quantity: 5})

	res := e.Cancel(CancelRequest{OrderID: a})
	assert.Equal(t, CancelSuccess, res.Outcome)
	assert.Empty(t, e.Depth(DepthQuery{SecurityID: sec}).Bids)

	res = e.Cancel(CancelRequest{OrderID: a})
	assert.Equal(t, CancelNotFound, res.Outcome)
}

func TestEngine_Scenario5_ProtectiveCapSweepsThroughLowerLevelsRemainderDiscarded(t *testing.T) {
	e := New(nil)
	sec := NewSecurityID()
	a, b, x := NewOrderID(), NewOrderID(), NewOrderID()

	e.Submit(NewOrder{OrderID: a, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 100, Quantity: 5})
	e.Submit(NewOrder{OrderID: b, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 99, Quantity: 5})

	res := e.Submit(NewOrder{OrderID: x, SecurityID: sec, Side: Sell, OrderType: Market, ProtectiveCap: cap32(100), Quantity: 100})

	require.Len(t, res.Fills, 2)
	assert.Equal(t, Fill{MakerOrderID: a, TakerOrderID: x, Price: 100, Quantity: 5, SideTaken: Sell}, res.Fills[0])
	assert.Equal(t, Fill{MakerOrderID: b, TakerOrderID: x, Price: 99, Quantity: 5, SideTaken: Sell}, res.Fills[1])

	depth := e.Depth(DepthQuery{SecurityID: sec})
	assert.Empty(t, depth.Bids)
}

func TestEngine_Scenario6_CrossingLimitRestsRemainderOnOppositeSide(t *testing.T) {
	e := New(nil)
	sec := NewSecurityID()
	a, b := NewOrderID(), NewOrderID()

	res := e.Submit(NewOrder{OrderID: a, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 101, Quantity: 10})
	assert.True(t, res.Rested)

	res = e.Submit(NewOrder{OrderID: b, SecurityID: sec, Side: Sell, OrderType: Limit, Price: 100, Quantity: 15})
	require.Len(t, res.Fills, 1)
	assert.Equal(t, Fill{MakerOrderID: a, TakerOrderID: b, Price: 101, Quantity: 10, SideTaken: Sell}, res.Fills[0])
	assert.True(t, res.Rested)
	assert.Equal(t, b, res.RestingID)

	depth := e.Depth(DepthQuery{SecurityID: sec})
	assert.Empty(t, depth.Bids)
	assert.Equal(t, []DepthLevel{{Price: 100, Quantity: 5}}, depth.Asks)
}

func TestEngine_FullyFilledMakerLosesItsRegistryEntry(t *testing.T) {
	e := New(nil)
	sec := NewSecurityID()
	maker := NewOrderID()
	taker := NewOrderID()

	e.Submit(NewOrder{OrderID: maker, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 100, Quantity: 5})
	res := e.Submit(NewOrder{OrderID: taker, SecurityID: sec, Side: Sell, OrderType: Limit, Price: 100, Quantity: 5})
	require.Len(t, res.Fills, 1)

	_, ok := e.registry.get(maker)
	assert.False(t, ok, "a fully consumed maker must not leave a registry entry behind")

	cancelRes := e.Cancel(CancelRequest{OrderID: maker})
	assert.Equal(t, CancelNotFound, cancelRes.Outcome)

	// A later order resting in the same price level must not collide
	// with the stale arena slot the filled maker used to occupy.
	fresh := NewOrderID()
	restRes := e.Submit(NewOrder{OrderID: fresh, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 100, Quantity: 3})
	assert.True(t, restRes.Rested)
	assert.Equal(t, []DepthLevel{{Price: 100, Quantity: 3}}, e.Depth(DepthQuery{SecurityID: sec}).Bids)
}

func TestEngine_RejectsZeroQuantity(t *testing.T) {
	e := New(nil)
	res := e.Submit(NewOrder{OrderID: NewOrderID(), SecurityID: NewSecurityID(), Side: Buy, OrderType: Limit, Price: 100, Quantity: 0})
	assert.True(t, res.Rejected)
	assert.False(t, res.Accepted)
}

func TestEngine_RejectsLimitWithoutPrice(t *testing.T) {
	e := New(nil)
	res := e.Submit(NewOrder{OrderID: NewOrderID(), SecurityID: NewSecurityID(), Side: Buy, OrderType: Limit, Quantity: 10})
	assert.True(t, res.Rejected)
}

func TestEngine_MarketWithNoLiquidityIsAcceptedNoop(t *testing.T) {
	e := New(nil)
	res := e.Submit(NewOrder{OrderID: NewOrderID(), SecurityID: NewSecurityID(), Side: Buy, OrderType: Market, Quantity: 10})
	assert.True(t, res.Accepted)
	assert.False(t, res.Rejected)
	assert.Empty(t, res.Fills)
	assert.False(t, res.Rested)
}

func TestEngine_DepthOnUnknownSecurityIsEmpty(t *testing.T) {
	e := New(nil)
	depth := e.Depth(DepthQuery{SecurityID: NewSecurityID()})
	assert.Empty(t, depth.Bids)
	assert.Empty(t, depth.Asks)
}
