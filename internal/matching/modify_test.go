package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Scenario3_InplaceThenRequantizedGoesToBackOfQueue(t *testing.T) {
	e := New(nil)
	sec := NewSecurityID()
	a := NewOrderID()

	e.Submit(NewOrder{OrderID: a, SecurityID: sec, Side: Sell, OrderType: Limit, Price: 50, Quantity: 10})

	qty6 := uint32(6)
	outcome := e.Modify(ModifyRequest{OrderID: a, NewQuantity: &qty6})
	assert.Equal(t, ModifyInplace, outcome)
	assert.Equal(t, []DepthLevel{{Price: 50, Quantity: 6}}, e.Depth(DepthQuery{SecurityID: sec}).Asks)

	qty20 := uint32(20)
	outcome = e.Modify(ModifyRequest{OrderID: a, NewQuantity: &qty20})
	assert.Equal(t, ModifyRequantized, outcome)
	assert.Equal(t, []DepthLevel{{Price: 50, Quantity: 6}}, e.Depth(DepthQuery{SecurityID: sec}).Asks,
		"resubmission rests the same surviving current_quantity, not the new initial_quantity")

	b := NewOrderID()
	e.Submit(NewOrder{OrderID: b, SecurityID: sec, Side: Sell, OrderType: Limit, Price: 50, Quantity: 3})

	loc, ok := e.registry.get(a)
	require.True(t, ok)
	book := e.bookFor(sec)
	level, ok := book.Ask.best()
	require.True(t, ok)
	assert.Equal(t, uint32(50), level.price)
	assert.Equal(t, loc.index, level.head, "the requantized A sits ahead of B: A was resubmitted before B arrived")

	var order []OrderID
	idx := level.head
	for idx != noIndex {
		node := book.Ask.arena.get(idx)
		order = append(order, node.id)
		idx = node.next
	}
	assert.Equal(t, []OrderID{a, b}, order)
}

func TestEngine_ModifyRepricedForfeitsPriorityAndMovesPrice(t *testing.T) {
	e := New(nil)
	sec := NewSecurityID()
	a := NewOrderID()

	e.Submit(NewOrder{OrderID: a, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 100, Quantity: 5})

	newPrice := uint32(99)
	outcome := e.Modify(ModifyRequest{OrderID: a, NewPrice: &newPrice})
	assert.Equal(t, ModifyRepriced, outcome)

	depth := e.Depth(DepthQuery{SecurityID: sec})
	assert.Equal(t, []DepthLevel{{Price: 99, Quantity: 5}}, depth.Bids)
}

func TestEngine_ModifyBothChangesPriceAndQuantity(t *testing.T) {
	e := New(nil)
	sec := NewSecurityID()
	a := NewOrderID()

	e.Submit(NewOrder{OrderID: a, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 100, Quantity: 5})

	newPrice := uint32(98)
	newQty := uint32(12)
	outcome := e.Modify(ModifyRequest{OrderID: a, NewPrice: &newPrice, NewQuantity: &newQty})
	assert.Equal(t, ModifyBoth, outcome)

	depth := e.Depth(DepthQuery{SecurityID: sec})
	assert.Equal(t, []DepthLevel{{Price: 98, Quantity: 5}}, depth.Bids,
		"Both resubmits with old_current_qty resting, per the open-question resolution")
}

func TestEngine_ModifyRepricedThatCrossesMarketExecutes(t *testing.T) {
	e := New(nil)
	sec := NewSecurityID()
	resting := NewOrderID()
	ask := NewOrderID()

	e.Submit(NewOrder{OrderID: resting, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 90, Quantity: 5})
	e.Submit(NewOrder{OrderID: ask, SecurityID: sec, Side: Sell, OrderType: Limit, Price: 100, Quantity: 5})

	newPrice := uint32(100)
	outcome := e.Modify(ModifyRequest{OrderID: resting, NewPrice: &newPrice})
	assert.Equal(t, ModifyRepriced, outcome)

	depth := e.Depth(DepthQuery{SecurityID: sec})
	assert.Empty(t, depth.Bids)
	assert.Empty(t, depth.Asks)

	_, ok := e.registry.get(resting)
	assert.False(t, ok, "fully executed resubmission must not leave a registry entry")
}

func TestEngine_ModifyNotFound(t *testing.T) {
	e := New(nil)
	qty := uint32(1)
	outcome := e.Modify(ModifyRequest{OrderID: NewOrderID(), NewQuantity: &qty})
	assert.Equal(t, ModifyNotFound, outcome)
}

func TestEngine_ModifyNoopWhenBothFieldsAbsent(t *testing.T) {
	e := New(nil)
	sec := NewSecurityID()
	a := NewOrderID()
	e.Submit(NewOrder{OrderID: a, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 100, Quantity: 5})

	outcome := e.Modify(ModifyRequest{OrderID: a})
	assert.Equal(t, ModifyNoop, outcome)
}

func TestEngine_CancelThenArenaFreeListGrowsByOne(t *testing.T) {
	e := New(nil)
	sec := NewSecurityID()
	a := NewOrderID()
	e.Submit(NewOrder{OrderID: a, SecurityID: sec, Side: Buy, OrderType: Limit, Price: 100, Quantity: 5})

	book := e.bookFor(sec)
	before := book.Bid.arena.freeLen()
	e.Cancel(CancelRequest{OrderID: a})
	after := book.Bid.arena.freeLen()

	assert.Equal(t, before+1, after)
	assert.Equal(t, 0, e.registry.len())
}
