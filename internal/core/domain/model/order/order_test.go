package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func mustAddress(t *testing.T, postcode string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("1 Main St", "", "Springfield", postcode, "US")
	require.NoError(t, err)
	return a
}

func mustItem(t *testing.T, sku string, qty int, price int64) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), sku, qty, price)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T, status order.Status, items ...order.LineItem) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []order.LineItem{mustItem(t, "SKU-1", 2, 1500), mustItem(t, "SKU-2", 1, 500)}
	}
	o, err := order.RestoreOrder(order.Snapshot{
		ID:        kernel.NewUUID(),
		BuyerID:   kernel.NewUUID(),
		VendorID:  kernel.NewUUID(),
		Status:    status,
		Currency:  "USD",
		Address:   mustAddress(t, "12345"),
		Items:     items,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	id, buyer, vendor := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	addr := mustAddress(t, "12345")

	t.Run("should create order with creation transition", func(t *testing.T) {
		items := []order.LineItem{mustItem(t, "SKU-1", 2, 1500), mustItem(t, "SKU-2", 3, 100)}

		o, created, err := order.NewOrder(id, buyer, vendor, "usd", addr, items, order.ToPay, "user-1", now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.ToPay, o.Status())
		assert.Equal(t, "USD", o.Currency())
		assert.Equal(t, int64(3300), o.TotalAmount())
		assert.Equal(t, "3300 USD", o.Total().String())
		assert.Len(t, o.Items(), 2)

		assert.Nil(t, created.From())
		assert.Equal(t, order.ToPay, created.To())
		assert.Equal(t, order.Actor("user-1"), created.Actor())
		assert.False(t, created.Automated())
		assert.True(t, created.OrderID().IsEqual(id))
	})

	t.Run("should reject non-initial status", func(t *testing.T) {
		_, _, err := order.NewOrder(id, buyer, vendor, "USD", addr,
			[]order.LineItem{mustItem(t, "SKU-1", 1, 1)}, order.Paid, "user-1", now)

		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("should reject empty or zero quantity items", func(t *testing.T) {
		_, _, err := order.NewOrder(id, buyer, vendor, "USD", addr, nil, order.Pending, "user-1", now)
		require.ErrorIs(t, err, errs.ErrValidation)

		_, _, err = order.NewOrder(id, buyer, vendor, "USD", addr,
			[]order.LineItem{mustItem(t, "SKU-1", 0, 100)}, order.Pending, "user-1", now)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("should join all field errors", func(t *testing.T) {
		var zeroID kernel.UUID
		var zeroAddr kernel.Address

		_, _, err := order.NewOrder(zeroID, buyer, vendor, "dollars", zeroAddr,
			[]order.LineItem{mustItem(t, "SKU-1", 1, 1)}, order.Pending, "user-1", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "address must be created")
		assert.Contains(t, err.Error(), "currency")
	})
}

func TestOrder_ZeroValue(t *testing.T) {
	var o *order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should move along an edge and record it", func(t *testing.T) {
		o := newTestOrder(t, order.Paid)
		later := now.Add(time.Minute)

		tr, err := o.ChangeStatus(order.Processing, "user-7", order.TransitionMetadata{Reason: "vendor accepted"}, later)

		require.NoError(t, err)
		assert.Equal(t, order.Processing, o.Status())
		assert.Equal(t, later, o.UpdatedAt())
		require.NotNil(t, tr.From())
		assert.Equal(t, order.Paid, *tr.From())
		assert.Equal(t, order.Processing, tr.To())
		assert.Equal(t, "vendor accepted", tr.Metadata().Reason)
		assert.False(t, tr.Automated())
	})

	t.Run("should flag automated actor", func(t *testing.T) {
		o := newTestOrder(t, order.Pending)

		tr, err := o.ChangeStatus(order.Paid, order.AutomatedActor,
			order.TransitionMetadata{Trigger: order.PaymentConfirmed}, now)

		require.NoError(t, err)
		assert.True(t, tr.Automated())
		assert.Equal(t, order.PaymentConfirmed, tr.Metadata().Trigger)
	})

	t.Run("should leave order untouched on invalid edge", func(t *testing.T) {
		o := newTestOrder(t, order.Shipped)

		tr, err := o.ChangeStatus(order.Processing, "user-1", order.TransitionMetadata{}, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, tr)
		assert.Equal(t, order.Shipped, o.Status())
	})

	t.Run("should require an actor", func(t *testing.T) {
		o := newTestOrder(t, order.Pending)

		_, err := o.ChangeStatus(order.Paid, "", order.TransitionMetadata{}, now)

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestOrder_SetLineQuantities(t *testing.T) {
	a := mustItem(t, "SKU-A", 2, 1000)
	b := mustItem(t, "SKU-B", 1, 500)

	t.Run("should set absolute quantities and recompute total", func(t *testing.T) {
		o := newTestOrder(t, order.Processing, a, b)

		err := o.SetLineQuantities([]order.LineQuantity{{LineID: a.ID(), Quantity: 5}, {LineID: b.ID(), Quantity: 0}}, now)

		require.NoError(t, err)
		item, ok := o.Item(a.ID())
		require.True(t, ok)
		assert.Equal(t, 5, item.Quantity())
		assert.Equal(t, int64(5000), o.TotalAmount())
		assert.Equal(t, order.Processing, o.Status())
	})

	t.Run("should reject negative quantity", func(t *testing.T) {
		o := newTestOrder(t, order.Pending, a, b)

		err := o.SetLineQuantities([]order.LineQuantity{{LineID: a.ID(), Quantity: -1}}, now)

		require.ErrorIs(t, err, errs.ErrValidation)
		item, _ := o.Item(a.ID())
		assert.Equal(t, 2, item.Quantity())
	})

	t.Run("should reject zeroing every line", func(t *testing.T) {
		o := newTestOrder(t, order.Pending, a, b)

		err := o.SetLineQuantities([]order.LineQuantity{{LineID: a.ID(), Quantity: 0}, {LineID: b.ID(), Quantity: 0}}, now)

		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("should reject unknown line", func(t *testing.T) {
		o := newTestOrder(t, order.Pending, a, b)

		err := o.SetLineQuantities([]order.LineQuantity{{LineID: kernel.NewUUID(), Quantity: 1}}, now)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should refuse once order left the modifiable statuses", func(t *testing.T) {
		o := newTestOrder(t, order.Packaging, a, b)

		err := o.SetLineQuantities([]order.LineQuantity{{LineID: a.ID(), Quantity: 1}}, now)

		require.ErrorIs(t, err, errs.ErrNotModifiable)
	})
}

func TestOrder_ChangeAddressAndDeliveryTime(t *testing.T) {
	t.Run("should replace address", func(t *testing.T) {
		o := newTestOrder(t, order.Paid)
		addr := mustAddress(t, "sw1a 1aa")

		require.NoError(t, o.ChangeAddress(addr, now))
		assert.True(t, o.Address().IsEqual(addr))
	})

	t.Run("should reject zero address", func(t *testing.T) {
		o := newTestOrder(t, order.Paid)

		require.ErrorIs(t, o.ChangeAddress(kernel.Address{}, now), errs.ErrValidation)
	})

	t.Run("should set a future delivery time", func(t *testing.T) {
		o := newTestOrder(t, order.Pending)
		at := now.Add(48 * time.Hour)

		require.NoError(t, o.ChangeDeliveryTime(at, now))
		require.NotNil(t, o.DeliveryTime())
		assert.True(t, at.Equal(*o.DeliveryTime()))
	})

	t.Run("should reject a past delivery time", func(t *testing.T) {
		o := newTestOrder(t, order.Pending)

		require.ErrorIs(t, o.ChangeDeliveryTime(now.Add(-time.Hour), now), errs.ErrValidation)
		assert.Nil(t, o.DeliveryTime())
	})

	t.Run("should refuse on shipped order", func(t *testing.T) {
		o := newTestOrder(t, order.Shipped)

		require.ErrorIs(t, o.ChangeAddress(mustAddress(t, "99999"), now), errs.ErrNotModifiable)
	})
}

func TestOrder_AddAndRemoveLineItems(t *testing.T) {
	a := mustItem(t, "SKU-A", 1, 1000)

	t.Run("should add then remove a line", func(t *testing.T) {
		o := newTestOrder(t, order.Pending, a)
		extra := mustItem(t, "SKU-X", 2, 250)

		require.NoError(t, o.AddLineItem(extra, now))
		assert.Equal(t, int64(1500), o.TotalAmount())

		require.NoError(t, o.RemoveLineItem(extra.ID(), now))
		assert.Equal(t, int64(1000), o.TotalAmount())
	})

	t.Run("should reject adding zero quantity or duplicate line", func(t *testing.T) {
		o := newTestOrder(t, order.Pending, a)

		require.ErrorIs(t, o.AddLineItem(mustItem(t, "SKU-Z", 0, 1), now), errs.ErrValidation)
		require.ErrorIs(t, o.AddLineItem(a, now), errs.ErrValidation)
	})

	t.Run("should keep at least one line", func(t *testing.T) {
		o := newTestOrder(t, order.Pending, a)

		require.ErrorIs(t, o.RemoveLineItem(a.ID(), now), errs.ErrValidation)
		assert.Len(t, o.Items(), 1)
	})
}

func TestValidateHistory(t *testing.T) {
	t.Run("should accept a full walk", func(t *testing.T) {
		id, buyer, vendor := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		o, created, err := order.NewOrder(id, buyer, vendor, "USD", mustAddress(t, "12345"),
			[]order.LineItem{mustItem(t, "SKU-1", 1, 100)}, order.Pending, "user-1", now)
		require.NoError(t, err)

		history := []*order.Transition{created}
		for _, to := range []order.Status{
			order.Paid, order.Processing, order.Packaging, order.Shipped,
			order.InTransit, order.OutForDelivery, order.Delivered, order.Completed,
		} {
			tr, err := o.ChangeStatus(to, order.AutomatedActor, order.TransitionMetadata{}, now)
			require.NoError(t, err)
			history = append(history, tr)
		}

		require.NoError(t, order.ValidateHistory(history))
		require.NoError(t, order.ValidateHistory(nil))
	})

	t.Run("should reject a skipped edge", func(t *testing.T) {
		pending, shipped := order.Pending, order.Shipped
		orderID := kernel.NewUUID()
		created, err := order.RestoreTransition(kernel.NewUUID(), orderID, nil, pending, "u", false, order.TransitionMetadata{}, now)
		require.NoError(t, err)
		skip, err := order.RestoreTransition(kernel.NewUUID(), orderID, &pending, shipped, "u", false, order.TransitionMetadata{}, now)
		require.NoError(t, err)

		require.ErrorIs(t, order.ValidateHistory([]*order.Transition{created, skip}), errs.ErrInvalidTransition)
	})

	t.Run("should reject a history that does not start with creation", func(t *testing.T) {
		pending := order.Pending
		tr, err := order.RestoreTransition(kernel.NewUUID(), kernel.NewUUID(), &pending, order.Paid, "u", false, order.TransitionMetadata{}, now)
		require.NoError(t, err)

		require.ErrorIs(t, order.ValidateHistory([]*order.Transition{tr}), errs.ErrValidation)
	})

	t.Run("should reject a broken chain", func(t *testing.T) {
		pending, paid := order.Pending, order.Paid
		orderID := kernel.NewUUID()
		created, _ := order.RestoreTransition(kernel.NewUUID(), orderID, nil, pending, "u", false, order.TransitionMetadata{}, now)
		broken, _ := order.RestoreTransition(kernel.NewUUID(), orderID, &paid, order.Processing, "u", false, order.TransitionMetadata{}, now)

		require.ErrorIs(t, order.ValidateHistory([]*order.Transition{created, broken}), errs.ErrValidation)
	})
}

func TestNewActor(t *testing.T) {
	a, err := order.NewActor(" user-1 ")
	require.NoError(t, err)
	assert.Equal(t, "user-1", a.String())

	_, err = order.NewActor("  ")
	require.ErrorIs(t, err, errs.ErrValidation)
}
