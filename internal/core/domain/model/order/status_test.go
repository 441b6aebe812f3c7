package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should round-trip every status name", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			parsed, err := order.ParseStatus(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should accept mixed case and padding", func(t *testing.T) {
		s, err := order.ParseStatus("  Ready_To_Ship ")

		require.NoError(t, err)
		assert.Equal(t, order.ReadyToShip, s)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.ParseStatus("lost")

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestStatus_Validate(t *testing.T) {
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(99).Validate())
	assert.Equal(t, "unknown", order.Status(99).String())
	require.NoError(t, order.Delivered.Validate())
}

func TestStatus_Successors(t *testing.T) {
	tests := []struct {
		from order.Status
		want []order.Status
	}{
		{order.Pending, []order.Status{order.Paid, order.Canceled}},
		{order.ToPay, []order.Status{order.Paid, order.Canceled}},
		{order.Paid, []order.Status{order.Processing, order.Canceled}},
		{order.Processing, []order.Status{order.ReadyToShip, order.Packaging, order.Canceled}},
		{order.Packaging, []order.Status{order.ReadyToShip, order.Shipped, order.Canceled}},
		{order.ReadyToShip, []order.Status{order.Shipped, order.Canceled}},
		{order.Shipped, []order.Status{order.InTransit, order.Delivered, order.Canceled}},
		{order.InTransit, []order.Status{order.OutForDelivery, order.Delivered, order.Canceled}},
		{order.OutForDelivery, []order.Status{order.Delivered, order.Canceled}},
		{order.Delivered, []order.Status{order.Completed, order.Canceled}},
		{order.Completed, nil},
		{order.Canceled, nil},
		{order.Unknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, tt.from.Successors())
		})
	}
}

func TestStatus_CanceledReachableFromNonTerminal(t *testing.T) {
	for _, s := range order.AllStatuses() {
		if s.IsTerminal() {
			assert.Empty(t, s.Successors(), s.String())
			continue
		}
		assert.True(t, s.CanTransitionTo(order.Canceled), s.String())
	}
}

func TestStatus_ValidateTransition(t *testing.T) {
	t.Run("should accept a direct edge", func(t *testing.T) {
		require.NoError(t, order.Shipped.ValidateTransition(order.InTransit))
	})

	t.Run("should reject back-edges", func(t *testing.T) {
		err := order.Shipped.ValidateTransition(order.Paid)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, "invalid status transition: shipped -> paid", err.Error())
	})

	t.Run("should reject skipping an edge", func(t *testing.T) {
		require.ErrorIs(t, order.Paid.ValidateTransition(order.Shipped), errs.ErrInvalidTransition)
	})

	t.Run("should reject leaving a terminal status", func(t *testing.T) {
		require.ErrorIs(t, order.Canceled.ValidateTransition(order.Pending), errs.ErrInvalidTransition)
		require.ErrorIs(t, order.Completed.ValidateTransition(order.Canceled), errs.ErrInvalidTransition)
	})

	t.Run("should reject invalid targets as validation errors", func(t *testing.T) {
		require.ErrorIs(t, order.Pending.ValidateTransition(order.Unknown), errs.ErrValidation)
	})
}

func TestStatus_AllowsChangeRequests(t *testing.T) {
	allowed := map[order.Status]bool{
		order.Pending:    true,
		order.ToPay:      true,
		order.Paid:       true,
		order.Processing: true,
	}
	for _, s := range order.AllStatuses() {
		assert.Equal(t, allowed[s], s.AllowsChangeRequests(), s.String())
	}
}

func TestTriggerEvent(t *testing.T) {
	t.Run("should map events to targets", func(t *testing.T) {
		want := map[order.TriggerEvent]order.Status{
			order.PaymentConfirmed:  order.Paid,
			order.VendorProcessing:  order.Processing,
			order.ShipmentCreated:   order.Shipped,
			order.DeliveryConfirmed: order.Delivered,
		}
		for event, status := range want {
			got, err := event.Target()
			require.NoError(t, err)
			assert.Equal(t, status, got)
		}
	})

	t.Run("should apply only where an edge exists", func(t *testing.T) {
		assert.True(t, order.PaymentConfirmed.AppliesTo(order.ToPay))
		assert.False(t, order.PaymentConfirmed.AppliesTo(order.Paid))
		assert.True(t, order.ShipmentCreated.AppliesTo(order.Packaging))
		assert.False(t, order.ShipmentCreated.AppliesTo(order.Processing))
		assert.True(t, order.DeliveryConfirmed.AppliesTo(order.OutForDelivery))
		assert.False(t, order.DeliveryConfirmed.AppliesTo(order.Canceled))
	})

	t.Run("should parse known events", func(t *testing.T) {
		e, err := order.ParseTriggerEvent("Payment_Confirmed")

		require.NoError(t, err)
		assert.Equal(t, order.PaymentConfirmed, e)
	})

	t.Run("should reject unknown events", func(t *testing.T) {
		_, err := order.ParseTriggerEvent("refund_issued")
		require.ErrorIs(t, err, errs.ErrValidation)

		_, err = order.TriggerEvent("refund_issued").Target()
		require.ErrorIs(t, err, errs.ErrValidation)
		assert.False(t, order.TriggerEvent("refund_issued").AppliesTo(order.Pending))
	})
}
