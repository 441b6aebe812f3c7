package cancellation_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/cancellation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func total(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount, "USD")
	require.NoError(t, err)
	return m
}

func newRequest(t *testing.T, refundType cancellation.RefundType, amount int64) (*cancellation.Request, error) {
	t.Helper()
	return cancellation.NewRequest(kernel.NewUUID(), kernel.NewUUID(), total(t, 12000), "changed my mind", refundType, amount, now)
}

func TestNewRequest_RefundRules(t *testing.T) {
	tests := []struct {
		name       string
		refundType cancellation.RefundType
		amount     int64
		want       int64
		wantErr    error
	}{
		{"full forces the order total", cancellation.RefundFull, 5, 12000, nil},
		{"none forces zero", cancellation.RefundNone, 700, 0, nil},
		{"partial inside the range", cancellation.RefundPartial, 3000, 3000, nil},
		{"partial equal to total", cancellation.RefundPartial, 12000, 12000, nil},
		{"partial of zero", cancellation.RefundPartial, 0, 0, errs.ErrValueIsOutOfRange},
		{"partial negative", cancellation.RefundPartial, -1, 0, errs.ErrValueIsOutOfRange},
		{"partial above total", cancellation.RefundPartial, 12001, 0, errs.ErrValueIsOutOfRange},
		{"unknown refund type", cancellation.RefundType("store_credit"), 10, 0, errs.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := newRequest(t, tt.refundType, tt.amount)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, errs.ErrValidation)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Refund().Amount())
			assert.Equal(t, "USD", r.Refund().Currency())
			assert.Equal(t, cancellation.StatusPending, r.Status())
		})
	}
}

func TestNewRequest_RequiresReason(t *testing.T) {
	_, err := cancellation.NewRequest(kernel.NewUUID(), kernel.NewUUID(), total(t, 100), "", cancellation.RefundFull, 0, now)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRequest_Lifecycle(t *testing.T) {
	t.Run("should approve then process", func(t *testing.T) {
		r, err := newRequest(t, cancellation.RefundFull, 0)
		require.NoError(t, err)

		require.NoError(t, r.Decide(true, now))
		assert.Equal(t, cancellation.StatusApproved, r.Status())
		require.NoError(t, r.MarkProcessed(now.Add(time.Minute)))

		assert.True(t, r.IsProcessed())
		require.NotNil(t, r.ProcessedAt())
		assert.Equal(t, now.Add(time.Minute), *r.ProcessedAt())
	})

	t.Run("should not process a pending or rejected request", func(t *testing.T) {
		r, err := newRequest(t, cancellation.RefundNone, 0)
		require.NoError(t, err)

		require.ErrorIs(t, r.MarkProcessed(now), errs.ErrInvalidState)
		require.NoError(t, r.Decide(false, now))
		assert.Equal(t, cancellation.StatusRejected, r.Status())
		require.ErrorIs(t, r.MarkProcessed(now), errs.ErrInvalidState)
	})

	t.Run("should decide only once", func(t *testing.T) {
		r, err := newRequest(t, cancellation.RefundNone, 0)
		require.NoError(t, err)
		require.NoError(t, r.Decide(true, now))

		err = r.Decide(false, now)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, "invalid state: cannot reject cancellation request in approved state", err.Error())
	})
}

func TestRestoreRequest(t *testing.T) {
	decided := now.Add(time.Hour)
	r, err := cancellation.RestoreRequest(cancellation.Snapshot{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), Reason: "late",
		RefundType: cancellation.RefundPartial, RefundAmount: 250, Currency: "EUR",
		Status: cancellation.StatusApproved, CreatedAt: now, DecidedAt: &decided,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(250), r.Refund().Amount())
	assert.Equal(t, cancellation.StatusApproved, r.Status())

	_, err = cancellation.RestoreRequest(cancellation.Snapshot{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), RefundType: "full",
		Currency: "EUR", Status: "lost",
	})
	require.ErrorIs(t, err, errs.ErrValidation)
}
