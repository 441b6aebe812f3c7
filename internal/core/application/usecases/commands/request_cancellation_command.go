package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/cancellation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRequestCancellationCommandIsNotConstructed = errors.New(
		"RequestCancellationCommand must be created via NewRequestCancellationCommand constructor",
	)
)

// RequestCancellationCommand asks to cancel an order. refundAmount is only
// read for partial refunds.
type RequestCancellationCommand struct {
	orderID      kernel.UUID
	reason       string
	refundType   cancellation.RefundType
	refundAmount int64

	guard guard.ConstructorGuard
}

func NewRequestCancellationCommand(
	orderID kernel.UUID,
	reason string,
	refundType cancellation.RefundType,
	refundAmount int64,
) (RequestCancellationCommand, error) {
	var reasonErr error
	if strings.TrimSpace(reason) == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	_, typeErr := cancellation.ParseRefundType(string(refundType))

	if err := errors.Join(orderID.Validate(), reasonErr, typeErr); err != nil {
		return RequestCancellationCommand{}, err
	}

	return RequestCancellationCommand{
		orderID:      orderID,
		reason:       reason,
		refundType:   refundType,
		refundAmount: refundAmount,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RequestCancellationCommand) Validate() error {
	return c.guard.Validate(ErrRequestCancellationCommandIsNotConstructed)
}

func (c RequestCancellationCommand) OrderID() kernel.UUID                { return c.orderID }
func (c RequestCancellationCommand) Reason() string                      { return c.reason }
func (c RequestCancellationCommand) RefundType() cancellation.RefundType { return c.refundType }
func (c RequestCancellationCommand) RefundAmount() int64                 { return c.refundAmount }
