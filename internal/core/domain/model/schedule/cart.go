package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCartIsNotConstructed        = errs.NewValueIsRequiredError("cart snapshot must be created via NewCartSnapshot")
	ErrPreferencesIsNotConstructed = errs.NewValueIsRequiredError("delivery preferences must be created via NewDeliveryPreferences")
)

// CartLine is one product line frozen at scheduling time.
type CartLine struct {
	SKU       string
	Quantity  int
	UnitPrice int64
}

// CartSnapshot is the frozen cart a schedule materializes from.
type CartSnapshot struct {
	lines    []CartLine
	currency string
	guard    guard.ConstructorGuard
}

// NewCartSnapshot requires at least one line, positive quantities and
// non-negative prices.
func NewCartSnapshot(lines []CartLine, currency string) (CartSnapshot, error) {
	if len(lines) == 0 {
		return CartSnapshot{}, errs.NewValueIsRequiredError("cart")
	}
	money, err := kernel.NewMoney(0, currency)
	if err != nil {
		return CartSnapshot{}, err
	}

	normalized := make([]CartLine, 0, len(lines))
	for i, l := range lines {
		l.SKU = strings.TrimSpace(l.SKU)
		var skuErr, qtyErr, priceErr error
		if l.SKU == "" {
			skuErr = errs.NewValueIsRequiredError(fmt.Sprintf("cart line %d sku", i))
		}
		if l.Quantity <= 0 {
			qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("cart line %d: %d is not greater than 0", i, l.Quantity))
		}
		if l.UnitPrice < 0 {
			priceErr = errs.NewValueIsInvalidErrorWithCause("unit price",
				fmt.Errorf("cart line %d: %d is negative", i, l.UnitPrice))
		}
		if err := errors.Join(skuErr, qtyErr, priceErr); err != nil {
			return CartSnapshot{}, err
		}
		normalized = append(normalized, l)
	}

	return CartSnapshot{lines: normalized, currency: money.Currency(), guard: guard.NewConstructorGuard()}, nil
}

func (c CartSnapshot) Validate() error {
	return c.guard.Validate(ErrCartIsNotConstructed)
}

// Lines returns a copy of the cart lines.
func (c CartSnapshot) Lines() []CartLine {
	return append([]CartLine(nil), c.lines...)
}

func (c CartSnapshot) Currency() string { return c.currency }

// Total is the computed cart total in minor units.
func (c CartSnapshot) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += int64(l.Quantity) * l.UnitPrice
	}
	return total
}

// DeliveryPreferences describe where and when scheduled orders are delivered.
type DeliveryPreferences struct {
	address     kernel.Address
	windowStart *time.Time
	windowEnd   *time.Time
	notes       string
	guard       guard.ConstructorGuard
}

// NewDeliveryPreferences requires an address. The optional time window must
// be ordered when both ends are set.
func NewDeliveryPreferences(address kernel.Address, windowStart, windowEnd *time.Time, notes string) (DeliveryPreferences, error) {
	if err := address.Validate(); err != nil {
		return DeliveryPreferences{}, errs.NewValueIsRequiredErrorWithCause("delivery address", err)
	}
	if windowStart != nil && windowEnd != nil && windowEnd.Before(*windowStart) {
		return DeliveryPreferences{}, errs.NewValueIsInvalidErrorWithCause("delivery window",
			errors.New("window end is before window start"))
	}
	return DeliveryPreferences{
		address:     address,
		windowStart: windowStart,
		windowEnd:   windowEnd,
		notes:       strings.TrimSpace(notes),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (p DeliveryPreferences) Validate() error {
	return p.guard.Validate(ErrPreferencesIsNotConstructed)
}

func (p DeliveryPreferences) Address() kernel.Address { return p.address }
func (p DeliveryPreferences) WindowStart() *time.Time { return p.windowStart }
func (p DeliveryPreferences) WindowEnd() *time.Time   { return p.windowEnd }
func (p DeliveryPreferences) Notes() string           { return p.notes }
