package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecurrenceIsNotConstructed = errs.NewValueIsRequiredError("recurrence must be created via NewRecurrence")

// Frequency is the recurrence unit.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case Daily, Weekly, Monthly:
		return f, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("recurrence type", fmt.Errorf("%q is not supported", s))
	}
}

func (f Frequency) String() string { return string(f) }

// Recurrence repeats a schedule every Interval units until EndDate inclusive.
type Recurrence struct {
	frequency Frequency
	interval  int
	endDate   time.Time
	guard     guard.ConstructorGuard
}

// NewRecurrence validates interval >= 1 and a non-zero end date.
func NewRecurrence(frequency Frequency, interval int, endDate time.Time) (Recurrence, error) {
	r := Recurrence{
		frequency: frequency,
		interval:  interval,
		endDate:   endDate.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	var freqErr, intervalErr, endErr error
	if _, err := ParseFrequency(string(frequency)); err != nil {
		freqErr = err
	}
	if interval < 1 {
		intervalErr = errs.NewValueIsOutOfRangeError("recurrence interval", interval, 1, "unbounded")
	}
	if endDate.IsZero() {
		endErr = errs.NewValueIsRequiredError("recurrence end date")
	}
	if err := errors.Join(freqErr, intervalErr, endErr); err != nil {
		return Recurrence{}, err
	}

	return r, nil
}

func (r Recurrence) Validate() error {
	return r.guard.Validate(ErrRecurrenceIsNotConstructed)
}

func (r Recurrence) Frequency() Frequency { return r.frequency }
func (r Recurrence) Interval() int        { return r.interval }
func (r Recurrence) EndDate() time.Time   { return r.endDate }

// Next adds Interval units to from. Monthly steps use calendar months, so
// Jan 31 + 1 month normalizes to early March.
func (r Recurrence) Next(from time.Time) time.Time {
	switch r.frequency {
	case Daily:
		return from.AddDate(0, 0, r.interval)
	case Weekly:
		return from.AddDate(0, 0, 7*r.interval)
	case Monthly:
		return from.AddDate(0, r.interval, 0)
	default:
		return from
	}
}

// Occurrences lists the execution times starting at first, up to and
// including the end date.
func (r Recurrence) Occurrences(first time.Time) []time.Time {
	if r.Validate() != nil {
		return nil
	}
	var out []time.Time
	for t := first; !t.After(r.endDate); t = r.Next(t) {
		out = append(out, t)
	}
	return out
}
