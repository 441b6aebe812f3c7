// Package shipping holds the value types exchanged with a carrier: rate
// queries and quotes, shipments, tracking and health reports.
package shipping

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Source tells the caller how trustworthy a result is.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceCached   Source = "cached"
	SourceFallback Source = "fallback"
)

// Dimensions of a parcel in centimetres.
type Dimensions struct {
	LengthCm int
	WidthCm  int
	HeightCm int
}

// RateQuery asks for prices of sending one parcel.
type RateQuery struct {
	OriginPostcode      string
	DestinationPostcode string
	WeightGrams         int
	Dimensions          Dimensions
	CashOnDelivery      bool
}

// NewRateQuery normalizes postcodes and validates the parcel.
func NewRateQuery(origin, destination string, weightGrams int, dims Dimensions, cod bool) (RateQuery, error) {
	q := RateQuery{
		OriginPostcode:      kernel.NormalizePostcode(origin),
		DestinationPostcode: kernel.NormalizePostcode(destination),
		WeightGrams:         weightGrams,
		Dimensions:          dims,
		CashOnDelivery:      cod,
	}
	if err := q.Validate(); err != nil {
		return RateQuery{}, err
	}
	return q, nil
}

func (q RateQuery) Validate() error {
	var weightErr, dimErr error
	if q.WeightGrams <= 0 {
		weightErr = errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%d g is not greater than 0", q.WeightGrams))
	}
	if q.Dimensions.LengthCm < 0 || q.Dimensions.WidthCm < 0 || q.Dimensions.HeightCm < 0 {
		dimErr = errs.NewValueIsInvalidErrorWithCause("dimensions", errors.New("dimensions must not be negative"))
	}
	return errors.Join(
		kernel.ValidatePostcode(q.OriginPostcode),
		kernel.ValidatePostcode(q.DestinationPostcode),
		weightErr,
		dimErr,
	)
}

// CacheKey is the canonical form used to cache quotes:
// origin|destination|weight|LxWxH|cod.
func (q RateQuery) CacheKey() string {
	return fmt.Sprintf("%s|%s|%d|%dx%dx%d|%t",
		strings.ReplaceAll(q.OriginPostcode, " ", ""),
		strings.ReplaceAll(q.DestinationPostcode, " ", ""),
		q.WeightGrams,
		q.Dimensions.LengthCm, q.Dimensions.WidthCm, q.Dimensions.HeightCm,
		q.CashOnDelivery)
}

// RouteKey identifies the origin/destination pair for rate limiting.
func (q RateQuery) RouteKey() string {
	return strings.ReplaceAll(q.OriginPostcode, " ", "") + "|" + strings.ReplaceAll(q.DestinationPostcode, " ", "")
}

// SameArea reports whether origin and destination postcodes match.
func (q RateQuery) SameArea() bool {
	return strings.ReplaceAll(q.OriginPostcode, " ", "") == strings.ReplaceAll(q.DestinationPostcode, " ", "")
}

// Quote is one priced service level.
type Quote struct {
	Carrier  string          `json:"carrier"`
	Service  string          `json:"service"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	MinDays  int             `json:"min_days"`
	MaxDays  int             `json:"max_days"`
}

// RateResult is the answer to a rate query.
type RateResult struct {
	Quotes    []Quote
	Source    Source
	FetchedAt time.Time
}
