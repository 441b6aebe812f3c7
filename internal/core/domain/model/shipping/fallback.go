package shipping

import "github.com/shopspring/decimal"

const FallbackCarrier = "estimate"

var (
	fallbackBasePrice     = decimal.RequireFromString("5.00")
	crossAreaMultiplier   = decimal.RequireFromString("1.5")
	expressMultiplier     = decimal.RequireFromString("1.8")
	gramsPerKilogram      = decimal.NewFromInt(1000)
	minimumBillableWeight = decimal.NewFromInt(1)
)

// FallbackQuotes synthesizes standard and express quotes when the carrier
// cannot be asked:
//
//	standard = 5.00 * max(1, kg) * (1.5 if postcodes differ else 1)
//	express  = standard * 1.8
func FallbackQuotes(q RateQuery, currency string) []Quote {
	kg := decimal.NewFromInt(int64(q.WeightGrams)).Div(gramsPerKilogram)
	kg = decimal.Max(minimumBillableWeight, kg)

	standard := fallbackBasePrice.Mul(kg)
	if !q.SameArea() {
		standard = standard.Mul(crossAreaMultiplier)
	}
	express := standard.Mul(expressMultiplier)

	return []Quote{
		{
			Carrier:  FallbackCarrier,
			Service:  "standard",
			Price:    standard.Round(2),
			Currency: currency,
			MinDays:  3,
			MaxDays:  5,
		},
		{
			Carrier:  FallbackCarrier,
			Service:  "express",
			Price:    express.Round(2),
			Currency: currency,
			MinDays:  1,
			MaxDays:  2,
		},
	}
}
