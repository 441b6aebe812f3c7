package shipping_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/shipping"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateQuery(t *testing.T) {
	t.Run("should normalize and build keys", func(t *testing.T) {
		q, err := shipping.NewRateQuery(" sw1a  1aa", "10115", 2500, shipping.Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 10}, true)

		require.NoError(t, err)
		assert.Equal(t, "SW1A 1AA", q.OriginPostcode)
		assert.Equal(t, "SW1A1AA|10115|2500|30x20x10|true", q.CacheKey())
		assert.Equal(t, "SW1A1AA|10115", q.RouteKey())
		assert.False(t, q.SameArea())
	})

	t.Run("should reject bad parcels", func(t *testing.T) {
		_, err := shipping.NewRateQuery("", "10115", 0, shipping.Dimensions{LengthCm: -1}, false)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Contains(t, err.Error(), "postcode")
		assert.Contains(t, err.Error(), "weight")
		assert.Contains(t, err.Error(), "dimensions")
	})
}

func TestFallbackQuotes(t *testing.T) {
	tests := []struct {
		name         string
		origin       string
		destination  string
		weightGrams  int
		wantStandard string
		wantExpress  string
	}{
		{"same postcode two kilos", "10115", "10115", 2000, "10.00", "18.00"},
		{"light parcel bills one kilo", "10115", "10115", 300, "5.00", "9.00"},
		{"different postcodes", "10115", "80331", 2000, "15.00", "27.00"},
		{"fractional weight rounds to cents", "10115", "80331", 1234, "9.26", "16.66"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := shipping.NewRateQuery(tt.origin, tt.destination, tt.weightGrams, shipping.Dimensions{}, false)
			require.NoError(t, err)

			quotes := shipping.FallbackQuotes(q, "EUR")

			require.Len(t, quotes, 2)
			assert.Equal(t, "standard", quotes[0].Service)
			assert.Equal(t, tt.wantStandard, quotes[0].Price.StringFixed(2))
			assert.Equal(t, 3, quotes[0].MinDays)
			assert.Equal(t, 5, quotes[0].MaxDays)
			assert.Equal(t, "express", quotes[1].Service)
			assert.Equal(t, tt.wantExpress, quotes[1].Price.StringFixed(2))
			assert.Equal(t, 1, quotes[1].MinDays)
			assert.Equal(t, 2, quotes[1].MaxDays)
			assert.Equal(t, "EUR", quotes[1].Currency)
		})
	}
}

func TestShipmentRequest_Validate(t *testing.T) {
	require.ErrorIs(t, shipping.ShipmentRequest{OrderID: "o-1"}.Validate(), errs.ErrValueIsRequired)

	err := shipping.ShipmentRequest{Items: []shipping.ShipmentItem{{SKU: "A", Quantity: 0}}}.Validate()
	require.ErrorIs(t, err, errs.ErrValidation)

	require.NoError(t, shipping.ShipmentRequest{
		OrderID: "o-1",
		Items:   []shipping.ShipmentItem{{SKU: "A", Quantity: 1, WeightGrams: 100}},
	}.Validate())
}
