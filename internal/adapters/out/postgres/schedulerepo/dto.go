// Package schedulerepo persists scheduled orders. The cart and delivery
// preferences are stored as jsonb documents.
package schedulerepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/schedule"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ScheduledOrderDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	BuyerID            uuid.UUID      `gorm:"type:uuid;not null;index"`
	VendorID           uuid.UUID      `gorm:"type:uuid;not null"`
	ScheduledFor       time.Time      `gorm:"type:timestamptz;not null"`
	RecurrenceType     *string        `gorm:"type:varchar(16)"`
	RecurrenceInterval *int           `gorm:""`
	RecurrenceEndDate  *time.Time     `gorm:"type:timestamptz"`
	Cart               datatypes.JSON `gorm:"type:jsonb;not null"`
	Preferences        datatypes.JSON `gorm:"type:jsonb;not null"`
	Status             string         `gorm:"type:varchar(16);not null"`
	NextExecutionAt    time.Time      `gorm:"type:timestamptz;not null"`
	LastExecutedAt     *time.Time     `gorm:"type:timestamptz"`
	Executions         int            `gorm:"not null"`
	LastOrderID        *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt          time.Time      `gorm:"type:timestamptz;not null;autoCreateTime:false"`
	UpdatedAt          time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

func (ScheduledOrderDTO) TableName() string {
	return "scheduled_orders"
}

type cartJSON struct {
	Currency string         `json:"currency"`
	Lines    []cartLineJSON `json:"lines"`
}

type cartLineJSON struct {
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type preferencesJSON struct {
	Address     addressJSON `json:"address"`
	WindowStart *time.Time  `json:"window_start,omitempty"`
	WindowEnd   *time.Time  `json:"window_end,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

type addressJSON struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

func fromDomain(s *schedule.ScheduledOrder) (ScheduledOrderDTO, error) {
	cart := cartJSON{Currency: s.Cart().Currency()}
	for _, line := range s.Cart().Lines() {
		cart.Lines = append(cart.Lines, cartLineJSON{SKU: line.SKU, Quantity: line.Quantity, UnitPrice: line.UnitPrice})
	}
	cartData, err := json.Marshal(cart)
	if err != nil {
		return ScheduledOrderDTO{}, err
	}

	prefs := s.Preferences()
	addr := prefs.Address()
	prefsData, err := json.Marshal(preferencesJSON{
		Address: addressJSON{
			Line1:    addr.Line1(),
			Line2:    addr.Line2(),
			City:     addr.City(),
			Postcode: addr.Postcode(),
			Country:  addr.Country(),
		},
		WindowStart: prefs.WindowStart(),
		WindowEnd:   prefs.WindowEnd(),
		Notes:       prefs.Notes(),
	})
	if err != nil {
		return ScheduledOrderDTO{}, err
	}

	dto := ScheduledOrderDTO{
		ID:              s.ID().Bytes(),
		BuyerID:         s.BuyerID().Bytes(),
		VendorID:        s.VendorID().Bytes(),
		ScheduledFor:    s.ScheduledFor(),
		Cart:            datatypes.JSON(cartData),
		Preferences:     datatypes.JSON(prefsData),
		Status:          s.Status().String(),
		NextExecutionAt: s.NextExecutionAt(),
		LastExecutedAt:  s.LastExecutedAt(),
		Executions:      s.Executions(),
		CreatedAt:       s.CreatedAt(),
		UpdatedAt:       s.UpdatedAt(),
	}
	if r := s.Recurrence(); r != nil {
		kind, interval, end := r.Frequency().String(), r.Interval(), r.EndDate()
		dto.RecurrenceType, dto.RecurrenceInterval, dto.RecurrenceEndDate = &kind, &interval, &end
	}
	if id := s.LastOrderID(); id != nil {
		raw := id.Bytes()
		dto.LastOrderID = &raw
	}
	return dto, nil
}

func toDomain(dto ScheduledOrderDTO) (*schedule.ScheduledOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}
	status, err := schedule.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var cartDoc cartJSON
	if err = json.Unmarshal(dto.Cart, &cartDoc); err != nil {
		return nil, err
	}
	lines := make([]schedule.CartLine, 0, len(cartDoc.Lines))
	for _, l := range cartDoc.Lines {
		lines = append(lines, schedule.CartLine{SKU: l.SKU, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	cart, err := schedule.NewCartSnapshot(lines, cartDoc.Currency)
	if err != nil {
		return nil, err
	}

	var prefsDoc preferencesJSON
	if err = json.Unmarshal(dto.Preferences, &prefsDoc); err != nil {
		return nil, err
	}
	addr, err := kernel.NewAddress(prefsDoc.Address.Line1, prefsDoc.Address.Line2,
		prefsDoc.Address.City, prefsDoc.Address.Postcode, prefsDoc.Address.Country)
	if err != nil {
		return nil, err
	}
	prefs, err := schedule.NewDeliveryPreferences(addr, utc(prefsDoc.WindowStart), utc(prefsDoc.WindowEnd), prefsDoc.Notes)
	if err != nil {
		return nil, err
	}

	var recurrence *schedule.Recurrence
	if dto.RecurrenceType != nil {
		freq, err := schedule.ParseFrequency(*dto.RecurrenceType)
		if err != nil {
			return nil, err
		}
		var interval int
		if dto.RecurrenceInterval != nil {
			interval = *dto.RecurrenceInterval
		}
		var end time.Time
		if dto.RecurrenceEndDate != nil {
			end = *dto.RecurrenceEndDate
		}
		r, err := schedule.NewRecurrence(freq, interval, end)
		if err != nil {
			return nil, err
		}
		recurrence = &r
	}

	var lastOrderID *kernel.UUID
	if dto.LastOrderID != nil {
		v, err := kernel.UUIDFromBytes(dto.LastOrderID[:])
		if err != nil {
			return nil, err
		}
		lastOrderID = &v
	}

	return schedule.RestoreScheduledOrder(schedule.Snapshot{
		ID:              id,
		BuyerID:         buyerID,
		VendorID:        vendorID,
		ScheduledFor:    dto.ScheduledFor.UTC(),
		Recurrence:      recurrence,
		Cart:            cart,
		Preferences:     prefs,
		Status:          status,
		NextExecutionAt: dto.NextExecutionAt.UTC(),
		LastExecutedAt:  utc(dto.LastExecutedAt),
		Executions:      dto.Executions,
		LastOrderID:     lastOrderID,
		CreatedAt:       dto.CreatedAt.UTC(),
		UpdatedAt:       dto.UpdatedAt.UTC(),
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
