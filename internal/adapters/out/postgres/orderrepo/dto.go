// Package orderrepo persists the order aggregate and its status history.
// Line items live in a child table; status values are stored by name.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row of the orders table.
type OrderDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	BuyerID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	VendorID     uuid.UUID      `gorm:"type:uuid;not null"`
	Status       string         `gorm:"type:varchar(32);not null;index"`
	Currency     string         `gorm:"type:char(3);not null"`
	TotalAmount  int64          `gorm:"not null"`
	Address      AddressDTO     `gorm:"embedded;embeddedPrefix:address_"`
	DeliveryTime *time.Time     `gorm:"type:timestamptz"`
	Version      int64          `gorm:"not null"`
	CreatedAt    time.Time      `gorm:"type:timestamptz;not null;autoCreateTime:false"`
	UpdatedAt    time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is embedded into the orders table with the address_ prefix.
type AddressDTO struct {
	Line1    string `gorm:"type:varchar(255);not null"`
	Line2    string `gorm:"type:varchar(255);not null;default:''"`
	City     string `gorm:"type:varchar(128);not null"`
	Postcode string `gorm:"type:varchar(16);not null"`
	Country  string `gorm:"type:char(2);not null"`
}

// OrderItemDTO is one line item. Position keeps the order of lines stable.
type OrderItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Position  int       `gorm:"not null"`
	SKU       string    `gorm:"column:sku;type:varchar(128);not null"`
	Quantity  int       `gorm:"not null"`
	UnitPrice int64     `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   orderID,
			Position:  i,
			SKU:       item.SKU(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	addr := o.Address()
	return OrderDTO{
		ID:          orderID,
		BuyerID:     o.BuyerID().Bytes(),
		VendorID:    o.VendorID().Bytes(),
		Status:      o.Status().String(),
		Currency:    o.Currency(),
		TotalAmount: o.TotalAmount(),
		Address: AddressDTO{
			Line1:    addr.Line1(),
			Line2:    addr.Line2(),
			City:     addr.City(),
			Postcode: addr.Postcode(),
			Country:  addr.Country(),
		},
		DeliveryTime: o.DeliveryTime(),
		Version:      o.Version(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		Items:        items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
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
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	addr, err := kernel.NewAddress(dto.Address.Line1, dto.Address.Line2, dto.Address.City,
		dto.Address.Postcode, dto.Address.Country)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := order.NewLineItem(itemID, itemDTO.SKU, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var deliveryTime *time.Time
	if dto.DeliveryTime != nil {
		t := dto.DeliveryTime.UTC()
		deliveryTime = &t
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           id,
		BuyerID:      buyerID,
		VendorID:     vendorID,
		Status:       status,
		Currency:     dto.Currency,
		Address:      addr,
		Items:        items,
		DeliveryTime: deliveryTime,
		Version:      dto.Version,
		CreatedAt:    dto.CreatedAt.UTC(),
		UpdatedAt:    dto.UpdatedAt.UTC(),
	})
}
