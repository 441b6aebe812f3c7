package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order and its items with plain SQL.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ErrObjectNotFound when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	var (
		resp              GetOrderQueryResponse
		id, buyer, vendor uuid.UUID
		line2             sql.NullString
		deliveryTime      sql.NullTime
	)
	err := db.Raw(`
		SELECT
			id, buyer_id, vendor_id, status, currency, total_amount,
			address_line1, address_line2, address_city, address_postcode, address_country,
			delivery_time, version, created_at, updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(
		&id, &buyer, &vendor, &resp.Status, &resp.Currency, &resp.TotalAmount,
		&resp.Address.Line1, &line2, &resp.Address.City, &resp.Address.Postcode, &resp.Address.Country,
		&deliveryTime, &resp.Version, &resp.CreatedAt, &resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.BuyerID, err = kernel.UUIDFromBytes(buyer[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.VendorID, err = kernel.UUIDFromBytes(vendor[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Address.Line2 = line2.String
	resp.DeliveryTime = utcPtr(deliveryTime)
	resp.CreatedAt, resp.UpdatedAt = resp.CreatedAt.UTC(), resp.UpdatedAt.UTC()

	resp.Items, err = h.items(db, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	return resp, nil
}

func (h GetOrderQueryHandler) items(db *gorm.DB, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := db.Raw(`
		SELECT id, sku, quantity, unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var item OrderItemResponse
		var id uuid.UUID
		if err = rows.Scan(&id, &item.SKU, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func utcPtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}
