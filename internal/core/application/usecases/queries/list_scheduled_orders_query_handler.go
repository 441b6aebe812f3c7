package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListScheduledOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListScheduledOrdersQueryHandler(db *gorm.DB) ListScheduledOrdersQueryHandler {
	return ListScheduledOrdersQueryHandler{db: db}
}

func (h ListScheduledOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListScheduledOrdersQuery,
) ([]ScheduledOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, buyer_id, vendor_id, scheduled_for,
			recurrence_type, recurrence_interval, recurrence_end_date,
			cart, preferences, status, next_execution_at, last_executed_at,
			executions, last_order_id
		FROM scheduled_orders
		WHERE buyer_id = ?
		ORDER BY next_execution_at, id
	`, query.BuyerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ScheduledOrderResponse, 0)
	for rows.Next() {
		var (
			resp              ScheduledOrderResponse
			id, buyer, vendor uuid.UUID
			recType           sql.NullString
			recInterval       sql.NullInt64
			recEnd, lastRun   sql.NullTime
			cart, preferences []byte
			lastOrderID       uuid.NullUUID
		)
		if err = rows.Scan(&id, &buyer, &vendor, &resp.ScheduledFor,
			&recType, &recInterval, &recEnd,
			&cart, &preferences, &resp.Status, &resp.NextExecutionAt, &lastRun,
			&resp.Executions, &lastOrderID); err != nil {
			return nil, err
		}
		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.BuyerID, err = kernel.UUIDFromBytes(buyer[:]); err != nil {
			return nil, err
		}
		if resp.VendorID, err = kernel.UUIDFromBytes(vendor[:]); err != nil {
			return nil, err
		}
		if lastOrderID.Valid {
			v, idErr := kernel.UUIDFromBytes(lastOrderID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.LastOrderID = &v
		}
		if recType.Valid {
			resp.Recurrence = &RecurrenceResponse{
				Type:     recType.String,
				Interval: int(recInterval.Int64),
				EndDate:  recEnd.Time.UTC(),
			}
		}
		resp.Cart, resp.Preferences = cart, preferences
		resp.ScheduledFor = resp.ScheduledFor.UTC()
		resp.NextExecutionAt = resp.NextExecutionAt.UTC()
		resp.LastExecutedAt = utcPtr(lastRun)
		result = append(result, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
