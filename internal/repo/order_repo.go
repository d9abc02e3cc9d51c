package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-food-backend/internal/domain"
	"github.com/tbourn/go-food-backend/internal/storage"
)

// NewOrderLine is one requested (product, quantity) pair at creation time.
type NewOrderLine struct {
	ProductID string
	Quantity  int
}

// NewOrder carries the customer info and requested lines for CreateOrder.
// Quantity validation happens at the service boundary; the repository does
// not re-check it.
type NewOrder struct {
	CustomerName     string
	CustomerPhone    string
	CustomerAddress  string
	CustomerTelegram string
	UserTelegramID   *int64
	Items            []NewOrderLine
}

// CreateOrder inserts an order and its line items inside one transaction.
//
// For each requested line the current product row is resolved; its price
// feeds the total and its name/price/cook-contact triple is snapshotted
// into the order_items row. A line referencing an unknown product id is
// silently skipped, so the total only reflects resolvable items.
//
// The order starts in StatusPending unconditionally and CreatedAt is set
// once, here. On success the order is reloaded through the aggregate query
// so the caller (and the notification dispatcher) always sees the fully
// committed state.
func CreateOrder(ctx context.Context, st *storage.Store, in NewOrder) (*domain.Order, error) {
	o := &domain.Order{
		ID:               NewShortID(),
		CustomerName:     in.CustomerName,
		CustomerPhone:    in.CustomerPhone,
		CustomerAddress:  in.CustomerAddress,
		CustomerTelegram: in.CustomerTelegram,
		UserTelegramID:   in.UserTelegramID,
		Status:           domain.StatusPending,
		CreatedAt:        time.Now().UTC(),
	}

	err := st.WithTx(ctx, func(tx *gorm.DB) error {
		var (
			total float64
			items []domain.OrderItem
		)
		for _, line := range in.Items {
			var p domain.Product
			if err := tx.First(&p, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue // unknown product: the line contributes nothing
				}
				return err
			}
			total += p.Price * float64(line.Quantity)
			items = append(items, domain.OrderItem{
				OrderID:      o.ID,
				ProductID:    p.ID,
				ProductName:  p.Name,
				Quantity:     line.Quantity,
				Price:        p.Price,
				CookName:     p.CookName,
				CookPhone:    p.CookPhone,
				CookTelegram: p.CookTelegram,
			})
		}
		o.TotalAmount = total
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return GetOrder(ctx, st, o.ID)
}

// orderColumns is the projection shared by the aggregate queries.
const orderColumns = "o.id, o.customer_name, o.customer_phone, o.customer_address, " +
	"o.customer_telegram, o.user_telegram_id, o.total_amount, o.status, o.created_at"

// ListOrders returns orders newest first, optionally filtered by status.
// One row per order: the items are flattened by the engine's aggregate
// concatenation into items_data and decoded here, avoiding an N+1 query.
func ListOrders(ctx context.Context, st *storage.Store, status string) ([]domain.Order, error) {
	d := st.Dialect
	q := fmt.Sprintf(
		"SELECT %s, %s AS items_data FROM orders o LEFT JOIN order_items oi ON o.id = oi.order_id",
		orderColumns, d.ItemsAggExpr())
	var args []any
	if status != "" {
		q += fmt.Sprintf(" WHERE o.status = %s", d.Placeholder(1))
		args = append(args, status)
	}
	q += " GROUP BY o.id ORDER BY o.created_at DESC"

	rows, err := st.SQL.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	maps, err := storage.RowsToMaps(rows)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(maps))
	for _, m := range maps {
		out = append(out, *orderFromRow(m))
	}
	return out, nil
}

// GetOrder fetches a single order with its decoded items via the same
// aggregate query used by ListOrders, or ErrNotFound.
func GetOrder(ctx context.Context, st *storage.Store, id string) (*domain.Order, error) {
	d := st.Dialect
	q := fmt.Sprintf(
		"SELECT %s, %s AS items_data FROM orders o LEFT JOIN order_items oi ON o.id = oi.order_id WHERE o.id = %s GROUP BY o.id",
		orderColumns, d.ItemsAggExpr(), d.Placeholder(1))

	rows, err := st.SQL.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	maps, err := storage.RowsToMaps(rows)
	if err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return nil, ErrNotFound
	}
	return orderFromRow(maps[0]), nil
}

// UpdateOrderStatus persists a status change. Transition legality is the
// service layer's concern; this only reports ErrNotFound for unknown ids.
func UpdateOrderStatus(ctx context.Context, st *storage.Store, id string, status domain.Status) error {
	res := st.DB.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOrder removes an order and its items. This is an administrative
// escape hatch, not part of the order lifecycle.
func DeleteOrder(ctx context.Context, st *storage.Store, id string) error {
	return st.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// orderFromRow converts a normalized row mapping (including items_data)
// into a domain.Order with decoded items.
func orderFromRow(m map[string]any) *domain.Order {
	o := &domain.Order{
		ID:               storage.AsString(m["id"]),
		CustomerName:     storage.AsString(m["customer_name"]),
		CustomerPhone:    storage.AsString(m["customer_phone"]),
		CustomerAddress:  storage.AsString(m["customer_address"]),
		CustomerTelegram: storage.AsString(m["customer_telegram"]),
		TotalAmount:      storage.AsFloat(m["total_amount"]),
		Status:           domain.Status(storage.AsString(m["status"])),
		CreatedAt:        storage.AsTime(m["created_at"]),
	}
	if id, ok := storage.AsInt64(m["user_telegram_id"]); ok {
		o.UserTelegramID = &id
	}
	o.Items = DecodeItems(storage.AsString(m["items_data"]))
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return o
}
