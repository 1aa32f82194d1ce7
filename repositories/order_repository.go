package repositories

import (
	"context"
	"errors"
	"fmt"

	"food-delivery/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderSelect = `
	SELECT o.id, o.order_number, o.user_id, o.restaurant_id, r.name, r.owner_id, o.address_id,
		o.delivery_address, o.delivery_detail, o.delivery_note, o.status, o.subtotal, o.delivery_fee,
		o.discount_amount, o.taxes, o.total_amount, o.payment_method, o.payment_status,
		o.special_request, o.cancellation_reason, o.estimated_delivery_time, o.delivered_at,
		o.created_at, o.updated_at
	FROM orders o
	JOIN restaurants r ON r.id = o.restaurant_id
`

func scanOrder(row pgx.Row) (*models.Order, error) {
	o := &models.Order{Items: []models.OrderItem{}}
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&o.RestaurantID,
		&o.RestaurantName,
		&o.RestaurantOwnerID,
		&o.AddressID,
		&o.DeliveryAddress,
		&o.DeliveryDetail,
		&o.DeliveryNote,
		&o.Status,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.DiscountAmount,
		&o.Taxes,
		&o.TotalAmount,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&o.SpecialRequest,
		&o.CancellationReason,
		&o.EstimatedDeliveryTime,
		&o.DeliveredAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

func (r *OrderRepository) CreateFromCart(ctx context.Context, order *models.Order, cartID int64, cartVersion int) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		var version int
		err := tx.QueryRow(ctx, `SELECT version FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&version)
		if errors.Is(err, pgx.ErrNoRows) || (err == nil && version != cartVersion) {
			return models.ErrCartChanged
		}
		if err != nil {
			return fmt.Errorf("lock cart: %w", err)
		}

		query := `
			INSERT INTO orders (order_number, user_id, restaurant_id, address_id, delivery_address,
				delivery_detail, delivery_note, status, subtotal, delivery_fee, discount_amount, taxes,
				total_amount, payment_method, payment_status, special_request, estimated_delivery_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			RETURNING id, created_at, updated_at
		`
		err = tx.QueryRow(ctx, query,
			order.OrderNumber,
			order.UserID,
			order.RestaurantID,
			order.AddressID,
			order.DeliveryAddress,
			order.DeliveryDetail,
			order.DeliveryNote,
			order.Status,
			order.Subtotal,
			order.DeliveryFee,
			order.DiscountAmount,
			order.Taxes,
			order.TotalAmount,
			order.PaymentMethod,
			order.PaymentStatus,
			order.SpecialRequest,
			order.EstimatedDeliveryTime,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			err := tx.QueryRow(ctx, `
				INSERT INTO order_items (order_id, menu_item_id, menu_item_name, unit_price, quantity, selected_options, subtotal)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id`,
				order.ID, item.MenuItemID, item.MenuItemName, item.UnitPrice, item.Quantity, item.SelectedOptions, item.Subtotal,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO order_status_history (order_id, from_status, to_status, changed_by) VALUES ($1, NULL, $2, $3)`,
			order.ID, order.Status, order.UserID,
		)
		if err != nil {
			return fmt.Errorf("insert status history: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
			return fmt.Errorf("delete cart: %w", err)
		}
		return nil
	})
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, []*models.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus is a compare-and-set on the current status. The history row
// is written in the same transaction, only when the update applied.
func (r *OrderRepository) UpdateStatus(ctx context.Context, change models.StatusChange) (bool, error) {
	updated := false
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var cancellationReason *string
		if change.To == models.OrderCancelled {
			cancellationReason = change.Reason
		}

		tag, err := tx.Exec(ctx, `
			UPDATE orders
			SET status = $1,
				cancellation_reason = COALESCE($2, cancellation_reason),
				delivered_at = COALESCE(delivered_at, $3),
				updated_at = NOW()
			WHERE id = $4 AND status = $5`,
			change.To, cancellationReason, change.DeliveredAt, change.OrderID, change.From,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO order_status_history (order_id, from_status, to_status, changed_by, reason) VALUES ($1, $2, $3, $4, $5)`,
			change.OrderID, change.From, change.To, change.ActorID, change.Reason,
		)
		if err != nil {
			return err
		}
		updated = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, page models.Page) ([]models.Order, int, error) {
	return r.list(ctx, "o.user_id", userID, page)
}

func (r *OrderRepository) ListByRestaurant(ctx context.Context, restaurantID int64, page models.Page) ([]models.Order, int, error) {
	return r.list(ctx, "o.restaurant_id", restaurantID, page)
}

func (r *OrderRepository) list(ctx context.Context, column string, id int64, page models.Page) ([]models.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders o WHERE `+column+` = $1`, id).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := orderSelect + ` WHERE ` + column + ` = $1 ORDER BY o.created_at ` + page.OrderDirection() + `, o.id LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, id, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachItems(ctx, refs); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) attachItems(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, menu_item_id, menu_item_name, unit_price, quantity, selected_options, subtotal
		FROM order_items WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.MenuItemName,
			&item.UnitPrice, &item.Quantity, &item.SelectedOptions, &item.Subtotal)
		if err != nil {
			return err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *OrderRepository) History(ctx context.Context, orderID int64) ([]models.OrderStatusHistory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, from_status, to_status, changed_by, reason, created_at
		FROM order_status_history WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []models.OrderStatusHistory{}
	for rows.Next() {
		var h models.OrderStatusHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.FromStatus, &h.ToStatus, &h.ChangedBy, &h.Reason, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
