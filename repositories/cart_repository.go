package repositories

import (
	"context"
	"errors"

	"food-delivery/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

const cartItemSelect = `
	SELECT ci.id, ci.cart_id, c.user_id, ci.menu_item_id, m.name, m.image_url, m.price,
		m.is_available, ci.quantity, ci.selected_options
	FROM cart_items ci
	JOIN carts c ON c.id = ci.cart_id
	JOIN menu_items m ON m.id = ci.menu_item_id
`

func scanCartItem(row pgx.Row) (*models.CartItem, error) {
	item := &models.CartItem{}
	err := row.Scan(
		&item.ID,
		&item.CartID,
		&item.UserID,
		&item.MenuItemID,
		&item.MenuItemName,
		&item.ImageURL,
		&item.UnitPrice,
		&item.IsAvailable,
		&item.Quantity,
		&item.SelectedOptions,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

// FindByUser returns the user's cart with live menu data on every line.
func (r *CartRepository) FindByUser(ctx context.Context, userID int64) (*models.Cart, error) {
	cart := &models.Cart{Items: []models.CartItem{}}
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, restaurant_id, version, created_at, updated_at FROM carts WHERE user_id = $1`, userID,
	).Scan(&cart.ID, &cart.UserID, &cart.RestaurantID, &cart.Version, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}

	rows, err := r.db.Query(ctx, cartItemSelect+` WHERE ci.cart_id = $1 ORDER BY ci.id`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, *item)
	}
	return cart, rows.Err()
}

func (r *CartRepository) FindItem(ctx context.Context, itemID int64) (*models.CartItem, error) {
	return scanCartItem(r.db.QueryRow(ctx, cartItemSelect+` WHERE ci.id = $1`, itemID))
}

func (r *CartRepository) AddItem(ctx context.Context, userID, restaurantID int64, line models.CartItem) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		var cartID, cartRestaurant int64
		err := tx.QueryRow(ctx,
			`SELECT id, restaurant_id FROM carts WHERE user_id = $1 FOR UPDATE`, userID,
		).Scan(&cartID, &cartRestaurant)

		switch {
		case errors.Is(err, pgx.ErrNoRows):
			err = tx.QueryRow(ctx, `
				INSERT INTO carts (user_id, restaurant_id) VALUES ($1, $2)
				ON CONFLICT (user_id) DO NOTHING
				RETURNING id`, userID, restaurantID,
			).Scan(&cartID)
			if errors.Is(err, pgx.ErrNoRows) {
				// A concurrent request created the cart first.
				err = tx.QueryRow(ctx,
					`SELECT id, restaurant_id FROM carts WHERE user_id = $1 FOR UPDATE`, userID,
				).Scan(&cartID, &cartRestaurant)
				if err == nil && cartRestaurant != restaurantID {
					err = repointEmptyCart(ctx, tx, cartID, restaurantID)
				}
			}
			if err != nil {
				return err
			}
		case err != nil:
			return err
		case cartRestaurant != restaurantID:
			if err := repointEmptyCart(ctx, tx, cartID, restaurantID); err != nil {
				return err
			}
		}

		var lineID int64
		var quantity int
		err = tx.QueryRow(ctx, `
			SELECT id, quantity FROM cart_items
			WHERE cart_id = $1 AND menu_item_id = $2 AND selected_options IS NOT DISTINCT FROM $3`,
			cartID, line.MenuItemID, line.SelectedOptions,
		).Scan(&lineID, &quantity)

		switch {
		case errors.Is(err, pgx.ErrNoRows):
			_, err = tx.Exec(ctx,
				`INSERT INTO cart_items (cart_id, menu_item_id, quantity, selected_options) VALUES ($1, $2, $3, $4)`,
				cartID, line.MenuItemID, line.Quantity, line.SelectedOptions,
			)
		case err != nil:
			return err
		case quantity+line.Quantity > models.MaxCartQuantity:
			return models.ErrCartQuantityLimit
		default:
			_, err = tx.Exec(ctx, `UPDATE cart_items SET quantity = $1 WHERE id = $2`, quantity+line.Quantity, lineID)
		}
		if err != nil {
			return err
		}
		return bumpVersion(ctx, tx, cartID)
	})
}

// repointEmptyCart moves a locked cart to restaurantID when it has no lines
// left, which happens once its menu items were deleted.
func repointEmptyCart(ctx context.Context, tx pgx.Tx, cartID, restaurantID int64) error {
	var lines int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items WHERE cart_id = $1`, cartID).Scan(&lines); err != nil {
		return err
	}
	if lines > 0 {
		return models.ErrCartRestaurantMismatch
	}
	_, err := tx.Exec(ctx, `UPDATE carts SET restaurant_id = $1 WHERE id = $2`, restaurantID, cartID)
	return err
}

func bumpVersion(ctx context.Context, tx pgx.Tx, cartID int64) error {
	_, err := tx.Exec(ctx, `UPDATE carts SET version = version + 1, updated_at = NOW() WHERE id = $1`, cartID)
	return err
}

// lockCartOfItem locks the cart owning itemID.
func lockCartOfItem(ctx context.Context, tx pgx.Tx, itemID int64) (int64, error) {
	var cartID int64
	err := tx.QueryRow(ctx, `
		SELECT c.id FROM carts c
		JOIN cart_items ci ON ci.cart_id = c.id
		WHERE ci.id = $1
		FOR UPDATE OF c`, itemID,
	).Scan(&cartID)
	return cartID, notFound(err)
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		cartID, err := lockCartOfItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE cart_items SET quantity = $1 WHERE id = $2`, quantity, itemID); err != nil {
			return err
		}
		return bumpVersion(ctx, tx, cartID)
	})
}

func (r *CartRepository) RemoveItem(ctx context.Context, itemID int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		cartID, err := lockCartOfItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID); err != nil {
			return err
		}

		var remaining int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items WHERE cart_id = $1`, cartID).Scan(&remaining); err != nil {
			return err
		}
		if remaining == 0 {
			_, err = tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
			return err
		}
		return bumpVersion(ctx, tx, cartID)
	})
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}
