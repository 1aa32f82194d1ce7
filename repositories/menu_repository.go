package repositories

import (
	"context"

	"food-delivery/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MenuRepository struct {
	db *pgxpool.Pool
}

func NewMenuRepository(db *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{db: db}
}

const menuItemColumns = `id, restaurant_id, name, description, price, category, image_url,
	is_available, spicy_level, sort_order, created_at, updated_at`

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	item := &models.MenuItem{Options: []models.MenuItemOption{}}
	err := row.Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.ImageURL,
		&item.IsAvailable,
		&item.SpicyLevel,
		&item.SortOrder,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO menu_items (restaurant_id, name, description, price, category, image_url,
				is_available, spicy_level, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRow(ctx, query,
			item.RestaurantID,
			item.Name,
			item.Description,
			item.Price,
			item.Category,
			item.ImageURL,
			item.IsAvailable,
			item.SpicyLevel,
			item.SortOrder,
		).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return err
		}
		return insertOptions(ctx, tx, item)
	})
}

func insertOptions(ctx context.Context, tx pgx.Tx, item *models.MenuItem) error {
	for i := range item.Options {
		opt := &item.Options[i]
		opt.MenuItemID = item.ID
		err := tx.QueryRow(ctx,
			`INSERT INTO menu_item_options (menu_item_id, name, price, type) VALUES ($1, $2, $3, $4) RETURNING id`,
			item.ID, opt.Name, opt.Price, opt.Type,
		).Scan(&opt.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	item, err := scanMenuItem(r.db.QueryRow(ctx, `SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachOptions(ctx, []*models.MenuItem{item}); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *MenuRepository) ListByRestaurant(ctx context.Context, restaurantID int64, availableOnly bool) ([]models.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE restaurant_id = $1`
	if availableOnly {
		query += ` AND is_available = TRUE`
	}
	query += ` ORDER BY sort_order, id`

	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*models.MenuItem, len(items))
	for i := range items {
		refs[i] = &items[i]
	}
	if err := r.attachOptions(ctx, refs); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MenuRepository) attachOptions(ctx context.Context, items []*models.MenuItem) error {
	if len(items) == 0 {
		return nil
	}

	byID := make(map[int64]*models.MenuItem, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		byID[item.ID] = item
		ids = append(ids, item.ID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, menu_item_id, name, price, type FROM menu_item_options WHERE menu_item_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var opt models.MenuItemOption
		if err := rows.Scan(&opt.ID, &opt.MenuItemID, &opt.Name, &opt.Price, &opt.Type); err != nil {
			return err
		}
		if item, ok := byID[opt.MenuItemID]; ok {
			item.Options = append(item.Options, opt)
		}
	}
	return rows.Err()
}

// Update rewrites the item and replaces its options.
func (r *MenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE menu_items
			SET name = $1, description = $2, price = $3, category = $4, image_url = $5,
				is_available = $6, spicy_level = $7, sort_order = $8, updated_at = NOW()
			WHERE id = $9
			RETURNING updated_at
		`
		err := tx.QueryRow(ctx, query,
			item.Name,
			item.Description,
			item.Price,
			item.Category,
			item.ImageURL,
			item.IsAvailable,
			item.SpicyLevel,
			item.SortOrder,
			item.ID,
		).Scan(&item.UpdatedAt)
		if err != nil {
			return notFound(err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM menu_item_options WHERE menu_item_id = $1`, item.ID); err != nil {
			return err
		}
		return insertOptions(ctx, tx, item)
	})
}

func (r *MenuRepository) UpdateAvailability(ctx context.Context, id int64, available bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE menu_items SET is_available = $1, updated_at = NOW() WHERE id = $2`, available, id)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}

func (r *MenuRepository) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE menu_items SET image_url = $1, updated_at = NOW() WHERE id = $2`, imageURL, id)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}

// Delete removes the item and any cart left without lines by the cascade.
func (r *MenuRepository) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT DISTINCT cart_id FROM cart_items WHERE menu_item_id = $1`, id)
		if err != nil {
			return err
		}
		cartIDs, err := pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if err := requireAffected(tag); err != nil {
			return err
		}
		if len(cartIDs) == 0 {
			return nil
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM carts c
			WHERE c.id = ANY($1)
				AND NOT EXISTS (SELECT 1 FROM cart_items ci WHERE ci.cart_id = c.id)`, cartIDs)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE carts SET version = version + 1, updated_at = NOW() WHERE id = ANY($1)`, cartIDs)
		return err
	})
}
