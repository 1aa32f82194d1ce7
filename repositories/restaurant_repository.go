package repositories

import (
	"context"
	"fmt"
	"strings"

	"food-delivery/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RestaurantRepository struct {
	db *pgxpool.Pool
}

func NewRestaurantRepository(db *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

const restaurantSelect = `
	SELECT r.id, r.owner_id, r.category_id, c.name, r.name, r.description, r.address, r.city,
		r.phone, r.image_url, r.rating, r.min_order_amount, r.delivery_fee,
		r.estimated_delivery_time, r.opening_hours, r.is_open, r.is_active,
		r.created_at, r.updated_at
	FROM restaurants r
	LEFT JOIN categories c ON c.id = r.category_id
`

func scanRestaurant(row pgx.Row) (*models.Restaurant, error) {
	res := &models.Restaurant{}
	err := row.Scan(
		&res.ID,
		&res.OwnerID,
		&res.CategoryID,
		&res.CategoryName,
		&res.Name,
		&res.Description,
		&res.Address,
		&res.City,
		&res.Phone,
		&res.ImageURL,
		&res.Rating,
		&res.MinOrderAmount,
		&res.DeliveryFee,
		&res.EstimatedDeliveryTime,
		&res.OpeningHours,
		&res.IsOpen,
		&res.IsActive,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return res, nil
}

func collectRestaurants(rows pgx.Rows) ([]models.Restaurant, error) {
	defer rows.Close()

	restaurants := []models.Restaurant{}
	for rows.Next() {
		res, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *res)
	}
	return restaurants, rows.Err()
}

func (r *RestaurantRepository) Create(ctx context.Context, res *models.Restaurant) error {
	query := `
		INSERT INTO restaurants (owner_id, category_id, name, description, address, city, phone, image_url,
			min_order_amount, delivery_fee, estimated_delivery_time, opening_hours, is_open, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, rating, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		res.OwnerID,
		res.CategoryID,
		res.Name,
		res.Description,
		res.Address,
		res.City,
		res.Phone,
		res.ImageURL,
		res.MinOrderAmount,
		res.DeliveryFee,
		res.EstimatedDeliveryTime,
		res.OpeningHours,
		res.IsOpen,
		res.IsActive,
	).Scan(&res.ID, &res.Rating, &res.CreatedAt, &res.UpdatedAt)
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id int64) (*models.Restaurant, error) {
	return scanRestaurant(r.db.QueryRow(ctx, restaurantSelect+` WHERE r.id = $1`, id))
}

// List returns active restaurants matching filter, best rated first.
func (r *RestaurantRepository) List(ctx context.Context, filter models.RestaurantFilter, page models.Page) ([]models.Restaurant, int, error) {
	conditions := []string{"r.is_active = TRUE"}
	args := []any{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("r.category_id = $%d", len(args)))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		conditions = append(conditions, fmt.Sprintf("LOWER(r.city) = LOWER($%d)", len(args)))
	}
	if filter.IsOpen != nil {
		args = append(args, *filter.IsOpen)
		conditions = append(conditions, fmt.Sprintf("r.is_open = $%d", len(args)))
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants r`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, page.Limit, page.Offset())
	query := restaurantSelect + where +
		fmt.Sprintf(" ORDER BY r.rating DESC, r.id %s LIMIT $%d OFFSET $%d", page.OrderDirection(), len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	restaurants, err := collectRestaurants(rows)
	if err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

func (r *RestaurantRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Restaurant, error) {
	rows, err := r.db.Query(ctx, restaurantSelect+` WHERE r.owner_id = $1 ORDER BY r.created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	return collectRestaurants(rows)
}

func (r *RestaurantRepository) Update(ctx context.Context, res *models.Restaurant) error {
	query := `
		UPDATE restaurants
		SET category_id = $1, name = $2, description = $3, address = $4, city = $5, phone = $6,
			image_url = $7, min_order_amount = $8, delivery_fee = $9, estimated_delivery_time = $10,
			opening_hours = $11, is_open = $12, is_active = $13, updated_at = NOW()
		WHERE id = $14
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		res.CategoryID,
		res.Name,
		res.Description,
		res.Address,
		res.City,
		res.Phone,
		res.ImageURL,
		res.MinOrderAmount,
		res.DeliveryFee,
		res.EstimatedDeliveryTime,
		res.OpeningHours,
		res.IsOpen,
		res.IsActive,
		res.ID,
	).Scan(&res.UpdatedAt)
	return notFound(err)
}

func (r *RestaurantRepository) UpdateOpen(ctx context.Context, id int64, isOpen bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE restaurants SET is_open = $1, updated_at = NOW() WHERE id = $2`, isOpen, id)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}

// Delete deactivates the restaurant; orders keep referencing it.
func (r *RestaurantRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE restaurants SET is_active = FALSE, is_open = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}
