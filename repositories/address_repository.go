package repositories

import (
	"context"

	"food-delivery/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AddressRepository struct {
	db *pgxpool.Pool
}

func NewAddressRepository(db *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{db: db}
}

const addressColumns = `id, user_id, address, detail_address, city, label, note, is_default, created_at, updated_at`

func scanAddress(row pgx.Row) (*models.Address, error) {
	a := &models.Address{}
	err := row.Scan(&a.ID, &a.UserID, &a.Address, &a.DetailAddress, &a.City, &a.Label, &a.Note, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *AddressRepository) Create(ctx context.Context, address *models.Address) error {
	query := `
		INSERT INTO addresses (user_id, address, detail_address, city, label, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_default, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		address.UserID,
		address.Address,
		address.DetailAddress,
		address.City,
		address.Label,
		address.Note,
	).Scan(&address.ID, &address.IsDefault, &address.CreatedAt, &address.UpdatedAt)
}

func (r *AddressRepository) FindByID(ctx context.Context, id int64) (*models.Address, error) {
	return scanAddress(r.db.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id))
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID int64) ([]models.Address, error) {
	rows, err := r.db.Query(ctx, `SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := []models.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, *a)
	}
	return addresses, rows.Err()
}

func (r *AddressRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM addresses WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *AddressRepository) Update(ctx context.Context, address *models.Address) error {
	query := `
		UPDATE addresses
		SET address = $1, detail_address = $2, city = $3, label = $4, note = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		address.Address,
		address.DetailAddress,
		address.City,
		address.Label,
		address.Note,
		address.ID,
	).Scan(&address.UpdatedAt)
	return notFound(err)
}

// SetDefault clears the user's previous default before marking addressID, so
// the partial unique index never sees two defaults.
func (r *AddressRepository) SetDefault(ctx context.Context, userID, addressID int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND is_default`, userID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx,
			`UPDATE addresses SET is_default = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2`, addressID, userID)
		if err != nil {
			return err
		}
		return requireAffected(tag)
	})
}

func (r *AddressRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}
